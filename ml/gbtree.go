package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ArtifactFormat 当前模型文件格式标识
const ArtifactFormat = "gbtree-regression/1"

// ErrIncompatibleArtifact 模型文件格式或特征schema与本服务不兼容
var ErrIncompatibleArtifact = errors.New("incompatible model artifact")

// GBTree 梯度提升回归树集成，预测值 = base_score + 各树叶子值之和
type GBTree struct {
	baseScore float64
	trees     [][]TreeNode
	columns   []string
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	LeafValue  float64 `json:"leaf_value"`
	IsLeaf     bool    `json:"is_leaf"`
}

type gbtreeArtifact struct {
	Format    string       `json:"format"`
	Columns   []string     `json:"columns"`
	BaseScore float64      `json:"base_score"`
	Trees     [][]TreeNode `json:"trees"`
}

func (m *GBTree) Predict(row []float64) (float64, error) {
	if len(m.trees) == 0 {
		return 0, errors.New("model not loaded")
	}
	if len(row) != len(m.columns) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.columns), len(row))
	}
	result := m.baseScore
	for _, nodes := range m.trees {
		leaf, err := walkTree(nodes, row)
		if err != nil {
			return 0, err
		}
		result += leaf
	}
	return result, nil
}

func walkTree(nodes []TreeNode, row []float64) (float64, error) {
	if len(nodes) == 0 {
		return 0, errors.New("empty tree")
	}
	idx := 0
	for {
		node := nodes[idx]
		if node.IsLeaf {
			return node.LeafValue, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(row) {
			return 0, errors.New("feature index out of range")
		}
		if row[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

func (m *GBTree) Columns() []string {
	return append([]string(nil), m.columns...)
}

// TreeCount 集成中的树数量
func (m *GBTree) TreeCount() int {
	return len(m.trees)
}

func (m *GBTree) Save(path string) error {
	if len(m.trees) == 0 {
		return errors.New("model not loaded")
	}
	payload, err := json.Marshal(gbtreeArtifact{
		Format:    ArtifactFormat,
		Columns:   m.columns,
		BaseScore: m.baseScore,
		Trees:     m.trees,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (m *GBTree) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var artifact gbtreeArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return err
	}
	if artifact.Format != ArtifactFormat {
		return fmt.Errorf("%w: unknown format %q", ErrIncompatibleArtifact, artifact.Format)
	}
	if len(artifact.Trees) == 0 {
		return fmt.Errorf("%w: artifact contains no trees", ErrIncompatibleArtifact)
	}
	m.baseScore = artifact.BaseScore
	m.trees = artifact.Trees
	m.columns = artifact.Columns
	return nil
}
