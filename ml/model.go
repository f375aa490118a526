package ml

// RegressionModel 回归模型的推理入口
type RegressionModel interface {
	Predict(row []float64) (float64, error)
	Columns() []string
	Save(path string) error
	Load(path string) error
}

// Handle 已加载模型的只读句柄，创建后不再修改
type Handle struct {
	model RegressionModel
}

// NewHandle 包装一个已就绪的模型
func NewHandle(model RegressionModel) *Handle {
	return &Handle{model: model}
}

// Model 返回底层模型
func (h *Handle) Model() RegressionModel {
	if h == nil {
		return nil
	}
	return h.model
}
