package ml

import "math"

// Field 描述模型的一个输入特征：训练时的列名、有效范围、默认值和步长
type Field struct {
	Column  string  `json:"column"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

// Schema 是模型训练时使用的特征顺序，列名和顺序必须与模型完全一致。
// 默认值按原始工艺参数保留，即使与步长栅格不对齐也不做调整。
var Schema = [3]Field{
	{Column: "% Iron Concentrate", Min: 62.05, Max: 68.01, Default: 65, Step: 0.1},
	{Column: "Flotation Column 01 Air Flow", Min: 175.84734, Max: 372.44264, Default: 200, Step: 0.1},
	{Column: "Amina Flow", Min: 241.70237, Max: 739.304, Default: 350, Step: 0.1},
}

// Columns 按训练顺序返回列名
func Columns() []string {
	cols := make([]string, len(Schema))
	for i, f := range Schema {
		cols[i] = f.Column
	}
	return cols
}

// FeatureVector 单行推理输入，字段顺序即模型输入顺序
type FeatureVector struct {
	Iron  float64
	Air   float64
	Amine float64
}

// Row 按 Schema 顺序展开为一行特征
func (v FeatureVector) Row() []float64 {
	return []float64{v.Iron, v.Air, v.Amine}
}

// Clamp 将取值限制在字段范围内
func (f Field) Clamp(value float64) float64 {
	if value < f.Min {
		return f.Min
	}
	if value > f.Max {
		return f.Max
	}
	return value
}

// ClampVector 将三个原始输入限制到各自范围后组装成特征向量
func ClampVector(iron, air, amine float64) FeatureVector {
	return FeatureVector{
		Iron:  Schema[0].Clamp(iron),
		Air:   Schema[1].Clamp(air),
		Amine: Schema[2].Clamp(amine),
	}
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
