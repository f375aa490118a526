package ml

import "fmt"

// PredictError 推理失败，Cause 为可展示给用户的原因文本
type PredictError struct {
	Cause string
}

func (e *PredictError) Error() string {
	return "prediction failed: " + e.Cause
}

// Predict 按固定顺序组装单行特征并调用模型推理。
// 只校验数值有限性，范围约束由接口层在调用前完成。
// 对同一句柄和相同输入，结果恒定；模型内部的panic会被转成 PredictError。
func Predict(handle *Handle, iron, air, amine float64) (result float64, err error) {
	model := handle.Model()
	if model == nil {
		return 0, &PredictError{Cause: "model not loaded"}
	}
	for _, input := range []struct {
		name  string
		value float64
	}{
		{"iron", iron},
		{"air", air},
		{"amine", amine},
	} {
		if !isFinite(input.value) {
			return 0, &PredictError{Cause: fmt.Sprintf("%s value is not a finite number", input.name)}
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result = 0
			err = &PredictError{Cause: fmt.Sprint(r)}
		}
	}()

	vector := FeatureVector{Iron: iron, Air: air, Amine: amine}
	value, perr := model.Predict(vector.Row())
	if perr != nil {
		return 0, &PredictError{Cause: perr.Error()}
	}
	if !isFinite(value) {
		return 0, &PredictError{Cause: "model returned a non-finite value"}
	}
	return value, nil
}
