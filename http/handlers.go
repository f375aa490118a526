package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"silicapred/ml"
	"silicapred/monitoring"
)

// ModelSource 提供按路径加载的模型句柄，生产实现为 *ml.Loader
type ModelSource interface {
	Load(path string) (*ml.Handle, error)
	Cached(path string) (*ml.Handle, bool)
}

// Handlers 持有全部请求处理依赖，不使用包级单例
type Handlers struct {
	source      ModelSource
	modelPath   string
	stats       *monitoring.Stats
	logger      *zap.Logger
	defaultLang string
}

// NewHandlers 创建处理器集合
func NewHandlers(source ModelSource, modelPath string, stats *monitoring.Stats, logger *zap.Logger, defaultLang string) *Handlers {
	if defaultLang == "" {
		defaultLang = "es"
	}
	return &Handlers{
		source:      source,
		modelPath:   modelPath,
		stats:       stats,
		logger:      logger,
		defaultLang: defaultLang,
	}
}

// Register 注册所有路由
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
	mux.HandleFunc("GET /api/schema", h.handleSchema)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/stats", h.handleStats)
}

func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	msgs := stringsFor(r.Header.Get("Accept-Language"), h.defaultLang)

	data := pageData{
		Strings: msgs,
		Fields: []pageField{
			{ID: "iron", Label: msgs.IronLabel, Caption: msgs.IronCaption,
				Min: ml.Schema[0].Min, Max: ml.Schema[0].Max, Default: ml.Schema[0].Default, Step: ml.Schema[0].Step},
			{ID: "air", Label: msgs.AirLabel, Caption: msgs.AirCaption,
				Min: ml.Schema[1].Min, Max: ml.Schema[1].Max, Default: ml.Schema[1].Default, Step: ml.Schema[1].Step},
			{ID: "amine", Label: msgs.AmineLabel, Caption: msgs.AmineCaption,
				Min: ml.Schema[2].Min, Max: ml.Schema[2].Max, Default: ml.Schema[2].Default, Step: ml.Schema[2].Step},
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}

type predictRequest struct {
	Iron  *float64 `json:"iron"`
	Air   *float64 `json:"air"`
	Amine *float64 `json:"amine"`
}

func (h *Handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	msgs := stringsFor(r.Header.Get("Accept-Language"), h.defaultLang)
	h.stats.RecordRequest()

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": msgs.BadRequest})
		return
	}
	if req.Iron == nil || req.Air == nil || req.Amine == nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": msgs.BadRequest})
		return
	}

	// 模型未就绪时不进入推理，直接返回警告
	handle, err := h.source.Load(h.modelPath)
	if err != nil {
		h.stats.RecordLoadFailure()
		h.logger.Warn("model not available",
			zap.String("path", h.modelPath),
			zap.Error(err),
		)
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"error": msgs.ModelWarning})
		return
	}

	// 范围约束在接口层完成，推理层只校验有限性
	vector := ml.ClampVector(*req.Iron, *req.Air, *req.Amine)
	value, err := ml.Predict(handle, vector.Iron, vector.Air, vector.Amine)
	if err != nil {
		h.stats.RecordPredictFailure()
		h.logger.Error("prediction failed", zap.Error(err))

		cause := err.Error()
		var predictErr *ml.PredictError
		if errors.As(err, &predictErr) {
			cause = predictErr.Cause
		}
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": fmt.Sprintf("%s: %s", msgs.PredictFailed, cause),
		})
		return
	}

	h.stats.RecordPrediction(value)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"prediction": value,
		"formatted":  fmt.Sprintf("%.2f%%", value),
		"inputs": map[string]float64{
			"iron":  vector.Iron,
			"air":   vector.Air,
			"amine": vector.Amine,
		},
	})
}

func (h *Handlers) handleSchema(w http.ResponseWriter, r *http.Request) {
	fields := make([]map[string]interface{}, 0, len(ml.Schema))
	ids := []string{"iron", "air", "amine"}
	for i, f := range ml.Schema {
		fields = append(fields, map[string]interface{}{
			"id":      ids[i],
			"column":  f.Column,
			"min":     f.Min,
			"max":     f.Max,
			"default": f.Default,
			"step":    f.Step,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"fields": fields})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, loaded := h.source.Cached(h.modelPath)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"model_loaded": loaded,
	})
}

func (h *Handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
