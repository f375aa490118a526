package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"silicapred/ml"
	"silicapred/monitoring"
)

type fakeModel struct {
	value   float64
	err     error
	lastRow []float64
	calls   int
}

func (f *fakeModel) Predict(row []float64) (float64, error) {
	f.calls++
	f.lastRow = append([]float64(nil), row...)
	return f.value, f.err
}

func (f *fakeModel) Columns() []string { return ml.Columns() }
func (f *fakeModel) Save(string) error { return nil }
func (f *fakeModel) Load(string) error { return nil }

type fakeSource struct {
	handle *ml.Handle
	err    error
	loads  int
}

func (f *fakeSource) Load(path string) (*ml.Handle, error) {
	f.loads++
	return f.handle, f.err
}

func (f *fakeSource) Cached(path string) (*ml.Handle, bool) {
	if f.err != nil || f.handle == nil {
		return nil, false
	}
	return f.handle, true
}

func newTestMux(source ModelSource) *http.ServeMux {
	mux := http.NewServeMux()
	handlers := NewHandlers(source, "modelo.json", monitoring.NewStats(), zap.NewNop(), "es")
	handlers.Register(mux)
	return mux
}

func postPredict(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHandlePredict(t *testing.T) {
	model := &fakeModel{value: 2.5}
	mux := newTestMux(&fakeSource{handle: ml.NewHandle(model)})

	w := postPredict(t, mux, `{"iron":65.0,"air":200.0,"amine":350.0}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["formatted"].(string) != "2.50%" {
		t.Fatalf("unexpected formatted result: %v", payload["formatted"])
	}
	if payload["prediction"].(float64) != 2.5 {
		t.Fatalf("unexpected prediction: %v", payload["prediction"])
	}

	want := []float64{65, 200, 350}
	for i := range want {
		if model.lastRow[i] != want[i] {
			t.Fatalf("feature %d: expected %v, got %v", i, want[i], model.lastRow[i])
		}
	}
}

func TestHandlePredictModelMissing(t *testing.T) {
	model := &fakeModel{value: 2.5}
	source := &fakeSource{
		err: &ml.LoadError{Kind: ml.ErrKindNotFound, Path: "modelo.json", Err: errors.New("no such file")},
	}
	mux := newTestMux(source)

	w := postPredict(t, mux, `{"iron":65,"air":200,"amine":350}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["error"].(string) == "" {
		t.Fatalf("expected a warning message")
	}
	if model.calls != 0 {
		t.Fatalf("predict must not be attempted when the model failed to load")
	}
}

func TestHandlePredictInferenceError(t *testing.T) {
	model := &fakeModel{err: errors.New("shape mismatch")}
	mux := newTestMux(&fakeSource{handle: ml.NewHandle(model)})

	w := postPredict(t, mux, `{"iron":65,"air":200,"amine":350}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.Contains(payload["error"].(string), "shape mismatch") {
		t.Fatalf("expected error message to carry the cause, got %v", payload["error"])
	}
}

func TestHandlePredictClampsOutOfRange(t *testing.T) {
	model := &fakeModel{value: 1.8}
	mux := newTestMux(&fakeSource{handle: ml.NewHandle(model)})

	w := postPredict(t, mux, `{"iron":100,"air":0,"amine":350}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if model.lastRow[0] != ml.Schema[0].Max {
		t.Fatalf("expected iron clamped to %v, got %v", ml.Schema[0].Max, model.lastRow[0])
	}
	if model.lastRow[1] != ml.Schema[1].Min {
		t.Fatalf("expected air clamped to %v, got %v", ml.Schema[1].Min, model.lastRow[1])
	}
}

func TestHandlePredictBadInput(t *testing.T) {
	mux := newTestMux(&fakeSource{handle: ml.NewHandle(&fakeModel{value: 2.5})})

	for _, body := range []string{
		``,
		`not json`,
		`{"iron":65,"air":200}`,
		`{"iron":"high","air":200,"amine":350}`,
	} {
		w := postPredict(t, mux, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestHandlePredictLocalizedWarning(t *testing.T) {
	source := &fakeSource{
		err: &ml.LoadError{Kind: ml.ErrKindNotFound, Path: "modelo.json", Err: errors.New("no such file")},
	}
	mux := newTestMux(source)

	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{"iron":65,"air":200,"amine":350}`))
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.Contains(payload["error"].(string), "could not be loaded") {
		t.Fatalf("expected English warning, got %v", payload["error"])
	}
}
