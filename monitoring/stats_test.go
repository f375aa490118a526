package monitoring

import "testing"

func TestStatsSnapshot(t *testing.T) {
	stats := NewStats()

	stats.RecordRequest()
	stats.RecordRequest()
	stats.RecordPrediction(2.5)
	stats.RecordLoadFailure()
	stats.RecordPredictFailure()

	snapshot := stats.Snapshot()
	if snapshot["requests"].(int64) != 2 {
		t.Fatalf("expected 2 requests, got %v", snapshot["requests"])
	}
	if snapshot["predictions"].(int64) != 1 {
		t.Fatalf("expected 1 prediction, got %v", snapshot["predictions"])
	}
	if snapshot["load_failures"].(int64) != 1 {
		t.Fatalf("expected 1 load failure, got %v", snapshot["load_failures"])
	}
	if snapshot["predict_failures"].(int64) != 1 {
		t.Fatalf("expected 1 predict failure, got %v", snapshot["predict_failures"])
	}
	if snapshot["last_value"].(float64) != 2.5 {
		t.Fatalf("expected last value 2.5, got %v", snapshot["last_value"])
	}
}

func TestStatsSnapshotWithoutPredictions(t *testing.T) {
	stats := NewStats()
	snapshot := stats.Snapshot()
	if _, ok := snapshot["last_prediction"]; ok {
		t.Fatalf("expected no last_prediction before any prediction")
	}
}
