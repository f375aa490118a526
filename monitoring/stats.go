// Package monitoring 提供预测服务的运行统计
package monitoring

import (
	"sync"
	"time"
)

// Stats 进程内累计的请求与预测计数
type Stats struct {
	mu sync.RWMutex

	startTime       time.Time
	requests        int64
	predictions     int64
	loadFailures    int64
	predictFailures int64
	lastPrediction  time.Time
	lastValue       float64
}

func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

// RecordRequest 记录一次预测请求（无论结果如何）
func (s *Stats) RecordRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
}

// RecordPrediction 记录一次成功预测
func (s *Stats) RecordPrediction(value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictions++
	s.lastPrediction = time.Now()
	s.lastValue = value
}

// RecordLoadFailure 记录一次模型加载失败
func (s *Stats) RecordLoadFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadFailures++
}

// RecordPredictFailure 记录一次推理失败
func (s *Stats) RecordPredictFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictFailures++
}

// Snapshot 返回当前统计的副本
func (s *Stats) Snapshot() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := map[string]interface{}{
		"uptime_seconds":   int64(time.Since(s.startTime).Seconds()),
		"requests":         s.requests,
		"predictions":      s.predictions,
		"load_failures":    s.loadFailures,
		"predict_failures": s.predictFailures,
	}
	if !s.lastPrediction.IsZero() {
		snapshot["last_prediction"] = s.lastPrediction
		snapshot["last_value"] = s.lastValue
	}
	return snapshot
}
