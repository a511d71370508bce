package api

import (
	"sync/atomic"
	"time"
)

// Metrics tracks server statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal    atomic.Int64
	Responses2xx     atomic.Int64
	Responses4xx     atomic.Int64
	Responses5xx     atomic.Int64
	RequestsInFlight atomic.Int32
	PanicsRecovered  atomic.Int64
	TasksCreated     atomic.Int64
	TasksDeleted     atomic.Int64
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// requestStarted marks a request as in flight
func (m *Metrics) requestStarted() {
	m.RequestsTotal.Add(1)
	m.RequestsInFlight.Add(1)
}

// requestFinished records the response status class and leaves the in-flight set
func (m *Metrics) requestFinished(status int) {
	m.RequestsInFlight.Add(-1)
	switch {
	case status >= 500:
		m.Responses5xx.Add(1)
	case status >= 400:
		m.Responses4xx.Add(1)
	case status >= 200 && status < 300:
		m.Responses2xx.Add(1)
	}
}

// IncPanicsRecovered increments the recovered panics counter
func (m *Metrics) IncPanicsRecovered() {
	m.PanicsRecovered.Add(1)
}

// IncTasksCreated increments the created tasks counter
func (m *Metrics) IncTasksCreated() {
	m.TasksCreated.Add(1)
}

// IncTasksDeleted increments the deleted tasks counter
func (m *Metrics) IncTasksDeleted() {
	m.TasksDeleted.Add(1)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	RequestsTotal    int64     `json:"requests_total"`
	Responses2xx     int64     `json:"responses_2xx"`
	Responses4xx     int64     `json:"responses_4xx"`
	Responses5xx     int64     `json:"responses_5xx"`
	RequestsInFlight int32     `json:"requests_in_flight"`
	PanicsRecovered  int64     `json:"panics_recovered"`
	TasksCreated     int64     `json:"tasks_created"`
	TasksDeleted     int64     `json:"tasks_deleted"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// Snapshot returns a snapshot of current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal:    m.RequestsTotal.Load(),
		Responses2xx:     m.Responses2xx.Load(),
		Responses4xx:     m.Responses4xx.Load(),
		Responses5xx:     m.Responses5xx.Load(),
		RequestsInFlight: m.RequestsInFlight.Load(),
		PanicsRecovered:  m.PanicsRecovered.Load(),
		TasksCreated:     m.TasksCreated.Load(),
		TasksDeleted:     m.TasksDeleted.Load(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).Round(time.Second).String(),
	}
}
