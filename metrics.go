package uart

import (
	"time"

	"go.uber.org/atomic"
)

// Metrics tracks connection and write statistics for a single Conn.
type Metrics struct {
	// Connection Statistics
	ConnectionAttempts  atomic.Int64 // Total connection attempts
	ConnectionFailures  atomic.Int64 // Failed connections
	ConnectionStartTime atomic.Int64 // When the current connection started (unix nanos)
	Disconnections      atomic.Int64 // Total disconnects

	// Write Operations
	WriteOperations  atomic.Int64 // Total write attempts
	SuccessfulWrites atomic.Int64 // Successful writes
	WriteErrors      atomic.Int64 // Failed writes
	BytesWritten     atomic.Int64 // Total bytes written
	TotalWriteTime   atomic.Int64 // Total time spent writing (ns)
	MaxWriteTime     atomic.Int64 // Slowest write operation (ns)
	LastWriteTime    atomic.Int64 // Timestamp of last write (unix nanos)
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	ConnectionAttempts  int64         `json:"connection_attempts"`
	ConnectionFailures  int64         `json:"connection_failures"`
	Disconnections      int64         `json:"disconnections"`
	WriteOperations     int64         `json:"write_operations"`
	SuccessfulWrites    int64         `json:"successful_writes"`
	WriteErrors         int64         `json:"write_errors"`
	BytesWritten        int64         `json:"bytes_written"`
	AverageWriteLatency time.Duration `json:"average_write_latency"`
	MaxWriteLatency     time.Duration `json:"max_write_latency"`
	Uptime              time.Duration `json:"uptime"`
}

func (m *Metrics) recordWrite(n int, err error, elapsed time.Duration) {
	m.WriteOperations.Inc()
	if err != nil {
		m.WriteErrors.Inc()
	} else {
		m.SuccessfulWrites.Inc()
	}
	m.BytesWritten.Add(int64(n))
	m.TotalWriteTime.Add(int64(elapsed))
	m.LastWriteTime.Store(time.Now().UnixNano())

	for {
		current := m.MaxWriteTime.Load()
		if int64(elapsed) <= current || m.MaxWriteTime.CompareAndSwap(current, int64(elapsed)) {
			break
		}
	}
}

// Snapshot copies the counters and derives averages.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		ConnectionAttempts: m.ConnectionAttempts.Load(),
		ConnectionFailures: m.ConnectionFailures.Load(),
		Disconnections:     m.Disconnections.Load(),
		WriteOperations:    m.WriteOperations.Load(),
		SuccessfulWrites:   m.SuccessfulWrites.Load(),
		WriteErrors:        m.WriteErrors.Load(),
		BytesWritten:       m.BytesWritten.Load(),
		MaxWriteLatency:    time.Duration(m.MaxWriteTime.Load()),
	}
	if s.WriteOperations > 0 {
		s.AverageWriteLatency = time.Duration(m.TotalWriteTime.Load() / s.WriteOperations)
	}
	if start := m.ConnectionStartTime.Load(); start > 0 {
		s.Uptime = time.Duration(time.Now().UnixNano() - start)
	}
	return s
}
