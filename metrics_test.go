package uart

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMetrics_RecordWrite(t *testing.T) {
	m := &Metrics{}
	m.recordWrite(1, nil, 2*time.Millisecond)
	m.recordWrite(0, errors.New("io"), 6*time.Millisecond)
	m.recordWrite(1, nil, time.Millisecond)

	s := m.Snapshot()
	if s.WriteOperations != 3 || s.SuccessfulWrites != 2 || s.WriteErrors != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.BytesWritten != 2 {
		t.Fatalf("expected 2 bytes, got %d", s.BytesWritten)
	}
	if s.MaxWriteLatency != 6*time.Millisecond {
		t.Fatalf("expected max 6ms, got %v", s.MaxWriteLatency)
	}
	if s.AverageWriteLatency != 3*time.Millisecond {
		t.Fatalf("expected average 3ms, got %v", s.AverageWriteLatency)
	}
	if s.Uptime != 0 {
		t.Fatalf("uptime should be zero without a connection, got %v", s.Uptime)
	}
}

func TestMetrics_ConcurrentMax(t *testing.T) {
	m := &Metrics{}
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(d time.Duration) {
			defer wg.Done()
			m.recordWrite(1, nil, d)
		}(time.Duration(i) * time.Microsecond)
	}
	wg.Wait()

	if got := m.Snapshot().MaxWriteLatency; got != 50*time.Microsecond {
		t.Fatalf("expected max 50µs, got %v", got)
	}
}
