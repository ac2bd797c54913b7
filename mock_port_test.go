package uart

import (
	"errors"
	"sync"
	"testing"
	"time"

	gobug "go.bug.st/serial"
)

type mockPort struct {
	mu          sync.Mutex
	writes      []byte
	writeCalls  int
	closeCalls  int
	readTimeout time.Duration

	// writeErr, if non-nil, is returned once failAfter successful writes have happened.
	writeErr  error
	failAfter int
	// shortWrites makes every Write report zero bytes written.
	shortWrites bool
	timeoutErr  error
}

func (m *mockPort) SetReadTimeout(d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timeoutErr != nil {
		return m.timeoutErr
	}
	m.readTimeout = d
	return nil
}

func (m *mockPort) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++
	if m.writeErr != nil && m.writeCalls > m.failAfter {
		return 0, m.writeErr
	}
	if m.shortWrites {
		return 0, nil
	}
	m.writes = append(m.writes, p...)
	return len(p), nil
}

func (m *mockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalls++
	return nil
}

func (m *mockPort) written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.writes...)
}

func (m *mockPort) closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

type openCall struct {
	name string
	mode gobug.Mode
}

// stubOpenPort replaces openPort for the duration of the test. When openErr
// is set the stub fails and mp is never handed out.
func stubOpenPort(t *testing.T, mp *mockPort, openErr error) *[]openCall {
	t.Helper()
	var calls []openCall
	orig := openPort
	openPort = func(name string, mode *gobug.Mode) (portHandle, error) {
		calls = append(calls, openCall{name: name, mode: *mode})
		if openErr != nil {
			return nil, openErr
		}
		return mp, nil
	}
	t.Cleanup(func() { openPort = orig })
	return &calls
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PortName = "/dev/ttyUSB0"
	cfg.Interval = 0
	return cfg
}

var errUnplugged = errors.New("device unplugged")
