package uart

import (
	"time"

	gobug "go.bug.st/serial"
)

// portHandle abstracts the subset of go.bug.st/serial.Port used by Conn.
type portHandle interface {
	SetReadTimeout(timeout time.Duration) error
	Write(p []byte) (int, error)
	Close() error
}

// allow tests to override external dependencies
var (
	openPort = func(name string, mode *gobug.Mode) (portHandle, error) { return gobug.Open(name, mode) }
)

func modeFor(cfg Config) *gobug.Mode {
	return &gobug.Mode{
		BaudRate: cfg.BaudRate.Int(),
		DataBits: cfg.DataBits.Int(),
		Parity:   cfg.Parity.Get(),
		StopBits: cfg.StopBits.Get(),
	}
}
