package uart

import (
	"runtime"
	"time"
)

const (
	DefaultMessage     = "Hello,UART!\n"
	DefaultInterval    = 2 * time.Second
	DefaultReadTimeout = time.Second
)

// Config holds everything needed to open a port and drive the transmitter.
// It is built once at startup and treated as read-only afterwards.
type Config struct {
	// PortName is the path to the serial device, e.g. /dev/ttyUSB0 or COM14.
	PortName string `validate:"required"`

	BaudRate BaudRate
	Parity   Parity
	StopBits StopBits
	DataBits DataBits `validate:"gte=5,lte=8"`

	// ReadTimeout is the underlying port read timeout. Zero leaves the driver default.
	ReadTimeout time.Duration `validate:"gte=0"`

	// Message is transmitted one byte at a time.
	Message string `validate:"required,ascii"`

	// Interval is the pause after every transmitted byte, including the last one of a cycle.
	Interval time.Duration `validate:"gte=0"`

	// Cycles bounds how many times Message is sent. Zero means until cancelled.
	Cycles int `validate:"gte=0"`
}

// DefaultConfig returns 9600 8E1 with a one second read timeout.
func DefaultConfig() Config {
	return Config{
		PortName:    defaultPortName(),
		BaudRate:    Baud9600,
		Parity:      ParityEven,
		StopBits:    StopBits1,
		DataBits:    DataBits8,
		ReadTimeout: DefaultReadTimeout,
		Message:     DefaultMessage,
		Interval:    DefaultInterval,
	}
}

func defaultPortName() string {
	if runtime.GOOS == "windows" {
		return "COM14"
	}
	return "/dev/ttyUSB0"
}
