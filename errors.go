package uart

import (
	"errors"
	"fmt"

	gobug "go.bug.st/serial"
)

var (
	ErrClosed          = errors.New("uart: connection closed")
	ErrPortNotOpen     = errors.New("uart: port not open")
	ErrInvalidPortName = errors.New("uart: invalid port name")
	ErrShortWrite      = errors.New("uart: partial write: not all bytes written")
	ErrNonASCII        = errors.New("uart: message is not ASCII")
)

// OpenError is returned by Open when the serial device could not be acquired.
type OpenError struct {
	Port string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("opening serial port %s: %v", e.Port, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Reason classifies the failure using the driver's error code when one is available.
func (e *OpenError) Reason() string {
	var pe *gobug.PortError
	if !errors.As(e.Err, &pe) {
		return "unknown"
	}
	switch pe.Code() {
	case gobug.PortBusy:
		return "busy"
	case gobug.PortNotFound:
		return "not found"
	case gobug.PermissionDenied:
		return "permission denied"
	case gobug.InvalidSerialPort:
		return "not a serial port"
	case gobug.InvalidSpeed, gobug.InvalidDataBits, gobug.InvalidParity, gobug.InvalidStopBits, gobug.InvalidTimeoutValue:
		return "unsupported setting"
	default:
		return "driver error"
	}
}
