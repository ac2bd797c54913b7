package uart

import (
	"fmt"
	"strings"
)

func validatePortName(portName string) error {
	// Security: Prevent path traversal attacks
	if strings.Contains(portName, "..") {
		return fmt.Errorf("%w: contains path traversal", ErrInvalidPortName)
	}

	if !isValidPortPattern(portName) {
		return fmt.Errorf("%w: doesn't match expected pattern: %s", ErrInvalidPortName, portName)
	}
	return nil
}

func isValidPortPattern(portName string) bool {
	// Windows: COM1-COM999 (must have at least one digit after COM)
	if strings.HasPrefix(portName, "COM") && len(portName) >= 4 && len(portName) <= 6 {
		return strings.Trim(portName[3:], "0123456789") == ""
	}
	// Unix/Linux: /dev/tty* or /dev/cu* (macOS), plus pseudo terminals and udev symlinks
	for _, prefix := range []string{"/dev/tty", "/dev/cu", "/dev/pts/", "/dev/serial/"} {
		if strings.HasPrefix(portName, prefix) {
			return true
		}
	}
	return false
}
