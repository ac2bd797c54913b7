package uart

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateConfig validates serial port configuration parameters
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}

	if err := structValidator().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid %s: failed '%s' check: %w", verrs[0].Field(), verrs[0].Tag(), err)
		}
		return err
	}

	if err := validatePortName(cfg.PortName); err != nil {
		return err
	}

	if !slices.Contains(StandardBaudRates, cfg.BaudRate) {
		return fmt.Errorf("invalid baud rate %d, must be one of: %v", cfg.BaudRate, StandardBaudRates)
	}

	if !cfg.Parity.Valid() {
		return fmt.Errorf("invalid parity value: %d", int(cfg.Parity))
	}

	if !cfg.StopBits.Valid() {
		return fmt.Errorf("invalid stop bits value: %d", int(cfg.StopBits))
	}

	return nil
}
