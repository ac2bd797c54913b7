package uart

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"
)

// Environment variables consulted by ApplyEnv. Flags take precedence over them.
const (
	EnvPort        = "UART_PORT"
	EnvBaud        = "UART_BAUD"
	EnvParity      = "UART_PARITY"
	EnvStopBits    = "UART_STOPBITS"
	EnvDataBits    = "UART_DATABITS"
	EnvReadTimeout = "UART_READ_TIMEOUT"
	EnvMessage     = "UART_MESSAGE"
	EnvInterval    = "UART_INTERVAL"
	EnvCycles      = "UART_CYCLES"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields for every variable that is set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	integer := func(key string, set func(int)) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			set(n)
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	value := func(key string, dst flag.Value) {
		if v, ok := lookup(key); ok {
			if err := dst.Set(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
		}
	}

	str(EnvPort, &c.PortName)
	integer(EnvBaud, func(n int) { c.BaudRate = BaudRate(n) })
	value(EnvParity, &c.Parity)
	value(EnvStopBits, &c.StopBits)
	integer(EnvDataBits, func(n int) { c.DataBits = DataBits(n) })
	duration(EnvReadTimeout, &c.ReadTimeout)
	str(EnvMessage, &c.Message)
	duration(EnvInterval, &c.Interval)
	integer(EnvCycles, func(n int) { c.Cycles = n })

	return errors.Join(errs...)
}

// RegisterFlags binds the config fields to fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.PortName, "port", c.PortName, "serial device path (env "+EnvPort+")")
	fs.Func("baud", "baud rate (env "+EnvBaud+") (default "+c.BaudRate.String()+")", func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		c.BaudRate = BaudRate(n)
		return nil
	})
	fs.Var(&c.Parity, "parity", "parity: none, odd, even, mark or space (env "+EnvParity+")")
	fs.Var(&c.StopBits, "stopbits", "stop bits: 1, 1.5 or 2 (env "+EnvStopBits+")")
	fs.Func("databits", "data bits 5-8 (env "+EnvDataBits+") (default "+strconv.Itoa(c.DataBits.Int())+")", func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		c.DataBits = DataBits(n)
		return nil
	})
	fs.DurationVar(&c.ReadTimeout, "read-timeout", c.ReadTimeout, "port read timeout (env "+EnvReadTimeout+")")
	fs.StringVar(&c.Message, "message", c.Message, "ASCII message to transmit (env "+EnvMessage+")")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "pause after each byte (env "+EnvInterval+")")
	fs.IntVar(&c.Cycles, "cycles", c.Cycles, "number of times to send the message, 0 for unbounded (env "+EnvCycles+")")
}

// LoadConfig resolves defaults, then the environment, then command-line flags,
// and validates the result.
func LoadConfig(fs *flag.FlagSet, args []string, lookup LookupFunc) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid serial port configuration: %w", err)
	}
	return cfg, nil
}
