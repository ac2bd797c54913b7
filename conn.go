package uart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

const maxWriteRetries = 3

// Conn is an open serial connection. It is owned by a single goroutine;
// only Close is safe to call concurrently with other methods.
type Conn struct {
	handle  portHandle
	cfg     Config
	logger  zerolog.Logger
	metrics *Metrics

	isOpen    atomic.Bool
	closeOnce sync.Once
	closeErr  error
	mu        sync.RWMutex
}

// Option customises Open.
type Option func(*options)

type options struct {
	logger  zerolog.Logger
	metrics *Metrics
}

// WithLogger routes connection diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records into m instead of a Conn-private Metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Open validates cfg and acquires the serial device it names.
// Any failure to acquire the device is reported as an *OpenError and no
// handle is left behind.
func Open(cfg Config, opts ...Option) (*Conn, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = &Metrics{}
	}
	o.metrics.ConnectionAttempts.Inc()

	if err := ValidateConfig(&cfg); err != nil {
		o.metrics.ConnectionFailures.Inc()
		return nil, fmt.Errorf("invalid serial port configuration: %w", err)
	}

	log := o.logger.With().Str("port", cfg.PortName).Logger()
	log.Debug().
		Int("baud", cfg.BaudRate.Int()).
		Stringer("parity", cfg.Parity).
		Stringer("stop_bits", cfg.StopBits).
		Int("data_bits", cfg.DataBits.Int()).
		Dur("read_timeout", cfg.ReadTimeout).
		Msg("opening serial port")

	h, err := openPort(cfg.PortName, modeFor(cfg))
	if err != nil {
		o.metrics.ConnectionFailures.Inc()
		oe := &OpenError{Port: cfg.PortName, Err: err}
		log.Error().Err(err).Str("reason", oe.Reason()).Msg("failed to open serial port")
		return nil, oe
	}

	if cfg.ReadTimeout > 0 {
		if err = h.SetReadTimeout(cfg.ReadTimeout); err != nil {
			o.metrics.ConnectionFailures.Inc()
			if cerr := h.Close(); cerr != nil {
				err = errors.Join(err, cerr)
			}
			return nil, &OpenError{Port: cfg.PortName, Err: fmt.Errorf("setting read timeout: %w", err)}
		}
	}

	c := &Conn{
		handle:  h,
		cfg:     cfg,
		logger:  log,
		metrics: o.metrics,
	}
	c.isOpen.Store(true)
	c.metrics.ConnectionStartTime.Store(time.Now().UnixNano())
	log.Info().Msg("serial port open")
	return c, nil
}

// WithConn opens the port described by cfg, runs fn, and closes the
// connection on every exit path. Close is never attempted when Open failed.
func WithConn(cfg Config, fn func(*Conn) error, opts ...Option) (err error) {
	c, err := Open(cfg, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing serial port: %w", cerr))
		}
	}()
	return fn(c)
}

// Config returns the configuration the connection was opened with.
func (c *Conn) Config() Config {
	return c.cfg
}

// Metrics returns a snapshot of the connection statistics.
func (c *Conn) Metrics() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// Write writes all of b, retrying short writes a bounded number of times.
func (c *Conn) Write(b []byte) (int, error) {
	start := time.Now()
	var total int
	var err error
	defer func() {
		c.metrics.recordWrite(total, err, time.Since(start))
	}()

	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.isOpen.Load() || c.handle == nil {
		err = ErrClosed
		return 0, err
	}

	for retries := 0; total < len(b) && retries < maxWriteRetries; retries++ {
		n, writeErr := c.handle.Write(b[total:])
		total += n
		if writeErr != nil {
			err = writeErr
			break
		}
		if n == 0 {
			// Prevent infinite loop if Write returns 0
			break
		}
	}
	if total < len(b) && err == nil {
		err = ErrShortWrite
	}
	return total, err
}

// WriteByte writes a single byte.
func (c *Conn) WriteByte(b byte) error {
	_, err := c.Write([]byte{b})
	return err
}

// Close releases the device. It is safe to call multiple times; only the
// first call reaches the driver.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.isOpen.Store(false)
		c.metrics.Disconnections.Inc()

		snap := c.metrics.Snapshot()
		c.metrics.ConnectionStartTime.Store(0)

		h := c.handle
		c.handle = nil
		if h != nil {
			c.closeErr = h.Close()
		}

		ev := c.logger.Info()
		if c.closeErr != nil {
			ev = c.logger.Error().Err(c.closeErr)
		}
		ev.Int64("bytes_written", snap.BytesWritten).
			Int64("write_errors", snap.WriteErrors).
			Dur("max_write_latency", snap.MaxWriteLatency).
			Dur("uptime", snap.Uptime).
			Msg("serial port closed")
	})
	return c.closeErr
}
