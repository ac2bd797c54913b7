package uart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ByteWriter is the sink the transmitter writes to. *Conn implements it.
type ByteWriter interface {
	WriteByte(b byte) error
}

// Transmitter sends a message byte by byte with a fixed pause after each byte.
type Transmitter struct {
	w        ByteWriter
	echo     io.Writer
	message  []byte
	interval time.Duration
	cycles   int
	logger   zerolog.Logger

	// wait pauses for d or until ctx is done. Replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// NewTransmitter builds a Transmitter for the message, interval and cycle
// count in cfg. Each written byte is echoed to echo as 0x%02x.
func NewTransmitter(w ByteWriter, echo io.Writer, cfg Config, logger zerolog.Logger) (*Transmitter, error) {
	msg, err := EncodeASCII(cfg.Message)
	if err != nil {
		return nil, err
	}
	if len(msg) == 0 {
		return nil, errors.New("message cannot be empty")
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("interval cannot be negative: %v", cfg.Interval)
	}
	if echo == nil {
		echo = io.Discard
	}
	return &Transmitter{
		w:        w,
		echo:     echo,
		message:  msg,
		interval: cfg.Interval,
		cycles:   cfg.Cycles,
		logger:   logger,
		wait:     sleepContext,
	}, nil
}

// Run transmits until ctx is cancelled, a write fails, or the configured
// number of cycles completes. Cancellation is checked before every byte and
// interrupts the pause; on cancellation Run returns ctx.Err() without
// writing anything further.
func (t *Transmitter) Run(ctx context.Context) error {
	for cycle := 1; t.cycles == 0 || cycle <= t.cycles; cycle++ {
		for _, b := range t.message {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := t.w.WriteByte(b); err != nil {
				return fmt.Errorf("writing byte %s: %w", FormatByte(b), err)
			}
			if _, err := fmt.Fprintln(t.echo, FormatByte(b)); err != nil {
				return fmt.Errorf("echoing byte: %w", err)
			}
			if err := t.wait(ctx, t.interval); err != nil {
				return err
			}
		}
		t.logger.Debug().Int("cycle", cycle).Int("bytes", len(t.message)).Msg("message sent")
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Transmit runs the transmitter utility end to end: it acquires the port in
// cfg, transmits until ctx is cancelled, and releases the port. Operator
// notices are printed to out. A cancelled ctx is reported as ctx.Err().
func Transmit(ctx context.Context, cfg Config, out io.Writer, opts ...Option) error {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	opened := false
	err := WithConn(cfg, func(c *Conn) error {
		opened = true
		tx, err := NewTransmitter(c, out, cfg, o.logger)
		if err != nil {
			return err
		}
		err = tx.Run(ctx)
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(out, "\nProgram terminated by user.")
		}
		return err
	}, opts...)
	if opened {
		fmt.Fprintln(out, "Serial connection closed.")
	}
	return err
}
