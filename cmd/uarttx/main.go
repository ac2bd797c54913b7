// uarttx opens a serial port and transmits a fixed ASCII message one byte at
// a time, echoing each byte in hex, until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Station-Manager/uart"
	"github.com/Station-Manager/uart/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

func run(args []string, stdout, stderr io.Writer, lookup uart.LookupFunc) int {
	fs := flag.NewFlagSet("uarttx", flag.ContinueOnError)
	fs.SetOutput(stderr)

	logOpts := logging.OptionsFromEnv(logging.Options{Console: stderr}, lookup)
	fs.StringVar(&logOpts.Level, "log-level", logOpts.Level, "log level: trace, debug, info, warn, error (env "+logging.EnvLevel+")")
	fs.StringVar(&logOpts.File, "log-file", logOpts.File, "also write JSON logs to this rotating file (env "+logging.EnvFile+")")

	cfg, err := uart.LoadConfig(fs, args, lookup)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "uarttx: %v\n", err)
		return 2
	}

	logger, err := logging.New(logOpts)
	if err != nil {
		fmt.Fprintf(stderr, "uarttx: %v\n", err)
		return 2
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("port", cfg.PortName).
		Int("baud", cfg.BaudRate.Int()).
		Stringer("parity", cfg.Parity).
		Dur("interval", cfg.Interval).
		Msg("transmitting, press Ctrl+C to stop")

	err = uart.Transmit(ctx, cfg, stdout, uart.WithLogger(logger.Logger))

	var openErr *uart.OpenError
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	case errors.As(err, &openErr):
		fmt.Fprintf(stdout, "Error opening the serial port: %v\n", openErr.Err)
		return 1
	default:
		logger.Error().Err(err).Msg("transmission failed")
		return 1
	}
}
