// listports prints the serial ports currently visible to the operating system.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Station-Manager/uart"
	"github.com/Station-Manager/uart/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

func run(args []string, stdout, stderr io.Writer, lookup uart.LookupFunc) int {
	fs := flag.NewFlagSet("listports", flag.ContinueOnError)
	fs.SetOutput(stderr)

	asJSON := fs.Bool("json", false, "print the port records as JSON")
	logOpts := logging.OptionsFromEnv(logging.Options{Console: stderr}, lookup)
	fs.StringVar(&logOpts.Level, "log-level", logOpts.Level, "log level (env "+logging.EnvLevel+")")
	fs.StringVar(&logOpts.File, "log-file", logOpts.File, "also write JSON logs to this rotating file (env "+logging.EnvFile+")")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger, err := logging.New(logOpts)
	if err != nil {
		fmt.Fprintf(stderr, "listports: %v\n", err)
		return 2
	}
	defer logger.Close()

	ports, err := uart.ListPorts()
	if err != nil {
		logger.Error().Err(err).Msg("listing serial ports")
		return 1
	}
	logger.Debug().Int("count", len(ports)).Msg("enumerated serial ports")

	if *asJSON {
		err = uart.WritePortListJSON(stdout, ports)
	} else {
		err = uart.WritePortList(stdout, ports)
	}
	if err != nil {
		logger.Error().Err(err).Msg("writing port list")
		return 1
	}
	return 0
}
