// Command rubima compiles and evaluates rubima stack machine programs,
// printing each program's result value.
package main

import (
	"errors"
	"flag"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tebeka/atexit"

	"github.com/jcorbin/rubima/internal/flushio"
	"github.com/jcorbin/rubima/internal/logio"
)

func main() {
	log := logio.NewLogger(os.Stderr)
	out := flushio.NewWriteFlusher(os.Stdout)
	atexit.Register(func() {
		if err := out.Flush(); err != nil {
			log.Errorf("flushing output: %v", err)
		}
	})

	cfg, files, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		atexit.Exit(0)
	} else if err != nil {
		log.Errorf("%v", err)
		atexit.Exit(2)
	}

	r := runner{config: cfg, log: log, out: out}
	switch {
	case len(files) > 0:
		log.ErrorIf(r.runFiles(files))
	case isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		log.ErrorIf(r.interact(os.Stdin))
	default:
		r.runStream(os.Stdin)
	}

	atexit.Exit(log.ExitCode())
}
