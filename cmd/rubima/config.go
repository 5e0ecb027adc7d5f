package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// config holds every run setting; it may be loaded from a YAML file, with
// any explicitly given command line flags taking precedence.
type config struct {
	// Trace logs every parsed and executed instruction.
	Trace bool `yaml:"trace"`

	// StepLimit and StackLimit bound each evaluation; 0 means unlimited.
	StepLimit  int `yaml:"step_limit"`
	StackLimit int `yaml:"stack_limit"`

	// Dump logs the final VM state after each evaluation.
	Dump bool `yaml:"dump"`

	// Jobs is how many files may be evaluated at once; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`
}

func loadConfig(path string) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return parseConfig(data, path)
}

// parseConfig parses YAML config content; path is only used in errors.
func parseConfig(data []byte, path string) (cfg config, err error) {
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (cfg config) validate() error {
	if cfg.StepLimit < 0 {
		return fmt.Errorf("step_limit must not be negative, got %v", cfg.StepLimit)
	}
	if cfg.StackLimit < 0 {
		return fmt.Errorf("stack_limit must not be negative, got %v", cfg.StackLimit)
	}
	if cfg.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %v", cfg.Jobs)
	}
	return nil
}

func (cfg *config) setDefaults() {
	if cfg.Jobs == 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}
}

var errUsage = errors.New("usage error")

// parseArgs parses command line arguments, returning the effective config and
// any program file names.
func parseArgs(args []string, stderr io.Writer) (cfg config, files []string, err error) {
	fs := flag.NewFlagSet("rubima", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: rubima [flags] [file ...]\n\n")
		fmt.Fprintf(fs.Output(), "Evaluates each program file, or standard input when none are given.\n\n")
		fs.PrintDefaults()
	}

	var (
		path    string
		flagCfg config
	)
	fs.StringVar(&path, "config", "", "load settings from a YAML file")
	fs.BoolVar(&flagCfg.Trace, "trace", false, "enable trace logging")
	fs.IntVar(&flagCfg.StepLimit, "step-limit", 0, "halt after this many instructions")
	fs.IntVar(&flagCfg.StackLimit, "stack-limit", 0, "halt when the stack would grow past this many values")
	fs.BoolVar(&flagCfg.Dump, "dump", false, "log a VM dump after each evaluation")
	fs.IntVar(&flagCfg.Jobs, "j", 0, "evaluate up to this many files at once")
	if err := fs.Parse(args); err != nil {
		return config{}, nil, err
	}

	if path != "" {
		if cfg, err = loadConfig(path); err != nil {
			return config{}, nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			cfg.Trace = flagCfg.Trace
		case "step-limit":
			cfg.StepLimit = flagCfg.StepLimit
		case "stack-limit":
			cfg.StackLimit = flagCfg.StackLimit
		case "dump":
			cfg.Dump = flagCfg.Dump
		case "j":
			cfg.Jobs = flagCfg.Jobs
		}
	})
	if err := cfg.validate(); err != nil {
		return config{}, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	cfg.setDefaults()

	return cfg, fs.Args(), nil
}
