package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_parseConfig(t *testing.T) {
	cfg, err := parseConfig([]byte(`
trace: true
step_limit: 1000
stack_limit: 64
dump: true
jobs: 3
`), "test.yaml")
	require.NoError(t, err)
	assert.Equal(t, config{
		Trace:      true,
		StepLimit:  1000,
		StackLimit: 64,
		Dump:       true,
		Jobs:       3,
	}, cfg)

	_, err = parseConfig([]byte("step_limit: [1, 2]\n"), "bad.yaml")
	assert.ErrorContains(t, err, "parsing bad.yaml")

	_, err = parseConfig([]byte("jobs: -1\n"), "neg.yaml")
	assert.EqualError(t, err, "neg.yaml: jobs must not be negative, got -1")
}

func Test_parseArgs(t *testing.T) {
	path := writeTemp(t, "rubima.yaml", lines(
		"trace: true",
		"step_limit: 100",
		"jobs: 2",
	))

	for _, tc := range []struct {
		name   string
		args   []string
		expect config
		files  []string
	}{
		{
			name:   "defaults",
			expect: config{Jobs: runtime.GOMAXPROCS(0)},
		},
		{
			name:   "flags",
			args:   []string{"-trace", "-step-limit", "5", "-stack-limit", "6", "-dump", "-j", "7", "a.rbm", "b.rbm"},
			expect: config{Trace: true, StepLimit: 5, StackLimit: 6, Dump: true, Jobs: 7},
			files:  []string{"a.rbm", "b.rbm"},
		},
		{
			name:   "config file",
			args:   []string{"-config", path, "prog.rbm"},
			expect: config{Trace: true, StepLimit: 100, Jobs: 2},
			files:  []string{"prog.rbm"},
		},
		{
			name:   "flags override config file",
			args:   []string{"-config", path, "-trace=false", "-step-limit", "0", "-j", "4"},
			expect: config{Jobs: 4},
		},
		{
			name:   "unset flags leave config file alone",
			args:   []string{"-config", path, "-dump"},
			expect: config{Trace: true, StepLimit: 100, Dump: true, Jobs: 2},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, files, err := parseArgs(tc.args, io.Discard)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, cfg)
			if tc.files == nil {
				assert.Empty(t, files)
			} else {
				assert.Equal(t, tc.files, files)
			}
		})
	}
}

func Test_parseArgs_errors(t *testing.T) {
	_, _, err := parseArgs([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))

	_, _, err = parseArgs([]string{"-nope"}, io.Discard)
	assert.Error(t, err)

	_, _, err = parseArgs([]string{"-stack-limit", "-3"}, io.Discard)
	assert.ErrorIs(t, err, errUsage)

	_, _, err = parseArgs([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, io.Discard)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
