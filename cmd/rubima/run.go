package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/rubima"
	"github.com/jcorbin/rubima/internal/fileinput"
	"github.com/jcorbin/rubima/internal/flushio"
	"github.com/jcorbin/rubima/internal/logio"
)

const stdinName = "<stdin>"

type runner struct {
	config
	log *logio.Logger
	out flushio.WriteFlusher
}

type result struct {
	name string
	val  rubima.Value
	ok   bool
	err  error
}

// runFiles evaluates every named file, up to Jobs at a time, then reports
// their results in argument order.
func (r *runner) runFiles(names []string) error {
	results := make([]result, len(names))

	var eg errgroup.Group
	eg.SetLimit(r.Jobs)
	for i, name := range names {
		i, name := i, name // per-iteration copies (pre-Go 1.22 loop semantics)
		eg.Go(func() error {
			results[i] = r.evalFile(name)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		r.report(res, len(names) > 1)
	}
	return nil
}

// runStream evaluates all of in as one program.
func (r *runner) runStream(in io.Reader) {
	r.report(r.evalReader(stdinName, in), false)
}

// interact parses a program one line at a time, prompting before each line,
// and evaluates it once in is exhausted. Bad lines are reported and dropped.
func (r *runner) interact(in io.Reader) error {
	p := rubima.NewParser(r.parserOptions(stdinName)...)
	input := fileinput.Input{Queue: []io.Reader{
		rubima.NamedReader(stdinName, flushio.FlushingReader(in, r.out)),
	}}
	for {
		fmt.Fprintf(r.out, "%v> ", len(p.Program()))
		loc, line, err := input.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		if err := p.ParseLine(loc.Name, loc.Line, line); err != nil {
			r.log.Printf("ERROR", "%v", err)
		}
	}
	fmt.Fprintln(r.out)

	res := result{name: stdinName}
	if res.err = p.Check(); res.err == nil {
		res = r.eval(stdinName, p.Program())
	}
	r.report(res, false)
	return nil
}

func (r *runner) evalFile(name string) result {
	f, err := os.Open(name)
	if err != nil {
		return result{name: name, err: err}
	}
	defer f.Close()
	return r.evalReader(name, f)
}

func (r *runner) evalReader(name string, in io.Reader) result {
	p := rubima.NewParser(r.parserOptions(name)...)
	prog, err := p.ParseReader(rubima.NamedReader(name, in))
	if err == nil {
		err = p.Check()
	}
	if err != nil {
		return result{name: name, err: err}
	}
	return r.eval(name, prog)
}

func (r *runner) eval(name string, prog rubima.Program) (res result) {
	res.name = name
	vm := rubima.New(r.vmOptions(name)...)
	res.val, res.ok, res.err = vm.Eval(prog)
	if r.Dump {
		lw := &logio.Writer{Logf: r.log.Leveledf("DUMP " + name)}
		r.log.ErrorIf(vm.Dump(lw))
		lw.Close()
	}
	return res
}

func (r *runner) report(res result, named bool) {
	var pe *rubima.ParseError
	switch {
	case errors.As(res.err, &pe):
		r.log.Errorf("%v", res.err)
	case res.err != nil:
		r.log.Errorf("%v: %v", res.name, res.err)
	case !res.ok:
		r.log.Printf("WARN", "%v: no result value", res.name)
	case named:
		fmt.Fprintf(r.out, "%v: %v\n", res.name, res.val)
	default:
		fmt.Fprintf(r.out, "%v\n", res.val)
	}
}

func (r *runner) parserOptions(name string) []rubima.ParserOption {
	opts := []rubima.ParserOption{rubima.WithName(name)}
	if r.Trace {
		opts = append(opts, rubima.WithLogf(r.log.Leveledf("TRACE "+name)))
	}
	return opts
}

func (r *runner) vmOptions(name string) []rubima.VMOption {
	var opts []rubima.VMOption
	if r.Trace {
		opts = append(opts, rubima.WithLogf(r.log.Leveledf("TRACE "+name)))
	}
	if r.StepLimit != 0 {
		opts = append(opts, rubima.WithStepLimit(r.StepLimit))
	}
	if r.StackLimit != 0 {
		opts = append(opts, rubima.WithStackLimit(r.StackLimit))
	}
	return opts
}
