package rubima

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/rubima/internal/logio"
	"github.com/jcorbin/rubima/internal/panicerr"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		if !t.Run(vmt.name, vmt.run) {
			return
		}
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	opts    []VMOption
	src     []string
	prog    Program
	ops     Program
	expect  []func(t *testing.T, vm *VM, res vmResult)
	wantErr error

	exclusive bool
}

type vmResult struct {
	val Value
	ok  bool
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	vmt.opts = append(vmt.opts, opts...)
	return vmt
}

// withStack seeds the stack before running any do() instructions; it has no
// effect on a source or program evaluation, which always starts empty.
func (vmt vmTestCase) withStack(values ...Value) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.stack = append(vm.stack, values...)
	}))
	return vmt
}

func (vmt vmTestCase) withSource(lines ...string) vmTestCase {
	vmt.src = append(vmt.src, lines...)
	return vmt
}

func (vmt vmTestCase) withProgram(prog Program) vmTestCase {
	vmt.prog = prog
	return vmt
}

// do runs the given instructions directly against the seeded stack, without
// resetting the VM first.
func (vmt vmTestCase) do(insns ...Instruction) vmTestCase {
	vmt.ops = append(vmt.ops, insns...)
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectStack(values ...Value) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, _ vmResult) {
		if values == nil {
			values = []Value{}
		}
		assert.Equal(t, values, append([]Value{}, vm.stack...), "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectResult(val Value) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, _ *VM, res vmResult) {
		if assert.True(t, res.ok, "expected a result value") {
			assert.Equal(t, val, res.val, "expected result value")
		}
	})
	return vmt
}

func (vmt vmTestCase) expectNoResult() vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, _ *VM, res vmResult) {
		assert.False(t, res.ok, "expected no result, got %v", res.val)
	})
	return vmt
}

func (vmt vmTestCase) expectPC(pc int32) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, _ vmResult) {
		assert.Equal(t, pc, vm.pc, "expected program counter")
	})
	return vmt
}

func (vmt vmTestCase) expectSteps(steps int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, _ vmResult) {
		assert.Equal(t, steps, vm.steps, "expected step count")
	})
	return vmt
}

func (vmt vmTestCase) expectDump(lines ...string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, _ vmResult) {
		var out strings.Builder
		assert.NoError(t, vm.Dump(&out), "unexpected dump error")
		assert.Equal(t, strings.Join(lines, "\n")+"\n", out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	// trace output is only interesting once something has gone wrong
	var trace []string
	logf := func(mess string, args ...interface{}) {
		trace = append(trace, fmt.Sprintf(mess, args...))
	}
	defer func() {
		if t.Failed() {
			for _, line := range trace {
				t.Logf("trace: %v", line)
			}
		}
	}()

	prog, err := vmt.compile(logf)
	if err != nil {
		vmt.checkError(t, err)
		return
	}

	vm := vmt.buildVM(logf)
	res, err := vmt.runVM(vm, prog)
	defer func() {
		if t.Failed() {
			t.Logf("program: %# v", pretty.Formatter(vm.prog))
			dumpToTest(t, vm)
		}
	}()

	vmt.checkError(t, err)
	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm, res)
		}
	}
}

func (vmt vmTestCase) checkError(t *testing.T, err error) {
	if vmt.wantErr != nil {
		assert.ErrorIs(t, err, vmt.wantErr, "expected error")
	} else {
		assert.NoError(t, err, "unexpected error")
	}
}

func (vmt vmTestCase) compile(logf func(string, ...interface{})) (Program, error) {
	if vmt.src == nil {
		return vmt.prog, nil
	}
	p := NewParser(WithName(vmt.name), WithLogf(logf))
	prog, err := p.Parse(lines(vmt.src...))
	if err == nil {
		err = p.Check()
	}
	return prog, err
}

func (vmt vmTestCase) buildVM(logf func(string, ...interface{})) *VM {
	var vm VM
	VMOptions(WithLogf(logf), VMOptions(vmt.opts...)).apply(&vm)
	return &vm
}

func (vmt vmTestCase) runVM(vm *VM, prog Program) (res vmResult, err error) {
	if len(vmt.ops) == 0 {
		res.val, res.ok, err = vm.Eval(prog)
		return res, err
	}
	vm.prog, vm.pc = vmt.ops, 0
	err = panicerr.Recover("vmTestCase.ops", func() error {
		vm.exec()
		return nil
	})
	if err == nil {
		res.val, res.ok = vm.top()
	}
	return res, err
}

func dumpToTest(t *testing.T, vm *VM) {
	lw := &logio.Writer{Logf: t.Logf, Prefix: "dump: "}
	defer lw.Close()
	if err := vm.Dump(lw); err != nil {
		t.Logf("dump failed: %v", err)
	}
}

//// utilities

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func insn(code Code, operands ...Operand) Instruction {
	return Instruction{Code: code, Operands: operands}
}

// resolvedLabel builds a standalone label already resolved to pos; a negative
// pos leaves it unresolved.
func resolvedLabel(name string, pos int32) *Label {
	return &Label{Name: name, ID: 1, pos: pos}
}

func ints(ns ...int32) []Value {
	values := make([]Value, len(ns))
	for i, n := range ns {
		values[i] = Int(n)
	}
	return values
}
