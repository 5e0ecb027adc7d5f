package rubima

import (
	"github.com/jcorbin/rubima/internal/panicerr"
)

// New creates a new VM with the given options.
func New(opts ...VMOption) *VM {
	var vm VM
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Eval runs prog from its first instruction until the program counter passes
// its end, returning the value left on top of the stack, if any.
//
// Evaluation halts at the first failure with a *RuntimeError, whose Err is
// one of the Err* runtime values, like ErrEmptyStack or ErrDivideByZero.
// The VM is reset at the start of every Eval, but keeps its final state
// afterwards for inspection, e.g. by Dump.
func (vm *VM) Eval(prog Program) (Value, bool, error) {
	vm.reset(prog)
	if err := panicerr.Recover("VM", func() error {
		vm.exec()
		return nil
	}); err != nil {
		return Value{}, false, err
	}
	val, ok := vm.top()
	return val, ok, nil
}

// Eval runs prog on a new VM; see VM.Eval.
func Eval(prog Program, opts ...VMOption) (Value, bool, error) {
	return New(opts...).Eval(prog)
}
