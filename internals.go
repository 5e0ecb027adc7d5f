package rubima

import (
	"github.com/jcorbin/rubima/internal/panicerr"
)

func (vm *VM) halt(err error) {
	re := &RuntimeError{PC: vm.pc, Code: Error, Err: err}
	if vm.pc >= 0 && int(vm.pc) < len(vm.prog) {
		re.Code = vm.prog[vm.pc].Code
	}
	vm.logf("halt error: %v", re)
	panicerr.Halt(re)
}

func (vm *VM) push(val Value) {
	if limit := vm.stackLimit; limit != 0 && len(vm.stack) >= limit {
		vm.halt(ErrStackLimit)
	}
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop() (val Value) {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.halt(ErrEmptyStack)
	}
	val, vm.stack = vm.stack[i], vm.stack[:i]
	return val
}

func (vm *VM) popInt() int32 {
	n, ok := vm.pop().AsInt()
	if !ok {
		vm.halt(ErrNotInt)
	}
	return n
}

// target returns the resolved position of the instruction's jump label.
func (vm *VM) target(insn Instruction) int32 {
	label, ok := insn.operand(0).Target()
	if !ok {
		vm.halt(ErrBadJump)
	}
	if !label.Resolved() {
		vm.halt(unresolvedLabelError(label.Name))
	}
	return label.pos
}

func (vm *VM) reset(prog Program) {
	vm.prog = prog
	vm.pc = 0
	vm.stack = vm.stack[:0]
	vm.steps = 0
}

func (vm *VM) exec() {
	for int(vm.pc) < len(vm.prog) {
		vm.step()
	}
	vm.logf("done @%v -- s:%v", vm.pc, vm.stack)
}

func (vm *VM) step() {
	if limit := vm.stepLimit; limit != 0 && vm.steps >= limit {
		vm.halt(ErrStepLimit)
	}
	vm.steps++

	insn := vm.prog[vm.pc]
	if vm.logfn != nil {
		vm.logf("exec @%v %v -- s:%v", vm.pc, insn, vm.stack)
	}
	if code := insn.Code; code < codeMax && vmCodeTable[code] != nil {
		if !vmCodeTable[code](vm, insn) {
			vm.pc++
		}
	} else {
		vm.invalid(insn)
	}
}

func (vm *VM) top() (Value, bool) {
	if i := len(vm.stack) - 1; i >= 0 {
		return vm.stack[i], true
	}
	return Value{}, false
}
