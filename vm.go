package rubima

// VM evaluates a Program on an operand stack.
//
// Execution starts at program counter 0 with an empty stack, and runs until
// the counter indexes past the end of the program. Every instruction advances
// the counter by one, unless it jumped.
type VM struct {
	logging

	prog  Program
	pc    int32
	stack []Value

	steps      int
	stepLimit  int
	stackLimit int
}

//// Stack Operations

// Name   Function
// nop    do nothing
func (vm *VM) nop(Instruction) bool { return false }

// Name     Function
// push N   push the integer constant N
func (vm *VM) pushc(insn Instruction) bool {
	n, ok := insn.operand(0).Int()
	if !ok {
		vm.halt(ErrBadOperand)
	}
	vm.push(Int(n))
	return false
}

// Name   Function
// pop    pop and discard the top of stack
func (vm *VM) drop(Instruction) bool { vm.pop(); return false }

// Name   Function
// dup    pop the top of stack, push it twice
func (vm *VM) dup(Instruction) bool { a := vm.pop(); vm.push(a); vm.push(a); return false }

//// Integer Operations
//
// Binary operations take their left operand from the top of stack, and their
// right operand from below it: "push 3, push 10, sub" leaves 7. Division is
// the exception, its divisor is always the top of stack.

// Name   Function
// add    pop a, pop b, push a + b
func (vm *VM) add(Instruction) bool { a, b := vm.popInt(), vm.popInt(); vm.push(Int(a + b)); return false }

// Name   Function
// sub    pop a, pop b, push a - b
func (vm *VM) sub(Instruction) bool { a, b := vm.popInt(), vm.popInt(); vm.push(Int(a - b)); return false }

// Name   Function
// mul    pop a, pop b, push a * b
func (vm *VM) mul(Instruction) bool { a, b := vm.popInt(), vm.popInt(); vm.push(Int(a * b)); return false }

// Name   Function
// div    pop a, pop b, push b / a truncated toward zero
func (vm *VM) div(Instruction) bool {
	a, b := vm.popInt(), vm.popInt()
	if a == 0 {
		vm.halt(ErrDivideByZero)
	}
	vm.push(Int(b / a))
	return false
}

//// Logical Operations

// Name   Function
// not    pop a, push the negation of its truth
func (vm *VM) not(Instruction) bool { vm.push(Bool(!vm.pop().Truth())); return false }

// Name      Function
// smaller   pop a, pop b, push a < b
func (vm *VM) smaller(Instruction) bool { a, b := vm.popInt(), vm.popInt(); vm.push(Bool(a < b)); return false }

// Name     Function
// bigger   pop a, pop b, push a > b
func (vm *VM) bigger(Instruction) bool { a, b := vm.popInt(), vm.popInt(); vm.push(Bool(a > b)); return false }

//// Control Operations

// Name      Function
// goto :L   set the program counter to label L
func (vm *VM) jump(insn Instruction) bool { vm.pc = vm.target(insn); return true }

// Name    Function
// if :L   pop a; if it is true, set the program counter to label L
func (vm *VM) branch(insn Instruction) bool {
	if !vm.pop().Truth() {
		return false
	}
	vm.pc = vm.target(insn)
	return true
}

// Error marks a mnemonic that the parser did not recognize; it, and any
// other code missing from the table, cannot run.
func (vm *VM) invalid(Instruction) bool { vm.halt(ErrInvalidCode); return false }

var vmCodeTable [codeMax]func(vm *VM, insn Instruction) bool

func init() {
	vmCodeTable = [...]func(vm *VM, insn Instruction) bool{
		Nop:     (*VM).nop,
		Push:    (*VM).pushc,
		Pop:     (*VM).drop,
		Dup:     (*VM).dup,
		Add:     (*VM).add,
		Sub:     (*VM).sub,
		Mul:     (*VM).mul,
		Div:     (*VM).div,
		Not:     (*VM).not,
		Smaller: (*VM).smaller,
		Bigger:  (*VM).bigger,
		Goto:    (*VM).jump,
		If:      (*VM).branch,
		Error:   (*VM).invalid,
	}
}
