package rubima

import (
	"sort"
	"strconv"
	"strings"
)

// Code is the operation portion of an Instruction.
type Code uint8

// The closed set of instruction codes, in mnemonic table order.
const (
	Nop     Code = iota // nop       do nothing
	Push                // push N    push an integer constant
	Pop                 // pop       discard the top of stack
	Dup                 // dup       duplicate the top of stack
	Add                 // add       pop a, pop b, push a + b
	Sub                 // sub       pop a, pop b, push a - b
	Mul                 // mul       pop a, pop b, push a * b
	Div                 // div       pop a, pop b, push b / a
	Not                 // not       pop a, push !a
	Smaller             // smaller   pop a, pop b, push a < b
	Bigger              // bigger    pop a, pop b, push a > b
	Goto                // goto :L   jump to label L
	If                  // if :L     pop a, jump to label L if a is true
	Error               // <INTERNAL> any unrecognized mnemonic

	codeMax
)

var codeNames = [codeMax]string{
	"nop",
	"push",
	"pop",
	"dup",
	"add",
	"sub",
	"mul",
	"div",
	"not",
	"smaller",
	"bigger",
	"goto",
	"if",
	"error",
}

var codeByName map[string]Code

func init() {
	codeByName = make(map[string]Code, len(codeNames))
	for code, name := range codeNames[:Error] {
		codeByName[name] = Code(code)
	}
}

// lookupCode maps a mnemonic to its code; unrecognized mnemonics, including
// "error" itself, map to Error.
func lookupCode(mnemonic string) Code {
	if code, ok := codeByName[mnemonic]; ok {
		return code
	}
	return Error
}

func (code Code) String() string {
	if code < codeMax {
		return codeNames[code]
	}
	return "code(" + strconv.Itoa(int(code)) + ")"
}

type operandKind uint8

const (
	operandInt operandKind = iota + 1
	operandLabel
)

// Operand is either an integer constant or a jump target label.
// The zero Operand is neither.
type Operand struct {
	kind  operandKind
	n     int32
	label *Label
}

// IntOperand returns an integer constant operand.
func IntOperand(n int32) Operand { return Operand{kind: operandInt, n: n} }

// LabelOperand returns a jump target operand; the label is shared, not
// copied, so a later resolution is visible through the operand.
func LabelOperand(label *Label) Operand { return Operand{kind: operandLabel, label: label} }

// Int returns the operand's integer value, and whether it is one.
func (op Operand) Int() (int32, bool) { return op.n, op.kind == operandInt }

// Target returns the operand's jump target label, and whether it is one.
func (op Operand) Target() (*Label, bool) { return op.label, op.kind == operandLabel && op.label != nil }

func (op Operand) String() string {
	switch op.kind {
	case operandInt:
		return strconv.FormatInt(int64(op.n), 10)
	case operandLabel:
		if op.label != nil {
			return ":" + op.label.Name
		}
	}
	return "<invalid operand>"
}

// Instruction is one compiled program statement.
type Instruction struct {
	Code     Code
	Operands []Operand
}

// String renders the instruction in its source form, e.g. "if :label".
func (insn Instruction) String() string {
	if len(insn.Operands) == 0 {
		return insn.Code.String()
	}
	var sb strings.Builder
	sb.WriteString(insn.Code.String())
	for _, op := range insn.Operands {
		sb.WriteByte(' ')
		sb.WriteString(op.String())
	}
	return sb.String()
}

// operand returns the i-th operand, or the zero Operand if there is none.
func (insn Instruction) operand(i int) Operand {
	if i < len(insn.Operands) {
		return insn.Operands[i]
	}
	return Operand{}
}

// Program is a compiled instruction sequence; an instruction's index is its
// program counter value.
type Program []Instruction

// Labels returns the distinct labels referenced by the program's operands,
// ordered by identity.
func (prog Program) Labels() []*Label {
	var labels []*Label
	seen := make(map[*Label]struct{})
	for _, insn := range prog {
		for _, op := range insn.Operands {
			if label, ok := op.Target(); ok {
				if _, dup := seen[label]; !dup {
					seen[label] = struct{}{}
					labels = append(labels, label)
				}
			}
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].ID < labels[j].ID })
	return labels
}

func (prog Program) String() string {
	var sb strings.Builder
	for _, insn := range prog {
		sb.WriteString(insn.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
