package rubima

import (
	"errors"
	"fmt"
)

// Parse errors, wrapped by *ParseError.
var (
	ErrSyntax         = errors.New("syntax error")
	ErrStructure      = errors.New("malformed statement")
	ErrIntRange       = errors.New("integer literal out of range")
	ErrDuplicateLabel = errors.New("label already defined")
	ErrUndefinedLabel = errors.New("undefined label")
)

// Runtime errors, wrapped by *RuntimeError.
var (
	ErrEmptyStack      = errors.New("empty stack")
	ErrNotInt          = errors.New("value is not an int")
	ErrDivideByZero    = errors.New("division by zero")
	ErrBadOperand      = errors.New("invalid operand")
	ErrBadJump         = errors.New("jump target must be a label")
	ErrUnresolvedLabel = errors.New("unresolved label")
	ErrInvalidCode     = errors.New("invalid instruction")
	ErrStepLimit       = errors.New("step limit exceeded")
	ErrStackLimit      = errors.New("stack limit exceeded")
)

// ParseError reports the input line that a Parser rejected.
type ParseError struct {
	Name string // input name
	Line int    // 1-based line number
	Rest string // unparsed remainder of the line
	Err  error
}

func (pe *ParseError) Error() string {
	if pe.Rest == "" {
		return fmt.Sprintf("%v:%v: %v", pe.Name, pe.Line, pe.Err)
	}
	return fmt.Sprintf("%v:%v: %v near %q", pe.Name, pe.Line, pe.Err, pe.Rest)
}

func (pe *ParseError) Unwrap() error { return pe.Err }

// RuntimeError reports why evaluation halted.
type RuntimeError struct {
	PC   int32
	Code Code
	Err  error
}

func (re *RuntimeError) Error() string {
	return fmt.Sprintf("@%v %v: %v", re.PC, re.Code, re.Err)
}

func (re *RuntimeError) Unwrap() error { return re.Err }

type duplicateLabelError struct {
	name string
	pos  int32
}

func (dle duplicateLabelError) Error() string {
	return fmt.Sprintf("label :%v already defined @%v", dle.name, dle.pos)
}

func (dle duplicateLabelError) Is(err error) bool { return err == ErrDuplicateLabel }

type undefinedLabelError string

func (name undefinedLabelError) Error() string {
	return fmt.Sprintf("label :%v referenced but never defined", string(name))
}

func (name undefinedLabelError) Is(err error) bool { return err == ErrUndefinedLabel }

type unresolvedLabelError string

func (name unresolvedLabelError) Error() string {
	return fmt.Sprintf("jump to unresolved label :%v", string(name))
}

func (name unresolvedLabelError) Is(err error) bool { return err == ErrUnresolvedLabel }

type intRangeError string

func (lit intRangeError) Error() string {
	return fmt.Sprintf("integer literal %v out of range", string(lit))
}

func (lit intRangeError) Is(err error) bool { return err == ErrIntRange }
