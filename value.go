package rubima

import "strconv"

type valueKind uint8

const (
	kindInt valueKind = iota + 1
	kindBool
)

// Value is a runtime stack value: either an int32 or a bool.
type Value struct {
	kind valueKind
	n    int32
}

// Int returns an integer Value.
func Int(n int32) Value { return Value{kindInt, n} }

// Bool returns a boolean Value.
func Bool(b bool) Value {
	if b {
		return Value{kindBool, 1}
	}
	return Value{kindBool, 0}
}

// AsInt returns the value's integer, and whether it is one.
func (val Value) AsInt() (int32, bool) { return val.n, val.kind == kindInt }

// IsBool returns true for boolean values.
func (val Value) IsBool() bool { return val.kind == kindBool }

// Truth interprets the value as a condition. Only Bool(false) is false: every
// integer, zero included, is true.
func (val Value) Truth() bool {
	return val.kind != kindBool || val.n != 0
}

func (val Value) String() string {
	switch val.kind {
	case kindInt:
		return strconv.FormatInt(int64(val.n), 10)
	case kindBool:
		return strconv.FormatBool(val.n != 0)
	}
	return "<no value>"
}
