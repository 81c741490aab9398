// value.go: the runtime value model.
//
// Value is a tagged union covering the six runtime kinds: nil, booleans,
// 64-bit integers, 64-bit floats, strings and methods (closures). Values are
// immutable once constructed; arithmetic and comparison always produce new
// Values.
package cortado

import (
	"fmt"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNil    ValueTag = iota // nil (no payload)
	VTBool                   // bool
	VTInt                    // int64
	VTFloat                  // float64
	VTStr                    // string
	VTMethod                 // *Method (closure; native or user-defined)
)

func (t ValueTag) String() string {
	switch t {
	case VTNil:
		return "Nil"
	case VTBool:
		return "Bool"
	case VTInt:
		return "Int"
	case VTFloat:
		return "Float"
	case VTStr:
		return "Str"
	case VTMethod:
		return "Method"
	default:
		return "Unknown"
	}
}

// Value is the universal runtime carrier. Tag determines which Go type
// Data holds (see ValueTag).
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil Value.
var Nil = Value{Tag: VTNil}

// Primitive constructors.
func Bool(b bool) Value    { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value    { return Value{Tag: VTInt, Data: n} }
func Float(f float64) Value { return Value{Tag: VTFloat, Data: f} }
func Str(s string) Value   { return Value{Tag: VTStr, Data: s} }

// Method is a callable value: either a user-defined method (Body + the Env
// captured at its definition site) or a native builtin (Native non-nil).
type Method struct {
	Name   string
	Params []string
	Body   *Block
	Env    *Env
	Native NativeImpl // non-nil for builtins such as print
}

// NativeImpl is the implementation signature for builtin methods. Arity is
// checked by the evaluator before the call; args has exactly len(Params)
// elements.
type NativeImpl func(ip *Interpreter, args []Value) Value

// MethodVal wraps *Method into a Value (Tag=VTMethod).
func MethodVal(m *Method) Value { return Value{Tag: VTMethod, Data: m} }

// String renders a debug representation (REPL output uses FormatValue).
func (v Value) String() string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTMethod:
		m := v.Data.(*Method)
		return fmt.Sprintf("<method %s/%d>", m.Name, len(m.Params))
	default:
		return "<unknown>"
	}
}

// valueEqual is the structural equality behind == and /=. Values of
// different kinds are never equal (no numeric coercion); methods compare by
// identity.
func valueEqual(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNil:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTInt:
		return a.Data.(int64) == b.Data.(int64)
	case VTFloat:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTMethod:
		return a.Data.(*Method) == b.Data.(*Method)
	default:
		return false
	}
}
