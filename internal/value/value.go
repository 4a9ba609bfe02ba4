// Package value implements the tagged Value variant and the heap-allocated
// Object kinds (string, function, native) that back the language's runtime
// data model.
package value

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is a tagged union: exactly one of Bool/Num/Obj is meaningful,
// selected by Kind.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Obj  Object
}

func Nil() Value                { return Value{Kind: KindNil} }
func NewBool(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func NewNumber(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func NewObject(o Object) Value  { return Value{Kind: KindObject, Obj: o} }

func (v Value) IsNil() bool    { return v.Kind == KindNil }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }
func (v Value) IsString() bool {
	return v.Kind == KindObject && v.Obj != nil && v.Obj.Type() == ObjStringKind
}
func (v Value) IsFunction() bool {
	return v.Kind == KindObject && v.Obj != nil && v.Obj.Type() == ObjFunctionKind
}
func (v Value) IsNative() bool {
	return v.Kind == KindObject && v.Obj != nil && v.Obj.Type() == ObjNativeKind
}
func (v Value) IsCallable() bool { return v.IsFunction() || v.IsNative() }

func (v Value) AsString() string {
	return v.Obj.(*ObjString).Chars
}

func (v Value) AsFunction() *ObjFunction {
	return v.Obj.(*ObjFunction)
}

func (v Value) AsNative() *ObjNative {
	return v.Obj.(*ObjNative)
}

// IsTruthy reports whether v is truthy: everything except nil and false.
func IsTruthy(v Value) bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool
	default:
		return true
	}
}

const numberEpsilon = 1e-5

// Equals is the structural equality used by the EQUAL opcode. Cross-kind
// comparison (and comparison of objects of incompatible Object kinds) is a
// runtime error for `==`, nil==nil excepted — but nil only ever shares a
// Kind with another nil, so that case falls out of the same-Kind check.
func Equals(a, b Value) (bool, error) {
	if a.Kind != b.Kind {
		return false, fmt.Errorf("cannot compare values of different types")
	}
	switch a.Kind {
	case KindNil:
		return true, nil
	case KindBool:
		return a.Bool == b.Bool, nil
	case KindNumber:
		return math.Abs(a.Num-b.Num) < numberEpsilon, nil
	case KindObject:
		if a.Obj == nil || b.Obj == nil {
			return a.Obj == b.Obj, nil
		}
		if a.Obj.Type() != b.Obj.Type() {
			return false, fmt.Errorf("cannot compare values of different types")
		}
		if a.Obj.Type() == ObjStringKind {
			return a.Obj.(*ObjString).Chars == b.Obj.(*ObjString).Chars, nil
		}
		return a.Obj == b.Obj, nil
	default:
		return false, nil
	}
}

// String renders v for `print` and for disassembly output. Numbers are
// trimmed of trailing zeros (humanize.Ftoa) so that integral results like
// `1 + 2 * 3` print as "7", not "7.000000".
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return humanize.Ftoa(v.Num)
	case KindObject:
		if v.Obj == nil {
			return "nil"
		}
		return v.Obj.String()
	default:
		return "<unknown>"
	}
}
