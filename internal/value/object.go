package value

import "fmt"

type ObjType int

const (
	ObjStringKind ObjType = iota
	ObjFunctionKind
	ObjNativeKind
)

// Object is implemented by every heap-allocated value kind.
type Object interface {
	Type() ObjType
	String() string
}

// ObjString is an immutable owned byte buffer. Two strings are value-equal
// when their bytes match (see Equals).
type ObjString struct {
	Chars string
}

func NewString(s string) *ObjString { return &ObjString{Chars: s} }

func (s *ObjString) Type() ObjType { return ObjStringKind }
func (s *ObjString) String() string {
	return s.Chars
}

// ObjFunction is a user-defined function: a name, an arity, and an owned
// chunk of compiled bytecode. Chunk is stored as interface{} (bound to a
// concrete *chunk.Chunk by the compiler/vm packages) so this package does
// not import chunk, which itself imports value for its constant pool.
type ObjFunction struct {
	Name  string
	Arity int
	Chunk interface{}
}

func (f *ObjFunction) Type() ObjType { return ObjFunctionKind }
func (f *ObjFunction) String() string {
	if f.Name == "" {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

// NativeFn is a host-provided callable: given argc and the argument slice
// (vm.stack[argBase:argBase+argc]), it returns the call's result value.
type NativeFn func(argc int, args []Value) Value

type ObjNative struct {
	Name string
	Fn   NativeFn
}

func (n *ObjNative) Type() ObjType { return ObjNativeKind }
func (n *ObjNative) String() string {
	return fmt.Sprintf("<native fn %s>", n.Name)
}
