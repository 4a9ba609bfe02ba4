package value

import "fmt"

// Add implements the ADD opcode's two overloads: numeric addition and
// string concatenation. Any other combination is a runtime error.
func Add(a, b Value) (Value, error) {
	if a.IsNumber() && b.IsNumber() {
		return NewNumber(a.Num + b.Num), nil
	}
	if a.IsString() && b.IsString() {
		return NewObject(NewString(a.AsString() + b.AsString())), nil
	}
	return Value{}, fmt.Errorf("operands must be two numbers or two strings")
}
