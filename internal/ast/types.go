package ast

import "fmt"

// Type represents a MiniLang type annotation. The set is closed: four
// primitives plus fixed-size arrays of a primitive element.
type Type interface {
	String() string
	isType()
}

// PrimitiveKind represents the kind of a primitive type.
type PrimitiveKind string

const (
	Int    PrimitiveKind = "int"
	Float  PrimitiveKind = "float"
	Bool   PrimitiveKind = "bool"
	String PrimitiveKind = "string"
)

// Primitive represents a primitive type.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return string(p.Kind) }
func (*Primitive) isType()          {}

// Common primitive instances
var (
	TypeInt    = &Primitive{Kind: Int}
	TypeFloat  = &Primitive{Kind: Float}
	TypeBool   = &Primitive{Kind: Bool}
	TypeString = &Primitive{Kind: String}
)

// Array represents a fixed-size array type: int[10]
type Array struct {
	Elem Type
	Size int
}

func (a *Array) String() string { return fmt.Sprintf("%s[%d]", a.Elem, a.Size) }
func (*Array) isType()          {}

// TypesEqual reports whether two types are exactly equal. MiniLang performs
// no implicit conversions, so this is the only compatibility relation.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case *Primitive:
		bt, ok := b.(*Primitive)
		return ok && at.Kind == bt.Kind
	case *Array:
		bt, ok := b.(*Array)
		return ok && at.Size == bt.Size && TypesEqual(at.Elem, bt.Elem)
	}
	return false
}
