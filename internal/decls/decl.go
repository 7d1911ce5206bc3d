package decls

import (
	"fmt"

	"comma/internal/source"
	"comma/internal/types"
)

// Kind tags a declaration.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindFunction
	KindProcedure
	// KindCarrier is the representation-type declaration of a domain.
	KindCarrier
	KindType
	KindEnumLiteral
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindProcedure:
		return "procedure"
	case KindCarrier:
		return "carrier"
	case KindType:
		return "type"
	case KindEnumLiteral:
		return "enumeration literal"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsSubroutine reports whether declarations of this kind take part in
// overloading by profile.
func (k Kind) IsSubroutine() bool {
	return k == KindFunction || k == KindProcedure
}

// overloadable kinds may share a name with other declarations whose
// profiles differ.
func (k Kind) overloadable() bool {
	return k.IsSubroutine() || k == KindEnumLiteral
}

// Decl is one declaration owned by a Region.
type Decl struct {
	Kind Kind
	Name source.StringID
	Span source.Span
	// Type is the subroutine type, the declared type, the carrier's
	// representation, or the enumeration type of a literal.
	Type types.TypeID
	// Members are nested declarations propagated with this one
	// (enumeration literals).
	Members []*Decl
	// Origin points at the defining declaration when this one was
	// acquired from another region. Nil for local declarations.
	Origin *Decl
	// Overrides is the inherited declaration this one replaced.
	Overrides *Decl
	// Defined is set when the declaration has a body or completion.
	Defined bool
}

// Inherited reports whether d was acquired rather than declared locally.
func (d *Decl) Inherited() bool {
	return d != nil && d.Origin != nil
}

// Root follows Origin to the defining declaration.
func (d *Decl) Root() *Decl {
	for d != nil && d.Origin != nil {
		d = d.Origin
	}
	return d
}

// Clone returns a deep copy of d; members are cloned too. Origin and
// Overrides keep pointing at the same declarations.
func (d *Decl) Clone() *Decl {
	if d == nil {
		return nil
	}
	out := *d
	if len(d.Members) > 0 {
		out.Members = make([]*Decl, len(d.Members))
		for i, m := range d.Members {
			out.Members[i] = m.Clone()
		}
	}
	return &out
}
