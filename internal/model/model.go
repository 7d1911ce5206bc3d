package model

import (
	"fmt"

	"comma/internal/decls"
	"comma/internal/source"
	"comma/internal/types"
)

// ID identifies a model inside its Context.
type ID uint32

// NoID is the invalid model.
const NoID ID = 0

// Kind enumerates the model family.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindSignature
	KindVariety
	KindDomain
	KindFunctor
)

func (k Kind) String() string {
	switch k {
	case KindSignature:
		return "signature"
	case KindVariety:
		return "variety"
	case KindDomain:
		return "domain"
	case KindFunctor:
		return "functor"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsSignature reports whether models of this kind are used as constraints.
func (k Kind) IsSignature() bool {
	return k == KindSignature || k == KindVariety
}

// IsParameterized reports whether models of this kind take arguments.
func (k Kind) IsParameterized() bool {
	return k == KindVariety || k == KindFunctor
}

// Model is the closed family {*Signature, *Variety, *Domain, *Functor}.
type Model interface {
	ID() ID
	Kind() Kind
	Name() source.StringID
	Span() source.Span
	// Percent is the self-type "%" of the model.
	Percent() types.TypeID
	Signatures() *SignatureSet
	// Public is the region of declarations the model exports (domains) or
	// requires (signatures).
	Public() *decls.Region
	Arity() int
	Formals() []*AbstractDomain
	Context() *Context

	sealed()
}

// base holds what every model has.
type base struct {
	ctx     *Context
	id      ID
	kind    Kind
	name    source.StringID
	span    source.Span
	percent types.TypeID
	sigs    *SignatureSet
	public  *decls.Region
	formals []*AbstractDomain
}

func (b *base) ID() ID                     { return b.id }
func (b *base) Kind() Kind                 { return b.kind }
func (b *base) Name() source.StringID      { return b.name }
func (b *base) Span() source.Span          { return b.span }
func (b *base) Percent() types.TypeID      { return b.percent }
func (b *base) Signatures() *SignatureSet  { return b.sigs }
func (b *base) Public() *decls.Region      { return b.public }
func (b *base) Arity() int                 { return len(b.formals) }
func (b *base) Formals() []*AbstractDomain { return b.formals }
func (b *base) Context() *Context          { return b.ctx }
func (b *base) sealed()                    {}

// FormalTypes returns the abstract types of the formals, in order.
func (b *base) FormalTypes() []types.TypeID {
	out := make([]types.TypeID, len(b.formals))
	for i, f := range b.formals {
		out[i] = f.typ
	}
	return out
}

// FormalIndex returns the position of the formal whose abstract type is
// t, or -1. Arity is small; a linear scan is enough.
func (b *base) FormalIndex(t types.TypeID) int {
	for i, f := range b.formals {
		if f.typ == t {
			return i
		}
	}
	return -1
}

// KeywordIndex returns the position of the formal named name, or -1.
func (b *base) KeywordIndex(name source.StringID) int {
	for i, f := range b.formals {
		if f.name == name {
			return i
		}
	}
	return -1
}

// Signature is a non-parameterized interface.
type Signature struct {
	base
	instances *instanceArena[*SignatureInstance]
}

// Variety is a parameterized signature.
type Variety struct {
	Signature
}

// Domain is a non-parameterized module.
type Domain struct {
	base
	definition
	instances *instanceArena[*DomainInstance]
}

// Functor is a parameterized domain. Its Implementation is a template
// rewritten independently for every instance.
type Functor struct {
	Domain
}

// signatureModel is implemented by *Signature and *Variety.
type signatureModel interface {
	Model
	signature() *Signature
}

func (s *Signature) signature() *Signature { return s }

// definitionModel is implemented by *Domain and *Functor.
type definitionModel interface {
	Model
	domain() *Domain
}

func (d *Domain) domain() *Domain { return d }

var (
	_ signatureModel  = (*Signature)(nil)
	_ signatureModel  = (*Variety)(nil)
	_ definitionModel = (*Domain)(nil)
	_ definitionModel = (*Functor)(nil)
)
