package types

import "fmt"

// TypeID uniquely identifies a type inside the interner. Equality of
// TypeIDs is type identity: every descriptor reaching the checker core has
// been canonicalized by the interner.
type TypeID uint32

// NoTypeID marks the absence of a type (e.g. the result of a procedure).
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindPercent is the self-type "%" of one model.
	KindPercent
	// KindAbstract is a formal parameter of a variety or functor.
	KindAbstract
	// KindDomain is a domain instance handle.
	KindDomain
	// KindSignature is a signature instance handle.
	KindSignature
	KindInteger
	KindEnum
	KindArray
	KindAccess
	KindRecord
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindPercent:
		return "percent"
	case KindAbstract:
		return "abstract"
	case KindDomain:
		return "domain"
	case KindSignature:
		return "signature"
	case KindInteger:
		return "integer"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindAccess:
		return "access"
	case KindRecord:
		return "record"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsHandle reports whether the kind refers to an entity owned by a model
// (self-types, formals and instances).
func (k Kind) IsHandle() bool {
	switch k {
	case KindPercent, KindAbstract, KindDomain, KindSignature:
		return true
	}
	return false
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Owner   uint32 // model id for handle kinds
	Index   uint32 // formal position (abstract) or instance slot (domain, signature)
	Elem    TypeID // array component, access target
	Key     TypeID // array index type
	Payload uint32 // side-table slot for nominal and composite kinds
}

// Mode is the passing mode of a subroutine parameter.
type Mode uint8

const (
	ModeIn Mode = iota
	ModeOut
	ModeInOut
)

func (m Mode) String() string {
	switch m {
	case ModeIn:
		return "in"
	case ModeOut:
		return "out"
	case ModeInOut:
		return "in out"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// MakePercent describes the self-type of model owner.
func MakePercent(owner uint32) Type {
	return Type{Kind: KindPercent, Owner: owner}
}

// MakeDomain describes the handle of instance slot of model owner.
func MakeDomain(owner, slot uint32) Type {
	return Type{Kind: KindDomain, Owner: owner, Index: slot}
}

// MakeSignature describes the handle of signature instance slot of model owner.
func MakeSignature(owner, slot uint32) Type {
	return Type{Kind: KindSignature, Owner: owner, Index: slot}
}

// MakeArray describes an array indexed by index with components of elem.
func MakeArray(index, elem TypeID) Type {
	return Type{Kind: KindArray, Key: index, Elem: elem}
}

// MakeAccess describes an access (pointer) to elem.
func MakeAccess(elem TypeID) Type {
	return Type{Kind: KindAccess, Elem: elem}
}
