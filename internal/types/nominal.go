package types

import (
	"slices"

	"comma/internal/source"
)

// AbstractInfo stores metadata about a formal parameter.
type AbstractInfo struct {
	Name  source.StringID
	Owner uint32
	Index uint32
}

// IntegerInfo stores the bounds of an integer type.
type IntegerInfo struct {
	Name source.StringID
	Decl source.Span
	Low  int64
	High int64
}

// EnumInfo stores the literal names of an enumeration type.
type EnumInfo struct {
	Name     source.StringID
	Decl     source.Span
	Literals []source.StringID
}

// RegisterAbstract allocates the type of formal parameter index of model owner.
func (in *Interner) RegisterAbstract(name source.StringID, owner, index uint32) TypeID {
	in.abstracts = append(in.abstracts, AbstractInfo{Name: name, Owner: owner, Index: index})
	slot := slotOf(len(in.abstracts)-1, "abstract info")
	return in.internRaw(Type{Kind: KindAbstract, Owner: owner, Index: index, Payload: slot})
}

// AbstractInfo returns metadata for an abstract TypeID.
func (in *Interner) AbstractInfo(id TypeID) (*AbstractInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindAbstract || tt.Payload == 0 || int(tt.Payload) >= len(in.abstracts) {
		return nil, false
	}
	return &in.abstracts[tt.Payload], true
}

// RegisterInteger allocates a fresh integer type with the given range.
func (in *Interner) RegisterInteger(name source.StringID, decl source.Span, low, high int64) TypeID {
	in.integers = append(in.integers, IntegerInfo{Name: name, Decl: decl, Low: low, High: high})
	slot := slotOf(len(in.integers)-1, "integer info")
	return in.internRaw(Type{Kind: KindInteger, Payload: slot})
}

// IntegerInfo returns metadata for an integer TypeID.
func (in *Interner) IntegerInfo(id TypeID) (*IntegerInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindInteger || tt.Payload == 0 || int(tt.Payload) >= len(in.integers) {
		return nil, false
	}
	return &in.integers[tt.Payload], true
}

// RegisterEnum allocates a fresh enumeration type.
func (in *Interner) RegisterEnum(name source.StringID, decl source.Span, literals []source.StringID) TypeID {
	in.enums = append(in.enums, EnumInfo{Name: name, Decl: decl, Literals: slices.Clone(literals)})
	slot := slotOf(len(in.enums)-1, "enum info")
	return in.internRaw(Type{Kind: KindEnum, Payload: slot})
}

// EnumInfo returns metadata for an enumeration TypeID.
func (in *Interner) EnumInfo(id TypeID) (*EnumInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindEnum || tt.Payload == 0 || int(tt.Payload) >= len(in.enums) {
		return nil, false
	}
	return &in.enums[tt.Payload], true
}
