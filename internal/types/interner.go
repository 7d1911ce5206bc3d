package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Interner provides stable TypeIDs. Structural descriptors are hash-consed,
// so building the same structure twice yields the same TypeID; nominal
// kinds (integer, enum, abstract) get a fresh TypeID per registration.
type Interner struct {
	types []Type
	index map[Type]TypeID

	abstracts []AbstractInfo
	integers  []IntegerInfo
	enums     []EnumInfo

	records     []RecordInfo
	recordIndex map[string]TypeID
	funcs       []FuncInfo
	funcIndex   map[string]TypeID
}

// NewInterner constructs an empty interner. Slot 0 of every table is the
// invalid sentinel.
func NewInterner() *Interner {
	in := &Interner{
		index:       make(map[Type]TypeID, 64),
		abstracts:   make([]AbstractInfo, 1, 16),
		integers:    make([]IntegerInfo, 1, 16),
		enums:       make([]EnumInfo, 1, 16),
		records:     make([]RecordInfo, 1, 16),
		recordIndex: make(map[string]TypeID, 16),
		funcs:       make([]FuncInfo, 1, 64),
		funcIndex:   make(map[string]TypeID, 64),
	}
	in.types = append(in.types, Type{Kind: KindInvalid})
	return in
}

// Intern ensures the structural descriptor t has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	id := in.internRaw(t)
	in.index[t] = id
	return id
}

// internRaw appends the descriptor without consulting the index.
func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	in.types = append(in.types, t)
	return TypeID(n)
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("types: invalid TypeID %d", id))
	}
	return tt
}

// KindOf returns the kind of id, KindInvalid for unknown ids.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// Len reports the number of types excluding the sentinel.
func (in *Interner) Len() int {
	return len(in.types) - 1
}

func slotOf(n int, what string) uint32 {
	slot, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("%s overflow: %w", what, err))
	}
	return slot
}
