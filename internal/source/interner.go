package source

import (
	"fmt"

	"fortio.org/safecast"
)

// StringID is an opaque handle to an interned identifier. Two identifiers
// are the same name iff their handles are equal.
type StringID uint32

// NoStringID marks an anonymous entity.
const NoStringID StringID = 0

// Interner hands out stable StringIDs. The checker core only compares
// handles; creating them is the front end's job.
type Interner struct {
	names []string
	index map[string]StringID
}

// NewInterner returns an interner with NoStringID bound to "".
func NewInterner() *Interner {
	return &Interner{
		names: []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the handle for s, allocating one on first use.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.names))
	if err != nil {
		panic(fmt.Errorf("identifier table overflow: %w", err))
	}
	id := StringID(n)
	in.names = append(in.names, s)
	in.index[s] = id
	return id
}

// Lookup returns the spelling behind id.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if in == nil || int(id) >= len(in.names) {
		return "", false
	}
	return in.names[id], true
}

// MustLookup panics on an unknown handle.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("source: unknown identifier handle %d", id))
	}
	return s
}

// Len counts interned identifiers including the anonymous slot.
func (in *Interner) Len() int {
	return len(in.names)
}
