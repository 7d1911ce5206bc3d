package decls

import (
	"fmt"
	"slices"

	"comma/internal/source"
	"comma/internal/types"
)

// AddResult describes what Region.Add did with a declaration.
type AddResult uint8

const (
	// Added means the declaration now belongs to the region.
	Added AddResult = iota
	// Duplicate means an identical declaration was already present; the
	// new one was dropped.
	Duplicate
	// Conflict means a declaration with the same name and an
	// indistinguishable profile was already present; the new one was
	// rejected.
	Conflict
)

func (r AddResult) String() string {
	switch r {
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	case Conflict:
		return "conflict"
	default:
		return fmt.Sprintf("AddResult(%d)", r)
	}
}

// Outcome reports the result of adding one declaration.
type Outcome struct {
	Decl     *Decl
	Result   AddResult
	Existing *Decl // the declaration that caused Duplicate or Conflict
	// Members holds member outcomes other than Added.
	Members []Outcome
}

// Conflicts flattens every conflicting outcome, members included.
func (o Outcome) Conflicts() []Outcome {
	var out []Outcome
	if o.Result == Conflict {
		out = append(out, o)
	}
	for _, m := range o.Members {
		out = append(out, m.Conflicts()...)
	}
	return out
}

// Region is an ordered collection of declarations with a name index.
// Membership only grows, except through Override.
type Region struct {
	types *types.Interner
	decls []*Decl
	index map[source.StringID][]*Decl
	// log records every insertion in order and is never shortened.
	log []*Decl
	// members marks declarations inserted through propagation.
	members map[*Decl]struct{}
}

// NewRegion creates an empty region. The interner is used to compare
// subroutine profiles.
func NewRegion(in *types.Interner) *Region {
	return &Region{
		types:   in,
		index:   make(map[source.StringID][]*Decl, 8),
		members: make(map[*Decl]struct{}),
	}
}

// Len returns the number of declarations, members included.
func (r *Region) Len() int {
	if r == nil {
		return 0
	}
	return len(r.decls)
}

// Decls returns the declarations in insertion order.
func (r *Region) Decls() []*Decl {
	if r == nil {
		return nil
	}
	return slices.Clone(r.decls)
}

// Version counts insertions so far. It only grows, even across Override.
func (r *Region) Version() int {
	if r == nil {
		return 0
	}
	return len(r.log)
}

// Roots returns the declarations in insertion order, leaving out members
// that were propagated together with their parent.
func (r *Region) Roots() []*Decl {
	return r.Since(0)
}

// Since returns the root declarations inserted after version v that are
// still members of the region.
func (r *Region) Since(v int) []*Decl {
	if r == nil || v >= len(r.log) {
		return nil
	}
	out := make([]*Decl, 0, len(r.log)-v)
	for _, d := range r.log[v:] {
		if _, nested := r.members[d]; nested {
			continue
		}
		if r.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}

// Lookup returns all declarations named name, in insertion order.
func (r *Region) Lookup(name source.StringID) []*Decl {
	if r == nil {
		return nil
	}
	return slices.Clone(r.index[name])
}

// LookupKind returns the first declaration named name of kind k.
func (r *Region) LookupKind(name source.StringID, k Kind) *Decl {
	if r == nil {
		return nil
	}
	for _, d := range r.index[name] {
		if d.Kind == k {
			return d
		}
	}
	return nil
}

// Carrier returns the carrier declaration, if any.
func (r *Region) Carrier() *Decl {
	if r == nil {
		return nil
	}
	for _, d := range r.decls {
		if d.Kind == KindCarrier {
			return d
		}
	}
	return nil
}

// Contains reports whether d itself (by identity) belongs to the region.
func (r *Region) Contains(d *Decl) bool {
	if r == nil || d == nil {
		return false
	}
	return slices.Contains(r.index[d.Name], d)
}

// Find returns the declaration matching d by name and exact type.
func (r *Region) Find(d *Decl) *Decl {
	if r == nil || d == nil {
		return nil
	}
	for _, e := range r.index[d.Name] {
		if e.Kind == d.Kind && e.Type == d.Type {
			return e
		}
	}
	return nil
}

// Add inserts d and propagates its members. Declarations are stored by
// pointer; callers hand over ownership of d.
func (r *Region) Add(d *Decl) Outcome {
	res, existing := r.check(d)
	out := Outcome{Decl: d, Result: res, Existing: existing}
	if res != Added {
		return out
	}
	r.insert(d)
	for _, m := range d.Members {
		r.members[m] = struct{}{}
		mo := r.Add(m)
		if mo.Result != Added || len(mo.Members) > 0 {
			out.Members = append(out.Members, mo)
		}
	}
	return out
}

// check classifies d against the declarations already present.
func (r *Region) check(d *Decl) (AddResult, *Decl) {
	for _, e := range r.index[d.Name] {
		if e.Kind == d.Kind && e.Type == d.Type {
			return Duplicate, e
		}
		if !e.Kind.overloadable() || !d.Kind.overloadable() {
			return Conflict, e
		}
		if r.indistinguishable(e, d) {
			return Conflict, e
		}
	}
	return Added, nil
}

// indistinguishable reports whether overload resolution cannot tell a and
// b apart.
func (r *Region) indistinguishable(a, b *Decl) bool {
	switch {
	case a.Kind.IsSubroutine() && b.Kind.IsSubroutine():
		return r.types.SameProfile(a.Type, b.Type)
	case a.Kind == KindEnumLiteral && b.Kind == KindEnumLiteral:
		return a.Type == b.Type
	default:
		return false
	}
}

func (r *Region) insert(d *Decl) {
	r.decls = append(r.decls, d)
	r.index[d.Name] = append(r.index[d.Name], d)
	r.log = append(r.log, d)
}

// Override is the conflict-repair pass: it replaces the inherited
// declaration that d cannot be told apart from. The replaced declaration
// is returned and recorded in d.Overrides. Without such a declaration
// Override behaves like Add and returns nil.
func (r *Region) Override(d *Decl) (*Decl, Outcome) {
	var victim *Decl
	for _, e := range r.index[d.Name] {
		if !e.Inherited() {
			continue
		}
		if e.Kind == d.Kind && e.Type == d.Type || r.overriddenBy(e, d) {
			victim = e
			break
		}
	}
	if victim == nil {
		return nil, r.Add(d)
	}
	r.remove(victim)
	d.Overrides = victim
	return victim, r.Add(d)
}

func (r *Region) overriddenBy(e, d *Decl) bool {
	if e.Kind.overloadable() && d.Kind.overloadable() {
		return r.indistinguishable(e, d)
	}
	return e.Kind == d.Kind
}

func (r *Region) remove(d *Decl) {
	if i := slices.Index(r.decls, d); i >= 0 {
		r.decls = slices.Delete(r.decls, i, i+1)
	}
	named := r.index[d.Name]
	if i := slices.Index(named, d); i >= 0 {
		named = slices.Delete(named, i, i+1)
	}
	if len(named) == 0 {
		delete(r.index, d.Name)
	} else {
		r.index[d.Name] = named
	}
}
