package decls

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"comma/internal/source"
	"comma/internal/types"
)

type fixture struct {
	in   *types.Interner
	elem types.TypeID
}

func newFixture() fixture {
	in := types.NewInterner()
	return fixture{in: in, elem: in.RegisterInteger(1, source.Span{}, 0, 7)}
}

func (f fixture) fn(keyword source.StringID) types.TypeID {
	return f.in.RegisterFunction([]types.Param{{Name: keyword, Type: f.elem}}, f.elem)
}

func names(ds []*Decl) []source.StringID {
	out := make([]source.StringID, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}

func TestAddDetectsDuplicateAndConflict(t *testing.T) {
	f := newFixture()
	r := NewRegion(f.in)
	first := &Decl{Kind: KindFunction, Name: 20, Type: f.fn(30)}
	if got := r.Add(first); got.Result != Added {
		t.Fatalf("first add: got %v", got.Result)
	}
	dup := r.Add(&Decl{Kind: KindFunction, Name: 20, Type: f.fn(30)})
	if dup.Result != Duplicate || dup.Existing != first {
		t.Fatalf("identical redeclaration: got %v", dup.Result)
	}
	clash := r.Add(&Decl{Kind: KindFunction, Name: 20, Type: f.fn(31)})
	if clash.Result != Conflict || clash.Existing != first {
		t.Fatalf("keyword-only difference: got %v", clash.Result)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 declaration, got %d", r.Len())
	}
}

func TestAddAcceptsOverloads(t *testing.T) {
	f := newFixture()
	r := NewRegion(f.in)
	other := f.in.RegisterInteger(2, source.Span{}, 0, 1)
	r.Add(&Decl{Kind: KindFunction, Name: 20, Type: f.fn(30)})
	ov := f.in.RegisterFunction([]types.Param{{Name: 30, Type: other}}, f.elem)
	if got := r.Add(&Decl{Kind: KindFunction, Name: 20, Type: ov}); got.Result != Added {
		t.Fatalf("overload rejected: %v", got.Result)
	}
	if got := r.Add(&Decl{Kind: KindType, Name: 20, Type: other}); got.Result != Conflict {
		t.Fatalf("type hiding a subroutine must conflict, got %v", got.Result)
	}
	if len(r.Lookup(20)) != 2 {
		t.Fatalf("expected two overloads")
	}
}

func TestAddPropagatesEnumerationLiterals(t *testing.T) {
	f := newFixture()
	r := NewRegion(f.in)
	color := f.in.RegisterEnum(40, source.Span{}, []source.StringID{41, 42})
	enum := &Decl{Kind: KindType, Name: 40, Type: color, Members: []*Decl{
		{Kind: KindEnumLiteral, Name: 41, Type: color},
		{Kind: KindEnumLiteral, Name: 42, Type: color},
	}}
	r.Add(&Decl{Kind: KindType, Name: 42, Type: f.elem})
	out := r.Add(enum)
	if out.Result != Added {
		t.Fatalf("enum rejected: %v", out.Result)
	}
	conflicts := out.Conflicts()
	if len(conflicts) != 1 || conflicts[0].Decl.Name != 42 {
		t.Fatalf("expected one member conflict, got %+v", conflicts)
	}
	if diff := cmp.Diff([]source.StringID{42, 40, 41}, names(r.Decls())); diff != "" {
		t.Fatalf("region order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]source.StringID{42, 40}, names(r.Roots())); diff != "" {
		t.Fatalf("roots must skip propagated members (-want +got):\n%s", diff)
	}
}

func TestOverrideReplacesInheritedDeclaration(t *testing.T) {
	f := newFixture()
	r := NewRegion(f.in)
	def := &Decl{Kind: KindFunction, Name: 20, Type: f.fn(30)}
	inherited := &Decl{Kind: KindFunction, Name: 20, Type: f.fn(30), Origin: def}
	r.Add(inherited)
	before := r.Version()

	local := &Decl{Kind: KindFunction, Name: 20, Type: f.fn(31), Defined: true}
	victim, out := r.Override(local)
	if victim != inherited || out.Result != Added {
		t.Fatalf("override failed: victim=%v result=%v", victim, out.Result)
	}
	if local.Overrides != inherited || r.Contains(inherited) {
		t.Fatalf("inherited declaration still present")
	}
	if got := r.Since(before); len(got) != 1 || got[0] != local {
		t.Fatalf("Since should report only the overriding declaration, got %v", got)
	}
	if r.Version() <= before {
		t.Fatalf("version must grow across overrides")
	}
}

func TestOverrideWithoutInheritedBehavesLikeAdd(t *testing.T) {
	f := newFixture()
	r := NewRegion(f.in)
	local := &Decl{Kind: KindFunction, Name: 20, Type: f.fn(30)}
	r.Add(local)
	victim, out := r.Override(&Decl{Kind: KindFunction, Name: 20, Type: f.fn(31)})
	if victim != nil || out.Result != Conflict {
		t.Fatalf("local declarations are never overridden: victim=%v result=%v", victim, out.Result)
	}
}

func TestRootFollowsOrigin(t *testing.T) {
	a := &Decl{Name: 1}
	b := &Decl{Name: 1, Origin: a}
	c := &Decl{Name: 1, Origin: b}
	if c.Root() != a || !c.Inherited() || a.Inherited() {
		t.Fatalf("origin chain broken")
	}
	clone := c.Clone()
	if clone == c || clone.Origin != b {
		t.Fatalf("clone must be shallow on origin")
	}
}
