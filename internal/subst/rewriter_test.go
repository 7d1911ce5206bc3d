package subst

import (
	"testing"

	"comma/internal/decls"
	"comma/internal/source"
	"comma/internal/types"
)

// fakeInstances stores instance arguments keyed by handle and hands out
// one handle per argument tuple.
type fakeInstances struct {
	in    *types.Interner
	owner uint32
	args  map[types.TypeID][]types.TypeID
	slots map[[1]types.TypeID]types.TypeID
}

func newFakeInstances(in *types.Interner) *fakeInstances {
	return &fakeInstances{
		in:    in,
		owner: 7,
		args:  make(map[types.TypeID][]types.TypeID),
		slots: make(map[[1]types.TypeID]types.TypeID),
	}
}

func (f *fakeInstances) apply(arg types.TypeID) types.TypeID {
	key := [1]types.TypeID{arg}
	if id, ok := f.slots[key]; ok {
		return id
	}
	id := f.in.Intern(types.MakeDomain(f.owner, uint32(len(f.slots)+1)))
	f.slots[key] = id
	f.args[id] = []types.TypeID{arg}
	return id
}

func (f *fakeInstances) Arguments(id types.TypeID) ([]types.TypeID, bool) {
	a, ok := f.args[id]
	return a, ok
}

func (f *fakeInstances) Reapply(_ types.TypeID, args []types.TypeID) types.TypeID {
	return f.apply(args[0])
}

type binding struct{ formals, args []types.TypeID }

func (b binding) Formals() []types.TypeID   { return b.formals }
func (b binding) Arguments() []types.TypeID { return b.args }

func TestRewriteIsIdentityWhenNothingMapped(t *testing.T) {
	in := types.NewInterner()
	formal := in.RegisterAbstract(1, 1, 0)
	unrelated := in.RegisterInteger(2, source.Span{}, 0, 3)
	actual := in.RegisterInteger(3, source.Span{}, 0, 3)
	arr := in.Intern(types.MakeArray(unrelated, unrelated))
	fn := in.RegisterFunction([]types.Param{{Name: 4, Type: arr}}, unrelated)

	r := New(in, nil)
	r.AddRewrite(formal, actual)
	for _, id := range []types.TypeID{arr, fn, unrelated} {
		if got := r.Rewrite(id); got != id {
			t.Fatalf("rewrite of %d must return the same TypeID, got %d", id, got)
		}
	}
	before := in.Len()
	r.Rewrite(fn)
	if in.Len() != before {
		t.Fatalf("no-op rewrite allocated types")
	}
}

func TestRewritePreservesKeywordsAndModes(t *testing.T) {
	in := types.NewInterner()
	formal := in.RegisterAbstract(1, 1, 0)
	actual := in.RegisterInteger(3, source.Span{}, 0, 3)
	fn := in.RegisterFunction([]types.Param{
		{Name: 10, Mode: types.ModeInOut, Type: formal},
		{Name: 11, Mode: types.ModeOut, Type: in.Intern(types.MakeAccess(formal))},
	}, types.NoTypeID)

	r := New(in, nil)
	r.AddRewrite(formal, actual)
	got := r.Rewrite(fn)
	if got == fn {
		t.Fatalf("expected a rebuilt subroutine type")
	}
	info, ok := in.FuncInfo(got)
	if !ok || !info.IsProcedure() {
		t.Fatalf("rewritten type is not a procedure")
	}
	if info.Params[0].Name != 10 || info.Params[0].Mode != types.ModeInOut || info.Params[0].Type != actual {
		t.Fatalf("first parameter mangled: %+v", info.Params[0])
	}
	if info.Params[1].Name != 11 || info.Params[1].Mode != types.ModeOut || info.Params[1].Type != in.Intern(types.MakeAccess(actual)) {
		t.Fatalf("second parameter mangled: %+v", info.Params[1])
	}
	if again := r.Rewrite(fn); again != got {
		t.Fatalf("rewriting twice must give the canonical type")
	}
}

func TestRewriteRebuildsInstanceHandles(t *testing.T) {
	in := types.NewInterner()
	formal := in.RegisterAbstract(1, 1, 0)
	actual := in.RegisterInteger(3, source.Span{}, 0, 3)
	inst := newFakeInstances(in)
	generic := inst.apply(formal)
	concrete := inst.apply(actual)

	r := New(in, inst)
	r.AddRewrite(formal, actual)
	if got := r.Rewrite(generic); got != concrete {
		t.Fatalf("instance handle should map to the canonical concrete instance: got %d want %d", got, concrete)
	}
	if got := r.Rewrite(concrete); got != concrete {
		t.Fatalf("concrete instance must be untouched")
	}
}

func TestLaterRewriteWinsAndInvalidatesCache(t *testing.T) {
	in := types.NewInterner()
	formal := in.RegisterAbstract(1, 1, 0)
	a := in.RegisterInteger(2, source.Span{}, 0, 1)
	b := in.RegisterInteger(3, source.Span{}, 0, 1)
	acc := in.Intern(types.MakeAccess(formal))

	r := New(in, nil)
	r.AddRewrite(formal, a)
	if r.Rewrite(acc) != in.Intern(types.MakeAccess(a)) {
		t.Fatalf("first mapping not applied")
	}
	r.AddRewrite(formal, b)
	if r.Rewrite(acc) != in.Intern(types.MakeAccess(b)) {
		t.Fatalf("stale cache after AddRewrite")
	}
	if r.Len() != 1 {
		t.Fatalf("expected one mapping, got %d", r.Len())
	}
}

func TestInstallRewritesAndClone(t *testing.T) {
	in := types.NewInterner()
	f0 := in.RegisterAbstract(1, 1, 0)
	f1 := in.RegisterAbstract(2, 1, 1)
	a := in.RegisterInteger(3, source.Span{}, 0, 1)

	r := New(in, nil)
	if err := r.InstallRewrites(binding{formals: []types.TypeID{f0, f1}, args: []types.TypeID{a}}); err == nil {
		t.Fatalf("expected arity error")
	}
	if err := r.InstallRewrites(binding{formals: []types.TypeID{f0, f1}, args: []types.TypeID{a, a}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := r.Clone()
	c.AddRewrite(f1, f0)
	if got, _ := r.Lookup(f1); got != a {
		t.Fatalf("clone shares mappings with the original")
	}
	merged := New(in, nil)
	merged.AddRewrites(c)
	if got, _ := merged.Lookup(f1); got != f0 {
		t.Fatalf("AddRewrites lost a mapping")
	}
}

func TestRewriteDeclClonesMembers(t *testing.T) {
	in := types.NewInterner()
	formal := in.RegisterAbstract(1, 1, 0)
	actual := in.RegisterInteger(3, source.Span{}, 0, 1)
	enum := in.RegisterEnum(5, source.Span{}, []source.StringID{6})
	d := &decls.Decl{
		Kind: decls.KindType, Name: 5, Type: enum,
		Members: []*decls.Decl{{Kind: decls.KindEnumLiteral, Name: 6, Type: enum}},
	}
	fn := &decls.Decl{Kind: decls.KindFunction, Name: 7, Type: in.RegisterFunction(nil, formal)}

	r := New(in, nil)
	r.AddRewrite(formal, actual)
	got := r.RewriteDecl(d)
	if got == d || got.Origin != d || got.Members[0] == d.Members[0] || got.Members[0].Origin != d.Members[0] {
		t.Fatalf("members must be cloned with origins")
	}
	rf := r.RewriteDecl(fn)
	if info, _ := in.FuncInfo(rf.Type); info.Result != actual {
		t.Fatalf("declaration type not rewritten")
	}
	if fn.Type == rf.Type {
		t.Fatalf("original declaration mutated or not rewritten")
	}
}
