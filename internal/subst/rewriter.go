package subst

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"comma/internal/decls"
	"comma/internal/types"
)

// Binding is an application of a parameterized model: one actual argument
// per formal parameter, in order.
type Binding interface {
	Formals() []types.TypeID
	Arguments() []types.TypeID
}

// Instances rebuilds domain and signature instance handles. The model
// layer implements it so that rewritten instance handles stay canonical.
type Instances interface {
	// Arguments returns the actual arguments of an instance handle.
	Arguments(id types.TypeID) ([]types.TypeID, bool)
	// Reapply returns the canonical handle of the same model applied to
	// args, or NoTypeID if that is impossible.
	Reapply(id types.TypeID, args []types.TypeID) types.TypeID
}

// Rewriter holds formal→actual mappings. The zero value is not usable;
// call New.
type Rewriter struct {
	types     *types.Interner
	instances Instances
	rules     map[types.TypeID]types.TypeID

	cache map[types.TypeID]types.TypeID
}

// New creates an empty rewriter. instances may be nil when no instance
// handle can contain a mapped formal.
func New(in *types.Interner, instances Instances) *Rewriter {
	return &Rewriter{
		types:     in,
		instances: instances,
		rules:     make(map[types.TypeID]types.TypeID, 4),
	}
}

// AddRewrite maps formal to actual. A later mapping for the same formal
// replaces the earlier one. Callers must not create cycles.
func (r *Rewriter) AddRewrite(formal, actual types.TypeID) {
	if formal == types.NoTypeID {
		return
	}
	r.rules[formal] = actual
	r.cache = nil
}

// AddRewrites copies every mapping of other into r.
func (r *Rewriter) AddRewrites(other *Rewriter) {
	if other == nil {
		return
	}
	for formal, actual := range other.rules {
		r.rules[formal] = actual
	}
	r.cache = nil
}

// InstallRewrites maps each formal of b's model to the matching actual.
func (r *Rewriter) InstallRewrites(b Binding) error {
	formals, args := b.Formals(), b.Arguments()
	if len(formals) != len(args) {
		return fmt.Errorf("install rewrites: %d formals, %d arguments", len(formals), len(args))
	}
	for i, formal := range formals {
		r.rules[formal] = args[i]
	}
	r.cache = nil
	return nil
}

// Lookup returns the actual mapped to formal.
func (r *Rewriter) Lookup(formal types.TypeID) (types.TypeID, bool) {
	actual, ok := r.rules[formal]
	return actual, ok
}

// Len returns the number of mappings.
func (r *Rewriter) Len() int {
	return len(r.rules)
}

// Empty reports whether the rewriter maps nothing.
func (r *Rewriter) Empty() bool {
	return r == nil || len(r.rules) == 0
}

// Clone copies the mappings; the memo cache is not shared.
func (r *Rewriter) Clone() *Rewriter {
	return &Rewriter{
		types:     r.types,
		instances: r.instances,
		rules:     maps.Clone(r.rules),
	}
}

// Rewrite applies the mappings to id.
func (r *Rewriter) Rewrite(id types.TypeID) types.TypeID {
	if r.Empty() || id == types.NoTypeID {
		return id
	}
	if r.cache == nil {
		r.cache = make(map[types.TypeID]types.TypeID, 32)
	} else if cached, ok := r.cache[id]; ok {
		return cached
	}
	// self-referential arguments resolve to themselves instead of looping
	r.cache[id] = id
	out := r.rewriteNoCache(id)
	r.cache[id] = out
	return out
}

func (r *Rewriter) rewriteNoCache(id types.TypeID) types.TypeID {
	if actual, ok := r.rules[id]; ok {
		return actual
	}
	tt, ok := r.types.Lookup(id)
	if !ok {
		return id
	}

	switch tt.Kind {
	case types.KindArray:
		key, elem := r.Rewrite(tt.Key), r.Rewrite(tt.Elem)
		if key == tt.Key && elem == tt.Elem {
			return id
		}
		return r.types.Intern(types.MakeArray(key, elem))

	case types.KindAccess:
		elem := r.Rewrite(tt.Elem)
		if elem == tt.Elem {
			return id
		}
		return r.types.Intern(types.MakeAccess(elem))

	case types.KindRecord:
		info, ok := r.types.RecordInfo(id)
		if !ok || len(info.Fields) == 0 {
			return id
		}
		fields := slices.Clone(info.Fields)
		changed := false
		for i := range fields {
			fields[i].Type = r.Rewrite(fields[i].Type)
			changed = changed || fields[i].Type != info.Fields[i].Type
		}
		if !changed {
			return id
		}
		return r.types.RegisterRecord(fields)

	case types.KindFunction:
		info, ok := r.types.FuncInfo(id)
		if !ok {
			return id
		}
		// names and modes are copied verbatim
		params := slices.Clone(info.Params)
		changed := false
		for i := range params {
			params[i].Type = r.Rewrite(params[i].Type)
			changed = changed || params[i].Type != info.Params[i].Type
		}
		result := r.Rewrite(info.Result)
		changed = changed || result != info.Result
		if !changed {
			return id
		}
		return r.types.RegisterFunction(params, result)

	case types.KindDomain, types.KindSignature:
		if r.instances == nil {
			return id
		}
		args, ok := r.instances.Arguments(id)
		if !ok || len(args) == 0 {
			return id
		}
		newArgs := make([]types.TypeID, len(args))
		changed := false
		for i := range args {
			newArgs[i] = r.Rewrite(args[i])
			changed = changed || newArgs[i] != args[i]
		}
		if !changed {
			return id
		}
		if out := r.instances.Reapply(id, newArgs); out != types.NoTypeID {
			return out
		}
		return id

	default:
		return id
	}
}

// RewriteDecl clones d with every referenced type rewritten. The clone's
// Origin points at d.
func (r *Rewriter) RewriteDecl(d *decls.Decl) *decls.Decl {
	if d == nil {
		return nil
	}
	out := *d
	out.Type = r.Rewrite(d.Type)
	out.Origin = d
	out.Overrides = nil
	if len(d.Members) > 0 {
		out.Members = make([]*decls.Decl, len(d.Members))
		for i, m := range d.Members {
			out.Members[i] = r.RewriteDecl(m)
		}
	}
	return &out
}

// String lists the mappings ordered by formal, for traces and tests.
func (r *Rewriter) String() string {
	if r.Empty() {
		return "{}"
	}
	formals := make([]types.TypeID, 0, len(r.rules))
	for f := range r.rules {
		formals = append(formals, f)
	}
	slices.Sort(formals)
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range formals {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d->%d", f, r.rules[f])
	}
	b.WriteByte('}')
	return b.String()
}
