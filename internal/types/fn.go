package types

import (
	"slices"
	"strconv"
	"strings"

	"comma/internal/source"
)

// Param is one subroutine parameter. Name is the keyword callers may use.
type Param struct {
	Name source.StringID
	Mode Mode
	Type TypeID
}

// FuncInfo stores a subroutine profile. Result is NoTypeID for procedures.
type FuncInfo struct {
	Params []Param
	Result TypeID
}

// IsProcedure reports whether the profile has no result.
func (f *FuncInfo) IsProcedure() bool {
	return f.Result == NoTypeID
}

// RegisterFunction creates or finds a subroutine type. The key includes
// keywords and modes, so two profiles that differ only in keywords are
// distinct types.
func (in *Interner) RegisterFunction(params []Param, result TypeID) TypeID {
	key := funcKey(params, result)
	if id, ok := in.funcIndex[key]; ok {
		return id
	}
	in.funcs = append(in.funcs, FuncInfo{Params: slices.Clone(params), Result: result})
	slot := slotOf(len(in.funcs)-1, "fn info")
	id := in.internRaw(Type{Kind: KindFunction, Payload: slot})
	in.funcIndex[key] = id
	return id
}

// FuncInfo retrieves subroutine metadata by TypeID.
func (in *Interner) FuncInfo(id TypeID) (*FuncInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunction || tt.Payload == 0 || int(tt.Payload) >= len(in.funcs) {
		return nil, false
	}
	return &in.funcs[tt.Payload], true
}

// SameProfile reports whether two subroutine types cannot be told apart by
// overload resolution: same arity, parameter types and result. Keywords and
// modes are ignored.
func (in *Interner) SameProfile(a, b TypeID) bool {
	if a == b {
		return true
	}
	fa, okA := in.FuncInfo(a)
	fb, okB := in.FuncInfo(b)
	if !okA || !okB {
		return false
	}
	if fa.Result != fb.Result || len(fa.Params) != len(fb.Params) {
		return false
	}
	for i := range fa.Params {
		if fa.Params[i].Type != fb.Params[i].Type {
			return false
		}
	}
	return true
}

func funcKey(params []Param, result TypeID) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(p.Name), 10))
		b.WriteByte('/')
		b.WriteString(strconv.FormatUint(uint64(p.Mode), 10))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(p.Type), 10))
	}
	b.WriteString("->")
	b.WriteString(strconv.FormatUint(uint64(result), 10))
	return b.String()
}
