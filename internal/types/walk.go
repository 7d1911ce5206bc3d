package types

// ArgsFunc supplies the actual arguments of a domain or signature instance
// handle. The interner does not own instances, so walks that must look
// through instance arguments take it from the caller.
type ArgsFunc func(TypeID) []TypeID

// Components returns the direct component types of id, in a fixed order.
// Instance handles contribute their arguments when args is non-nil.
func (in *Interner) Components(id TypeID, args ArgsFunc) []TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return nil
	}
	switch tt.Kind {
	case KindArray:
		return []TypeID{tt.Key, tt.Elem}
	case KindAccess:
		return []TypeID{tt.Elem}
	case KindRecord:
		info, ok := in.RecordInfo(id)
		if !ok {
			return nil
		}
		out := make([]TypeID, len(info.Fields))
		for i, f := range info.Fields {
			out[i] = f.Type
		}
		return out
	case KindFunction:
		info, ok := in.FuncInfo(id)
		if !ok {
			return nil
		}
		out := make([]TypeID, 0, len(info.Params)+1)
		for _, p := range info.Params {
			out = append(out, p.Type)
		}
		if info.Result != NoTypeID {
			out = append(out, info.Result)
		}
		return out
	case KindDomain, KindSignature:
		if args == nil {
			return nil
		}
		return args(id)
	default:
		return nil
	}
}

// Walk visits id and everything reachable from it depth first, each type at
// most once. visit returning false stops the walk; Walk then returns false.
func (in *Interner) Walk(id TypeID, args ArgsFunc, visit func(TypeID) bool) bool {
	return in.walk(id, args, visit, make(map[TypeID]struct{}))
}

func (in *Interner) walk(id TypeID, args ArgsFunc, visit func(TypeID) bool, seen map[TypeID]struct{}) bool {
	if id == NoTypeID {
		return true
	}
	if _, ok := seen[id]; ok {
		return true
	}
	seen[id] = struct{}{}
	if !visit(id) {
		return false
	}
	for _, c := range in.Components(id, args) {
		if !in.walk(c, args, visit, seen) {
			return false
		}
	}
	return true
}

// Contains reports whether target is reachable from id.
func (in *Interner) Contains(id, target TypeID, args ArgsFunc) bool {
	found := false
	in.Walk(id, args, func(t TypeID) bool {
		if t == target {
			found = true
			return false
		}
		return true
	})
	return found
}

// ContainsKind reports whether any type of kind k is reachable from id.
func (in *Interner) ContainsKind(id TypeID, k Kind, args ArgsFunc) bool {
	found := false
	in.Walk(id, args, func(t TypeID) bool {
		if in.KindOf(t) == k {
			found = true
			return false
		}
		return true
	})
	return found
}
