package model

import (
	"slices"

	"comma/internal/subst"
	"comma/internal/types"
)

// SignatureSet is the set of signatures a model (or formal) satisfies:
// the direct ones in insertion order plus everything they imply, with
// the implying signature's self-type replaced by the owner. Membership is
// by instance identity.
type SignatureSet struct {
	ctx    *Context
	owner  types.TypeID
	direct []*SignatureInstance
	all    []*SignatureInstance
	member map[types.TypeID]bool // true for direct members
}

func newSignatureSet(ctx *Context, owner types.TypeID) *SignatureSet {
	return &SignatureSet{
		ctx:    ctx,
		owner:  owner,
		member: make(map[types.TypeID]bool, 4),
	}
}

// Owner is the type that implied signatures' self-types are mapped to.
func (s *SignatureSet) Owner() types.TypeID { return s.owner }

// AddDirectSignature adds sig as a direct member, then every signature
// sig implies after rewriting with rw, sig's own bindings and sig's
// self-type mapped to the owner. It returns false, changing nothing, when
// sig is already a direct member.
func (s *SignatureSet) AddDirectSignature(sig *SignatureInstance, rw *subst.Rewriter) bool {
	if sig == nil || s.IsDirect(sig) {
		return false
	}
	s.direct = append(s.direct, sig)
	if _, present := s.member[sig.typ]; !present {
		s.all = append(s.all, sig)
	}
	s.member[sig.typ] = true

	var local *subst.Rewriter
	if rw != nil {
		local = rw.Clone()
	} else {
		local = s.ctx.NewRewriter()
	}
	// arity of sig was validated when it was created
	_ = local.InstallRewrites(sig)
	percent := sig.model.Percent()
	if _, mapped := local.Lookup(percent); !mapped {
		local.AddRewrite(percent, s.owner)
	}
	for _, implied := range sig.model.Signatures().all {
		rewritten, ok := s.ctx.SignatureInstance(local.Rewrite(implied.typ))
		if !ok {
			continue
		}
		if _, present := s.member[rewritten.typ]; !present {
			s.all = append(s.all, rewritten)
			s.member[rewritten.typ] = false
		}
	}
	return true
}

// Contains reports whether sig is a direct or implied member.
func (s *SignatureSet) Contains(sig *SignatureInstance) bool {
	if sig == nil {
		return false
	}
	_, ok := s.member[sig.typ]
	return ok
}

// IsDirect reports whether sig was added directly.
func (s *SignatureSet) IsDirect(sig *SignatureInstance) bool {
	return sig != nil && s.member[sig.typ]
}

// IsIndirect reports whether sig is a member only by implication.
func (s *SignatureSet) IsIndirect(sig *SignatureInstance) bool {
	if sig == nil {
		return false
	}
	direct, ok := s.member[sig.typ]
	return ok && !direct
}

// Direct returns direct members in insertion order.
func (s *SignatureSet) Direct() []*SignatureInstance {
	return slices.Clone(s.direct)
}

// All returns every member: direct ones and implied ones, in the order
// they joined.
func (s *SignatureSet) All() []*SignatureInstance {
	return slices.Clone(s.all)
}

// Len counts all members.
func (s *SignatureSet) Len() int {
	return len(s.all)
}
