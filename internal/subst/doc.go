// Package subst maps formal types to actual types and applies the mapping
// structurally to types and declarations.
//
// A Rewriter never builds a new type when nothing it maps is reachable
// from the input: Rewrite returns the input TypeID itself, and later stages
// compare TypeIDs to detect that a declaration did not change.
package subst
