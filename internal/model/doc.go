// Package model implements the signature/domain model family: signatures,
// varieties (parameterized signatures), domains and functors
// (parameterized domains), their canonical instances, signature
// satisfaction sets and the finalize protocol that makes a domain body
// visible through its instances.
//
// Everything is owned by a Context, one per compilation unit. Types are
// referenced by types.TypeID; instances are referenced by their handle
// TypeIDs and live in the arena of the model that produced them.
package model
