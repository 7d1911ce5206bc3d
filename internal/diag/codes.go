package diag

import "fmt"

// Code is a compact, stable identifier of a diagnostic class.
type Code uint16

const (
	UnknownCode Code = 0

	// Semantic problems the checker recovers from.
	SemaInfo                 Code = 3000
	SemaConflictingDecl      Code = 3001
	SemaMissingExport        Code = 3002
	SemaMissingCarrier       Code = 3003
	SemaArityMismatch        Code = 3004
	SemaUnsatisfiedSignature Code = 3005
	SemaDuplicateSignature   Code = 3006
	SemaOverride             Code = 3007
	SemaDeferredInstance     Code = 3008
	SemaNotParameterized     Code = 3009

	// Internal-consistency violations: a caller broke a precondition.
	InternalInfo        Code = 9000
	InternalConsistency Code = 9001
)

var codeNames = map[Code]string{
	UnknownCode:              "E0000",
	SemaInfo:                 "S3000",
	SemaConflictingDecl:      "S3001",
	SemaMissingExport:        "S3002",
	SemaMissingCarrier:       "S3003",
	SemaArityMismatch:        "S3004",
	SemaUnsatisfiedSignature: "S3005",
	SemaDuplicateSignature:   "S3006",
	SemaOverride:             "S3007",
	SemaDeferredInstance:     "S3008",
	SemaNotParameterized:     "S3009",
	InternalInfo:             "I9000",
	InternalConsistency:      "I9001",
}

var codeTitles = map[Code]string{
	SemaConflictingDecl:      "conflicting declaration",
	SemaMissingExport:        "missing export",
	SemaMissingCarrier:       "missing carrier",
	SemaArityMismatch:        "wrong number of arguments",
	SemaUnsatisfiedSignature: "argument does not satisfy signature",
	SemaDuplicateSignature:   "signature listed twice",
	SemaOverride:             "declaration overrides inherited one",
	SemaDeferredInstance:     "representation not yet resolvable",
	SemaNotParameterized:     "model is not parameterized",
	InternalConsistency:      "internal consistency violation",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("E%04d", uint16(c))
}

// Title is a short class label, not a rendered message.
func (c Code) Title() string {
	return codeTitles[c]
}

// IsInternal reports whether the code marks a caller defect.
func (c Code) IsInternal() bool {
	return c >= InternalInfo
}
