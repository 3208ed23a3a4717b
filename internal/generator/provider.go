package generator

import "github.com/cmmoran/creatorgen/internal/model"

// TypeProvider answers the semantic queries the generator needs about a body
// of declarations. Implementations must be safe for concurrent use once
// constructed; the generator never mutates anything they return.
type TypeProvider interface {
	// Declarations returns the type declarations carrying at least one
	// annotation, in source order.
	Declarations() []*model.Declaration

	// TypeOf resolves a type-of argument in the scope of decl. It reports
	// false when expr is not a type-of literal or names no known type.
	TypeOf(decl *model.Declaration, expr model.Expression) (model.TypeRef, bool)

	// ResolveType returns a freshly built descriptor for ref, or nil when the
	// type is unknown. Errors are collaborator failures, not absent types.
	ResolveType(ref model.TypeRef) (*model.TypeDescriptor, error)
}
