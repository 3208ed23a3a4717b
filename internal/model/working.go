package model

type ExprKind int

const (
	ExprOther  ExprKind = iota
	ExprTypeOf          // typeof(T)
)

// Expression is an annotation argument value. Text holds the operand type
// text for ExprTypeOf and the raw expression otherwise.
type Expression struct {
	Kind ExprKind
	Text string
}

type Argument struct {
	Name string // "" for positional arguments
	Expr Expression
}

type Annotation struct {
	// Type is the annotation type as resolved by the provider. Unresolved
	// annotations carry the written name.
	Type      TypeRef
	Arguments []Argument
}

// Declaration is a host type declaration carrying at least one annotation.
type Declaration struct {
	// Identity -------------------------------------------------------------
	Name          string
	Keyword       string // "class", "struct", "record", "record struct"
	Accessibility string
	Namespace     string // "" when declared outside any namespace

	// Context --------------------------------------------------------------
	Imports     []string // directive bodies in scope, order preserved, duplicates possible
	Annotations []Annotation
	File        string
	Pos         int64

	// Handle is owned by the provider that produced the declaration.
	Handle any
}

// AnnotatedDeclaration is a declaration whose marker annotation named a
// resolvable target type.
type AnnotatedDeclaration struct {
	*Declaration
	Target TypeRef
}

// GenerationUnit is everything the emitter needs for one declaration.
type GenerationUnit struct {
	Declaration AnnotatedDeclaration
	Target      TypeRef
	ResultType  *TypeRef // nil when no result type could be determined
	Constructor ConstructorDescriptor
	Imports     []string
}

// Output is one named unit of generated text.
type Output struct {
	FileKey string
	Content string
	Source  string // declaration that produced it; "" for batch-level outputs
}
