package model

import "strings"

type TypeKind int

const (
	KindUnknown   TypeKind = iota
	KindClass              // class or record class
	KindStruct             // struct or record struct
	KindInterface          // interface
	KindEnum               // enum
	KindKeyword            // string, int, bool, object, etc.
)

// TypeRef names a type. It carries no resolved members; use a provider to
// obtain a TypeDescriptor.
type TypeRef struct {
	Name      string // simple name without type arguments: "AccountsService"
	Namespace string // "InnerApi.Core.Services"; "" for keywords and unqualified unresolved types
	Container string // enclosing type chain for nested types: "Outer.Middle"
	Syntax    string // as written at the use site, e.g. "List<Account>"; Name when empty
	Kind      TypeKind

	// Imports are namespaces that may declare an unqualified type the
	// provider could not bind. Bound types leave it empty.
	Imports []string
}

// FullName is the fully qualified display name without type arguments.
func (t TypeRef) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{t.Namespace, t.Container, t.Name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

// EnclosingNamespace returns everything before the last separator of the
// fully qualified display name, or "" when the name is unqualified.
func (t TypeRef) EnclosingNamespace() string {
	full := t.FullName()
	if i := strings.LastIndex(full, "."); i > 0 {
		return full[:i]
	}
	return ""
}

// TypeText is the type as it should be written in generated code.
func (t TypeRef) TypeText() string {
	s := t.Syntax
	if s == "" {
		s = t.Name
	}
	return strings.TrimSuffix(s, "?")
}

func (t TypeRef) IsZero() bool {
	return t.Name == ""
}

// TypeDescriptor is resolved metadata for a TypeRef. Constructors never
// include static constructors.
type TypeDescriptor struct {
	Ref           TypeRef
	Accessibility string
	Constructors  []ConstructorDescriptor
	Interfaces    []TypeRef
}

type ConstructorDescriptor struct {
	Parameters []ParameterDescriptor
	Pos        int64 // source position of the declaration; 0 when unknown
}

type ParameterDescriptor struct {
	Name         string
	Type         TypeRef
	IsValueType  bool
	IsStringType bool
}
