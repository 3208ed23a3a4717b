package generator

import (
	"cmp"
	"slices"

	"github.com/cmmoran/creatorgen/internal/model"
)

// SelectConstructor picks the constructor with the most parameters. Ties go
// to the earliest source position, then to provider order. A type without
// constructors yields a parameterless one.
func SelectConstructor(desc *model.TypeDescriptor) model.ConstructorDescriptor {
	if desc == nil || len(desc.Constructors) == 0 {
		return model.ConstructorDescriptor{}
	}
	ctors := slices.Clone(desc.Constructors)
	slices.SortStableFunc(ctors, func(a, b model.ConstructorDescriptor) int {
		if c := cmp.Compare(len(b.Parameters), len(a.Parameters)); c != 0 {
			return c
		}
		return cmp.Compare(a.Pos, b.Pos)
	})
	return ctors[0]
}

// ResultType is the interface named I<Target> among the target's interfaces,
// or the target itself.
func ResultType(desc *model.TypeDescriptor) *model.TypeRef {
	if desc == nil || desc.Ref.IsZero() {
		return nil
	}
	want := "I" + desc.Ref.Name
	for _, iface := range desc.Interfaces {
		if iface.Name == want {
			return &iface
		}
	}
	ref := desc.Ref
	return &ref
}
