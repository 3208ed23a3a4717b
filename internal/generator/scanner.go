package generator

import (
	"iter"

	"github.com/cmmoran/creatorgen/internal/model"
)

// Scan yields, in provider order, every declaration whose marker annotation
// names a resolvable target type. The sequence can be ranged over repeatedly.
//
// A declaration yields at most once. Annotations are matched on their fully
// qualified type name; only the first argument named Target is consulted and
// it must be a type-of literal. Anything else leaves the declaration out.
func Scan(p TypeProvider, marker Marker) iter.Seq[model.AnnotatedDeclaration] {
	return func(yield func(model.AnnotatedDeclaration) bool) {
		for _, decl := range p.Declarations() {
			if decl == nil || len(decl.Annotations) == 0 {
				continue
			}
			target, ok := markerTarget(p, decl, marker)
			if !ok {
				continue
			}
			if !yield(model.AnnotatedDeclaration{Declaration: decl, Target: target}) {
				return
			}
		}
	}
}

func markerTarget(p TypeProvider, decl *model.Declaration, marker Marker) (model.TypeRef, bool) {
	want := marker.QualifiedName()
	for _, a := range decl.Annotations {
		if a.Type.FullName() != want {
			continue
		}
		arg, ok := targetArgument(a)
		if !ok || arg.Expr.Kind != model.ExprTypeOf {
			continue
		}
		if target, ok := p.TypeOf(decl, arg.Expr); ok {
			return target, true
		}
	}
	return model.TypeRef{}, false
}

func targetArgument(a model.Annotation) (model.Argument, bool) {
	for _, arg := range a.Arguments {
		if arg.Name == TargetArgument {
			return arg, true
		}
	}
	return model.Argument{}, false
}
