package generator

import (
	"fmt"
	"strings"

	"github.com/cmmoran/creatorgen/internal/model"
)

// FactoryPrefix is prepended to the target's simple name.
const FactoryPrefix = "Create"

// Emit renders unit as source text. The same unit always renders the same
// bytes.
func Emit(unit *model.GenerationUnit, standIn StandIn) string {
	w := &codeWriter{}
	w.line("#nullable enable")
	for _, imp := range unit.Imports {
		w.line("using " + imp + ";")
	}
	w.line("")

	decl := unit.Declaration
	namespace := ""
	if decl.Declaration != nil {
		namespace = decl.Namespace
	}
	if namespace != "" {
		w.line("namespace " + namespace)
		w.line("{")
		w.indent++
	}

	w.line(fmt.Sprintf("%s partial %s %s", hostAccessibility(decl), hostKeyword(decl), hostName(decl)))
	w.line("{")
	w.indent++
	emitFactory(w, unit, standIn)
	w.indent--
	w.line("}")

	if namespace != "" {
		w.indent--
		w.line("}")
	}
	return w.String()
}

func emitFactory(w *codeWriter, unit *model.GenerationUnit, standIn StandIn) {
	params := unit.Constructor.Parameters
	sep := func(i int) string {
		if i < len(params)-1 {
			return ","
		}
		return ""
	}

	behavior := standIn.Behavior()
	header := fmt.Sprintf("private static %s %s%s(%s %s = %s",
		resultTypeName(unit.ResultType), FactoryPrefix, unit.Target.Name,
		behavior.Type, behavior.Name, behavior.Default)
	if len(params) > 0 {
		header += ","
	}
	w.line(header)

	w.indent++
	for i, p := range params {
		w.line(fmt.Sprintf("%s? %s = null%s", p.Type.TypeText(), p.Name, sep(i)))
	}
	w.indent--
	w.line(")")

	w.line("{")
	w.indent++
	w.line(fmt.Sprintf("return new %s(", unit.Target.Name))
	w.indent++
	for i, p := range params {
		w.line(fmt.Sprintf("%s ?? %s%s", p.Name, DefaultExpression(p, standIn), sep(i)))
	}
	w.indent--
	w.line(");")
	w.indent--
	w.line("}")
}

// resultTypeName falls back to object so the factory stays well formed.
func resultTypeName(t *model.TypeRef) string {
	if t == nil || t.IsZero() {
		return "object"
	}
	return t.TypeText()
}

func hostAccessibility(decl model.AnnotatedDeclaration) string {
	if decl.Declaration == nil || strings.TrimSpace(decl.Accessibility) == "" {
		return "public"
	}
	return strings.TrimSpace(decl.Accessibility)
}

func hostKeyword(decl model.AnnotatedDeclaration) string {
	if decl.Declaration == nil || decl.Keyword == "" {
		return "class"
	}
	return decl.Keyword
}

func hostName(decl model.AnnotatedDeclaration) string {
	if decl.Declaration == nil {
		return ""
	}
	return decl.Name
}
