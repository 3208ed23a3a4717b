package generator

import (
	"fmt"
	"strings"
)

// TargetArgument is the marker argument naming the type to construct.
const TargetArgument = "Target"

// Marker identifies the annotation type that requests a factory.
type Marker struct {
	Namespace string
	Name      string
}

func (m Marker) QualifiedName() string {
	if m.Namespace == "" {
		return m.Name
	}
	return m.Namespace + "." + m.Name
}

func (m Marker) FileKey(ext string) string {
	return m.Name + ".g." + ext
}

// Definition is the source declaring the marker annotation type. It is
// emitted once per batch.
func (m Marker) Definition() string {
	w := &codeWriter{}
	w.line("#nullable enable")
	w.line("using System;")
	if m.Namespace != "" {
		w.line("namespace " + m.Namespace)
		w.line("{")
		w.indent++
	}
	w.line("[AttributeUsage(AttributeTargets.Class | AttributeTargets.Struct)]")
	w.line(fmt.Sprintf("public class %s : Attribute", m.Name))
	w.line("{")
	w.indent++
	w.line(fmt.Sprintf("public Type? %s;", TargetArgument))
	w.indent--
	w.line("}")
	if m.Namespace != "" {
		w.indent--
		w.line("}")
	}
	return w.String()
}

// codeWriter indents lines by four spaces per level. Blank lines carry no
// indentation.
type codeWriter struct {
	b      strings.Builder
	indent int
}

func (w *codeWriter) line(s string) {
	if s != "" {
		w.b.WriteString(strings.Repeat("    ", w.indent))
		w.b.WriteString(s)
	}
	w.b.WriteByte('\n')
}

func (w *codeWriter) String() string {
	return w.b.String()
}
