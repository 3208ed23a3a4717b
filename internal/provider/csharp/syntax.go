package csharp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/cmmoran/creatorgen/internal/model"
)

var typeDeclarations = map[string]bool{
	"class_declaration":         true,
	"struct_declaration":        true,
	"record_declaration":        true,
	"record_struct_declaration": true,
	"interface_declaration":     true,
	"enum_declaration":          true,
}

var accessModifiers = []string{"public", "protected", "internal", "private", "file"}

var modifierWords = map[string]bool{
	"public": true, "protected": true, "internal": true, "private": true, "file": true,
	"static": true, "abstract": true, "sealed": true, "partial": true, "readonly": true,
	"ref": true, "unsafe": true, "new": true,
}

type attributeSyntax struct {
	name string
	args []model.Argument
}

type paramSyntax struct {
	name     string
	typeText string
}

type ctorSyntax struct {
	params []paramSyntax
	pos    int64
}

type baseSyntax struct {
	text string
	ctx  binding
}

// typeSymbol is a declared type, merged across partial declarations.
type typeSymbol struct {
	ref       model.TypeRef
	keyword   string
	access    string
	modifiers map[string]bool
	pos       int64

	attributes []attributeSyntax
	ctors      []ctorSyntax
	bases      []baseSyntax

	outer binding // where the declaration itself is bound
	inner binding // where its members are bound
	file  string
}

func (t *typeSymbol) instantiable() bool {
	switch t.ref.Kind {
	case model.KindClass:
		return !t.modifiers["static"] && !t.modifiers["abstract"]
	case model.KindStruct:
		return true
	}
	return false
}

// walker collects type symbols from one parsed file.
type walker struct {
	src     []byte
	file    string
	base    int64
	symbols []*typeSymbol
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.src)
}

func (w *walker) pos(n *sitter.Node) int64 {
	return w.base + int64(n.StartByte())
}

// walkMembers binds the declarations among n's children. Using directives
// always precede the members they apply to, so they are collected inline.
func (w *walker) walkMembers(n *sitter.Node, sc *scope, containers []string) {
	cur := sc
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch t := child.Type(); {
		case t == "using_directive":
			if u, ok := parseUsing(w.text(child)); ok {
				cur.usings = append(cur.usings, u)
			}
		case t == "namespace_declaration":
			body := child.ChildByFieldName("body")
			if body == nil {
				body = firstChildOfType(child, "declaration_list")
			}
			if body != nil {
				w.walkMembers(body, cur.child(w.declName(child)), nil)
			}
		case t == "file_scoped_namespace_declaration":
			inner := cur.child(w.declName(child))
			w.walkMembers(child, inner, nil)
			// Older grammars leave the namespace members as later siblings.
			cur = inner
		case t == "declaration_list":
			w.walkMembers(child, cur, containers)
		case typeDeclarations[t]:
			w.addType(child, binding{scope: cur, containers: containers})
		}
	}
}

func (w *walker) declName(n *sitter.Node) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return stripGlobal(normalizeSpace(w.text(name)))
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "identifier", "qualified_name":
			return stripGlobal(normalizeSpace(w.text(child)))
		}
	}
	return ""
}

func (w *walker) addType(n *sitter.Node, outer binding) {
	name := w.declName(n)
	if name == "" {
		return
	}
	mods := w.modifiers(n)
	keyword := w.typeKeyword(n)
	sym := &typeSymbol{
		ref: model.TypeRef{
			Name:      name,
			Namespace: outer.scope.namespace,
			Container: strings.Join(outer.containers, "."),
			Kind:      kindOf(keyword),
		},
		keyword:   keyword,
		access:    declaredAccessibility(mods, len(outer.containers) > 0),
		modifiers: mods,
		pos:       w.pos(n),
		outer:     outer,
		inner:     outer.nested(name),
		file:      w.file,
	}
	w.symbols = append(w.symbols, sym)

	var body *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "attribute_list":
			sym.attributes = append(sym.attributes, w.attributes(child)...)
		case "base_list", "record_base":
			sym.bases = append(sym.bases, w.bases(child, outer)...)
		case "parameter_list":
			sym.ctors = append(sym.ctors, ctorSyntax{params: w.parameters(child), pos: sym.pos})
		case "declaration_list":
			body = child
		}
	}
	if b := n.ChildByFieldName("body"); b != nil {
		body = b
	}
	if body == nil {
		return
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch t := member.Type(); {
		case t == "constructor_declaration":
			if w.modifiers(member)["static"] {
				continue
			}
			if params := member.ChildByFieldName("parameters"); params != nil {
				sym.ctors = append(sym.ctors, ctorSyntax{params: w.parameters(params), pos: w.pos(member)})
			} else if params := firstChildOfType(member, "parameter_list"); params != nil {
				sym.ctors = append(sym.ctors, ctorSyntax{params: w.parameters(params), pos: w.pos(member)})
			}
		case typeDeclarations[t]:
			w.addType(member, sym.inner)
		}
	}
}

// modifiers returns the declaration modifiers of n, whether the grammar
// wraps them in modifier nodes or leaves them as bare keywords.
func (w *walker) modifiers(n *sitter.Node) map[string]bool {
	mods := make(map[string]bool)
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch t := child.Type(); {
		case t == "modifier":
			for _, f := range strings.Fields(w.text(child)) {
				mods[f] = true
			}
		case !child.IsNamed() && modifierWords[t]:
			mods[t] = true
		}
	}
	return mods
}

func (w *walker) typeKeyword(n *sitter.Node) string {
	switch n.Type() {
	case "class_declaration":
		return "class"
	case "struct_declaration":
		return "struct"
	case "interface_declaration":
		return "interface"
	case "enum_declaration":
		return "enum"
	case "record_struct_declaration":
		return "record struct"
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); !child.IsNamed() && child.Type() == "struct" {
			return "record struct"
		}
	}
	return "record"
}

func kindOf(keyword string) model.TypeKind {
	switch keyword {
	case "class", "record":
		return model.KindClass
	case "struct", "record struct":
		return model.KindStruct
	case "interface":
		return model.KindInterface
	case "enum":
		return model.KindEnum
	}
	return model.KindUnknown
}

// declaredAccessibility spells the accessibility of a declaration the way
// it would be written, defaulting like the compiler does.
func declaredAccessibility(mods map[string]bool, nested bool) string {
	var parts []string
	for _, m := range accessModifiers {
		if mods[m] {
			parts = append(parts, m)
		}
	}
	switch {
	case len(parts) > 0:
		if mods["private"] && mods["protected"] {
			return "private protected"
		}
		if mods["protected"] && mods["internal"] {
			return "protected internal"
		}
		return strings.Join(parts, " ")
	case nested:
		return "private"
	default:
		return "internal"
	}
}

func (w *walker) attributes(list *sitter.Node) []attributeSyntax {
	var out []attributeSyntax
	for i := 0; i < int(list.NamedChildCount()); i++ {
		attr := list.NamedChild(i)
		if attr.Type() != "attribute" {
			continue
		}
		a := attributeSyntax{name: w.declName(attr)}
		if args := firstChildOfType(attr, "attribute_argument_list"); args != nil {
			for j := 0; j < int(args.NamedChildCount()); j++ {
				if arg := args.NamedChild(j); arg.Type() == "attribute_argument" {
					a.args = append(a.args, w.argument(arg))
				}
			}
		}
		out = append(out, a)
	}
	return out
}

// argument reads `Name = expr`, `name: expr` or `expr`. Only the first form
// carries a name.
func (w *walker) argument(n *sitter.Node) model.Argument {
	var (
		name string
		expr *sitter.Node
	)
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "name_equals":
			name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(w.text(child)), "="))
		case "=":
			if i > 0 && n.Child(i-1).Type() == "identifier" {
				name = w.text(n.Child(i - 1))
			}
		}
		if child.IsNamed() {
			expr = child
		}
	}
	if expr != nil && expr.Type() == "assignment_expression" && name == "" {
		left, right := expr.ChildByFieldName("left"), expr.ChildByFieldName("right")
		if left != nil && right != nil && left.Type() == "identifier" {
			name, expr = w.text(left), right
		}
	}
	if expr == nil {
		return model.Argument{Name: name}
	}
	if expr.Type() == "typeof_expression" {
		typ := expr.ChildByFieldName("type")
		if typ == nil && expr.NamedChildCount() > 0 {
			typ = expr.NamedChild(0)
		}
		return model.Argument{Name: name, Expr: model.Expression{Kind: model.ExprTypeOf, Text: normalizeSpace(w.text(typ))}}
	}
	return model.Argument{Name: name, Expr: model.Expression{Kind: model.ExprOther, Text: normalizeSpace(w.text(expr))}}
}

func (w *walker) bases(list *sitter.Node, b binding) []baseSyntax {
	var out []baseSyntax
	for i := 0; i < int(list.NamedChildCount()); i++ {
		child := list.NamedChild(i)
		switch child.Type() {
		case "argument_list":
			continue
		case "primary_constructor_base_type":
			if child.NamedChildCount() > 0 {
				child = child.NamedChild(0)
			}
		}
		out = append(out, baseSyntax{text: normalizeSpace(w.text(child)), ctx: b})
	}
	return out
}

func (w *walker) parameters(list *sitter.Node) []paramSyntax {
	var out []paramSyntax
	for i := 0; i < int(list.NamedChildCount()); i++ {
		p := list.NamedChild(i)
		switch p.Type() {
		case "parameter", "parameter_array":
		default:
			continue
		}
		name := p.ChildByFieldName("name")
		typ := p.ChildByFieldName("type")
		if name == nil || typ == nil {
			name, typ = w.parameterParts(p)
		}
		if name == nil {
			continue
		}
		out = append(out, paramSyntax{name: w.text(name), typeText: normalizeSpace(w.text(typ))})
	}
	return out
}

// parameterParts finds the name and type of a parameter without relying on
// field names: the name is the last identifier, the type is the named child
// before it.
func (w *walker) parameterParts(p *sitter.Node) (name, typ *sitter.Node) {
	var prev *sitter.Node
	for i := 0; i < int(p.NamedChildCount()); i++ {
		child := p.NamedChild(i)
		switch child.Type() {
		case "attribute_list", "modifier", "parameter_modifier", "equals_value_clause":
			continue
		case "identifier":
			if prev != nil {
				name, typ = child, prev
				continue
			}
		}
		prev = child
	}
	return name, typ
}

func firstChildOfType(n *sitter.Node, t string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == t {
			return child
		}
	}
	return nil
}
