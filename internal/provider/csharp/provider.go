// Package csharp is a TypeProvider over C# source text. Sources are parsed
// with tree-sitter and bound with the compiler's name lookup rules, close
// enough for constructor-shaped questions: namespaces, usings, aliases,
// nested and partial types.
package csharp

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/creatorgen/internal/model"
)

// Source is one named C# compilation unit.
type Source struct {
	Name    string
	Content []byte
}

type Provider struct {
	types    map[string]*typeSymbol
	builtins map[string]entry
	decls    []*model.Declaration
	logger   *slog.Logger
}

// Load parses sources and binds every type they declare. marker is the
// annotation type the caller generates; it resolves even though no source
// declares it.
func Load(ctx context.Context, marker model.TypeRef, sources ...Source) (*Provider, error) {
	p := &Provider{
		types:    make(map[string]*typeSymbol),
		builtins: builtins(marker),
		logger:   slog.Default().With("component", "csharp"),
	}

	walked := make([][]*typeSymbol, len(sources))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		eg.Go(func() error {
			syms, err := p.parse(ctx, i, src)
			if err != nil {
				return err
			}
			walked[i] = syms
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []*typeSymbol
	for _, syms := range walked {
		for _, sym := range syms {
			if p.merge(sym) {
				all = append(all, sym)
			}
		}
	}
	for _, sym := range all {
		if decl := p.declaration(sym); decl != nil {
			p.decls = append(p.decls, decl)
		}
	}
	p.logger.Debug("loaded", "sources", len(sources), "types", len(p.types), "annotated", len(p.decls))
	return p, nil
}

func (p *Provider) parse(ctx context.Context, index int, src Source) ([]*typeSymbol, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src.Content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		p.logger.Warn("source has syntax errors; declarations may be incomplete", "file", src.Name)
	}
	w := &walker{src: src.Content, file: src.Name, base: int64(index) << 32}
	w.walkMembers(root, &scope{}, nil)
	return w.symbols, nil
}

// merge registers sym, folding it into an earlier partial declaration of the
// same type. It reports whether sym is the first declaration.
func (p *Provider) merge(sym *typeSymbol) bool {
	key := sym.ref.FullName()
	prev, ok := p.types[key]
	if !ok {
		p.types[key] = sym
		return true
	}
	prev.attributes = append(prev.attributes, sym.attributes...)
	prev.ctors = append(prev.ctors, sym.ctors...)
	prev.bases = append(prev.bases, sym.bases...)
	for m := range sym.modifiers {
		prev.modifiers[m] = true
	}
	if explicitAccess(sym.modifiers) {
		prev.access = sym.access
	}
	return false
}

func explicitAccess(mods map[string]bool) bool {
	return slices.ContainsFunc(accessModifiers, func(m string) bool { return mods[m] })
}

// declaration exposes sym to the scanner when it is an annotated class or
// struct. Attribute arguments are bound where the first annotated part of
// the type is declared.
func (p *Provider) declaration(sym *typeSymbol) *model.Declaration {
	switch sym.ref.Kind {
	case model.KindClass, model.KindStruct:
	default:
		return nil
	}
	if len(sym.attributes) == 0 {
		return nil
	}
	annotations := make([]model.Annotation, 0, len(sym.attributes))
	for _, a := range sym.attributes {
		annotations = append(annotations, model.Annotation{
			Type:      p.attributeType(a.name, sym.outer),
			Arguments: a.args,
		})
	}
	return &model.Declaration{
		Name:          sym.ref.Name,
		Keyword:       sym.keyword,
		Accessibility: sym.access,
		Namespace:     sym.ref.Namespace,
		Imports:       sym.outer.scope.imports(),
		Annotations:   annotations,
		File:          sym.file,
		Pos:           sym.pos,
		Handle:        sym.outer,
	}
}

// attributeType binds an attribute name, trying the Attribute suffix second.
// Unbound names keep their written qualifier.
func (p *Provider) attributeType(name string, b binding) model.TypeRef {
	name = stripGlobal(name)
	base, _, _ := strings.Cut(name, "<")
	for _, n := range []string{base, base + "Attribute"} {
		if e, ok := p.lookup(n, b); ok {
			return e.ref
		}
	}
	ns, simple := splitQualified(base)
	return model.TypeRef{Name: simple, Namespace: ns}
}

func (p *Provider) Declarations() []*model.Declaration {
	return slices.Clone(p.decls)
}

// TypeOf binds a typeof operand where decl is declared.
func (p *Provider) TypeOf(decl *model.Declaration, expr model.Expression) (model.TypeRef, bool) {
	if decl == nil || expr.Kind != model.ExprTypeOf {
		return model.TypeRef{}, false
	}
	b, ok := decl.Handle.(binding)
	if !ok {
		return model.TypeRef{}, false
	}
	text := stripGlobal(strings.TrimSpace(expr.Text))
	base, _, _ := strings.Cut(text, "<")
	e, ok := p.lookup(strings.TrimSpace(base), b)
	if !ok {
		return model.TypeRef{}, false
	}
	ref := e.ref
	ref.Syntax = text
	return ref, true
}

// ResolveType describes a type declared in the loaded sources. Framework and
// unknown types yield nil.
func (p *Provider) ResolveType(ref model.TypeRef) (*model.TypeDescriptor, error) {
	sym, ok := p.types[ref.FullName()]
	if !ok {
		return nil, nil
	}
	desc := &model.TypeDescriptor{
		Ref:           sym.ref,
		Accessibility: sym.access,
		Interfaces:    p.interfaces(sym),
	}

	hasParameterless := false
	for _, c := range sym.ctors {
		ctor := model.ConstructorDescriptor{Pos: c.pos}
		for _, ps := range c.params {
			ctor.Parameters = append(ctor.Parameters, p.parameter(ps, sym.inner))
		}
		hasParameterless = hasParameterless || len(c.params) == 0
		desc.Constructors = append(desc.Constructors, ctor)
	}
	if sym.instantiable() && !hasParameterless && (len(sym.ctors) == 0 || sym.ref.Kind == model.KindStruct) {
		desc.Constructors = append(desc.Constructors, model.ConstructorDescriptor{Pos: sym.pos})
	}
	return desc, nil
}

func (p *Provider) parameter(ps paramSyntax, b binding) model.ParameterDescriptor {
	t, value, str := p.typeOfText(ps.typeText, b)
	return model.ParameterDescriptor{Name: ps.name, Type: t, IsValueType: value, IsStringType: str}
}

// typeOfText binds a written type. Nullable value types stay value types,
// arrays are reference types named after their element, tuples are value
// types without a namespace.
func (p *Provider) typeOfText(text string, b binding) (model.TypeRef, bool, bool) {
	syntax := stripGlobal(strings.TrimSpace(text))
	bare := strings.TrimSuffix(syntax, "?")

	switch {
	case strings.HasPrefix(bare, "("):
		return model.TypeRef{Name: bare, Syntax: syntax, Kind: model.KindStruct}, true, false
	case strings.HasSuffix(bare, "]") && strings.Contains(bare, "["):
		ref, _, _ := p.typeOfText(bare[:strings.Index(bare, "[")], b)
		ref.Syntax, ref.Kind = syntax, model.KindClass
		return ref, false, false
	}

	base, _, _ := strings.Cut(bare, "<")
	base = strings.TrimSpace(base)
	if e, ok := p.lookup(base, b); ok {
		ref := e.ref
		ref.Syntax = syntax
		if ref.Kind == model.KindKeyword {
			ref.Syntax = strings.Replace(syntax, base, ref.Name, 1)
		}
		return ref, e.value, e.str
	}

	p.logger.Debug("parameter type not bound", "type", syntax)
	ns, simple := splitQualified(base)
	ref := model.TypeRef{Name: simple, Namespace: ns, Syntax: syntax}
	if ns == "" {
		// Any namespace directive in scope may declare it.
		ref.Imports = b.namespaceUsings()
	}
	return ref, false, false
}

// interfaces lists every interface sym implements, directly or through its
// bases, first occurrence first.
func (p *Provider) interfaces(sym *typeSymbol) []model.TypeRef {
	var (
		out     []model.TypeRef
		seen    = make(map[string]bool)
		visited = make(map[*typeSymbol]bool)
		walk    func(*typeSymbol)
	)
	walk = func(s *typeSymbol) {
		if visited[s] {
			return
		}
		visited[s] = true
		for _, base := range s.bases {
			text := stripGlobal(base.text)
			name, _, _ := strings.Cut(text, "<")
			name = strings.TrimSpace(name)

			e, ok := p.lookup(name, base.ctx)
			if !ok {
				ns, simple := splitQualified(name)
				if !looksLikeInterface(simple) {
					continue
				}
				e = entry{ref: model.TypeRef{Name: simple, Namespace: ns, Kind: model.KindInterface}}
			}
			if e.ref.Kind == model.KindInterface && !seen[e.ref.FullName()] {
				seen[e.ref.FullName()] = true
				ref := e.ref
				ref.Syntax = text
				out = append(out, ref)
			}
			if e.symbol != nil {
				walk(e.symbol)
			}
		}
	}
	walk(sym)
	return out
}

// looksLikeInterface applies the I-prefix naming convention to types the
// sources do not declare.
func looksLikeInterface(name string) bool {
	return len(name) > 1 && name[0] == 'I' && name[1] >= 'A' && name[1] <= 'Z'
}

func (p *Provider) lookup(name string, b binding) (entry, bool) {
	name = stripGlobal(name)
	if _, ok := keywords[name]; ok {
		return keywordEntry(name), true
	}
	for _, full := range b.candidates(name) {
		if e, ok := p.find(full); ok {
			return e, true
		}
	}
	return entry{}, false
}

func (p *Provider) find(full string) (entry, bool) {
	if sym, ok := p.types[full]; ok {
		kind := sym.ref.Kind
		return entry{ref: sym.ref, value: kind == model.KindStruct || kind == model.KindEnum, symbol: sym}, true
	}
	e, ok := p.builtins[full]
	return e, ok
}

func splitQualified(name string) (string, string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
