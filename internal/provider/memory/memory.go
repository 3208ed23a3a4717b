// Package memory is a TypeProvider over declarations and descriptors supplied
// directly by the caller.
package memory

import (
	"slices"
	"strings"

	"github.com/cmmoran/creatorgen/internal/model"
)

type Provider struct {
	decls []*model.Declaration
	types map[string]*model.TypeDescriptor
	order []string
	fails map[string]error
}

func New() *Provider {
	return &Provider{
		types: make(map[string]*model.TypeDescriptor),
		fails: make(map[string]error),
	}
}

func (p *Provider) AddDeclaration(decls ...*model.Declaration) *Provider {
	p.decls = append(p.decls, decls...)
	return p
}

// AddType registers desc under its fully qualified name, replacing any
// previous registration.
func (p *Provider) AddType(descs ...*model.TypeDescriptor) *Provider {
	for _, d := range descs {
		key := d.Ref.FullName()
		if _, ok := p.types[key]; !ok {
			p.order = append(p.order, key)
		}
		p.types[key] = d
	}
	return p
}

// Fail makes ResolveType return err for the type named fullName.
func (p *Provider) Fail(fullName string, err error) *Provider {
	p.fails[fullName] = err
	return p
}

func (p *Provider) Declarations() []*model.Declaration {
	out := make([]*model.Declaration, 0, len(p.decls))
	for _, d := range p.decls {
		if len(d.Annotations) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// TypeOf looks the operand up as a full name, then relative to the
// declaration's namespace and imports, then by unique simple name.
func (p *Provider) TypeOf(decl *model.Declaration, expr model.Expression) (model.TypeRef, bool) {
	if expr.Kind != model.ExprTypeOf {
		return model.TypeRef{}, false
	}
	text := strings.TrimPrefix(strings.TrimSpace(expr.Text), "global::")
	if text == "" {
		return model.TypeRef{}, false
	}

	candidates := []string{text}
	if decl != nil {
		if decl.Namespace != "" {
			candidates = append(candidates, decl.Namespace+"."+text)
		}
		for _, imp := range decl.Imports {
			candidates = append(candidates, imp+"."+text)
		}
	}
	for _, c := range candidates {
		if d, ok := p.types[c]; ok {
			ref := d.Ref
			ref.Syntax = text
			return ref, true
		}
	}

	var found *model.TypeDescriptor
	for _, key := range p.order {
		if d := p.types[key]; d.Ref.Name == text {
			if found != nil {
				return model.TypeRef{}, false
			}
			found = d
		}
	}
	if found == nil {
		return model.TypeRef{}, false
	}
	ref := found.Ref
	ref.Syntax = text
	return ref, true
}

func (p *Provider) ResolveType(ref model.TypeRef) (*model.TypeDescriptor, error) {
	key := ref.FullName()
	if err, ok := p.fails[key]; ok {
		return nil, err
	}
	d, ok := p.types[key]
	if !ok {
		return nil, nil
	}
	return clone(d), nil
}

func clone(d *model.TypeDescriptor) *model.TypeDescriptor {
	c := *d
	c.Interfaces = slices.Clone(d.Interfaces)
	c.Constructors = make([]model.ConstructorDescriptor, len(d.Constructors))
	for i, ctor := range d.Constructors {
		c.Constructors[i] = model.ConstructorDescriptor{
			Parameters: slices.Clone(ctor.Parameters),
			Pos:        ctor.Pos,
		}
	}
	return &c
}
