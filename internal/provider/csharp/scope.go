package csharp

import "strings"

type usingKind int

const (
	usingNamespace usingKind = iota
	usingAlias
	usingStatic
)

type using struct {
	kind   usingKind
	alias  string
	target string
}

// Text is the directive body as it is re-emitted: "System", "R = A.B",
// "static System.Math".
func (u using) Text() string {
	switch u.kind {
	case usingAlias:
		return u.alias + " = " + u.target
	case usingStatic:
		return "static " + u.target
	default:
		return u.target
	}
}

// parseUsing reads a using directive from its source text. It reports false
// for directives that are not usings or are empty.
func parseUsing(text string) (using, bool) {
	s := normalizeSpace(text)
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	s = strings.TrimPrefix(s, "global ")
	if !strings.HasPrefix(s, "using ") {
		return using{}, false
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "using "))
	s = strings.TrimPrefix(s, "unsafe ")

	var u using
	switch {
	case strings.HasPrefix(s, "static "):
		u = using{kind: usingStatic, target: strings.TrimSpace(strings.TrimPrefix(s, "static "))}
	case strings.Contains(s, "="):
		i := strings.Index(s, "=")
		u = using{kind: usingAlias, alias: strings.TrimSpace(s[:i]), target: strings.TrimSpace(s[i+1:])}
	default:
		u = using{kind: usingNamespace, target: s}
	}
	u.target = stripGlobal(u.target)
	if u.target == "" {
		return using{}, false
	}
	return u, true
}

// scope is one namespace level of a file. The root scope has an empty
// namespace and holds the file-level usings.
type scope struct {
	parent    *scope
	namespace string
	usings    []using
}

func (s *scope) child(name string) *scope {
	return &scope{parent: s, namespace: joinName(s.namespace, name)}
}

// imports lists directive bodies from the file level inwards.
func (s *scope) imports() []string {
	var chain []*scope
	for cur := s; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	var out []string
	for i := len(chain) - 1; i >= 0; i-- {
		for _, u := range chain[i].usings {
			out = append(out, u.Text())
		}
	}
	return out
}

// binding is where a name is bound: a namespace scope plus the enclosing
// type names, outermost first.
type binding struct {
	scope      *scope
	containers []string
}

func (c binding) nested(name string) binding {
	containers := make([]string, 0, len(c.containers)+1)
	containers = append(containers, c.containers...)
	return binding{scope: c.scope, containers: append(containers, name)}
}

// namespaceUsings lists the namespace directives in scope, file level
// first. Alias and static directives are left out.
func (c binding) namespaceUsings() []string {
	var chain []*scope
	for s := c.scope; s != nil; s = s.parent {
		chain = append(chain, s)
	}
	var out []string
	for i := len(chain) - 1; i >= 0; i-- {
		for _, u := range chain[i].usings {
			if u.kind == usingNamespace {
				out = append(out, u.target)
			}
		}
	}
	return out
}

// candidates lists the fully qualified names name may denote in c, in
// lookup order.
func (c binding) candidates(name string) []string {
	var out []string
	if c.scope == nil {
		return []string{name}
	}
	for k := len(c.containers); k > 0; k-- {
		out = append(out, joinName(c.scope.namespace, strings.Join(c.containers[:k], "."), name))
	}

	first, rest := name, ""
	if i := strings.Index(name, "."); i >= 0 {
		first, rest = name[:i], name[i+1:]
	}

	for s := c.scope; s != nil; s = s.parent {
		outer := ""
		if s.parent != nil {
			outer = s.parent.namespace
		}
		out = append(out, joinName(s.namespace, name))
		for _, u := range s.usings {
			switch u.kind {
			case usingAlias:
				if u.alias == first {
					out = append(out, joinName(u.target, rest))
				}
			default:
				out = append(out, joinName(u.target, name))
			}
		}
		for ns := parentNamespace(s.namespace); ns != outer && ns != ""; ns = parentNamespace(ns) {
			out = append(out, joinName(ns, name))
		}
	}
	return out
}

func parentNamespace(ns string) string {
	if i := strings.LastIndex(ns, "."); i >= 0 {
		return ns[:i]
	}
	return ""
}

func joinName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stripGlobal(s string) string {
	return strings.ReplaceAll(s, "global::", "")
}
