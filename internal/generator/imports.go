package generator

import "github.com/cmmoran/creatorgen/internal/model"

// OrderedSet keeps strings in first-insertion order without duplicates.
type OrderedSet struct {
	items []string
	seen  map[string]struct{}
}

func NewOrderedSet(items ...string) *OrderedSet {
	s := &OrderedSet{seen: make(map[string]struct{}, len(items))}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add appends item unless it is empty or already present. The zero value is
// ready to use.
func (s *OrderedSet) Add(item string) bool {
	if item == "" {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[item]; ok {
		return false
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

func (s *OrderedSet) Contains(item string) bool {
	_, ok := s.seen[item]
	return ok
}

func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Values returns a copy of the items in insertion order.
func (s *OrderedSet) Values() []string {
	return append([]string(nil), s.items...)
}

// AggregateImports orders the namespaces a factory needs: existing imports,
// the stand-in namespace, the result type's namespace, the target's
// namespace, then each parameter type's namespace. A parameter type the
// provider could not bind contributes its candidate imports instead.
func AggregateImports(
	existing []string,
	resultType *model.TypeRef,
	targetNamespace string,
	parameterTypes []model.TypeRef,
	standInNamespace string,
) []string {
	set := NewOrderedSet(existing...)
	set.Add(standInNamespace)
	if resultType != nil {
		set.Add(resultType.EnclosingNamespace())
	}
	set.Add(targetNamespace)
	for _, t := range parameterTypes {
		set.Add(t.EnclosingNamespace())
		for _, ns := range t.Imports {
			set.Add(ns)
		}
	}
	return set.Values()
}
