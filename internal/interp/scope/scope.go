package scope

import (
	"sort"
	"strings"
)

// --- Scope ---

// Scope is a flat, case-insensitive name table. Procedure-call frames get a
// fresh Scope for their parameters; the procedure table is one Scope shared
// by pointer between every frame of a run.
type Scope[T any] struct {
	Symbols map[string]T
	Name    string
}

func NewScope[T any](name string) *Scope[T] {
	return &Scope[T]{
		Symbols: make(map[string]T),
		Name:    name,
	}
}

func key(name string) string {
	return strings.ToLower(name)
}

// Define binds name at this level, replacing any previous binding.
func (s *Scope[T]) Define(name string, info T) {
	s.Symbols[key(name)] = info
}

// Lookup searches ONLY this level. Logo frames never fall back to the caller.
func (s *Scope[T]) Lookup(name string) (T, bool) {
	info, ok := s.Symbols[key(name)]
	return info, ok
}

func (s *Scope[T]) Delete(name string) {
	delete(s.Symbols, key(name))
}

func (s *Scope[T]) Len() int {
	return len(s.Symbols)
}

// Names returns the bound names in sorted order.
func (s *Scope[T]) Names() []string {
	names := make([]string, 0, len(s.Symbols))
	for name := range s.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
