package models

import "strings"

// ResultSet holds the unique values collected by one extraction pass.
// Iteration order is unspecified.
type ResultSet struct {
	values map[string]struct{}
}

// NewResultSet creates an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{
		values: make(map[string]struct{}),
	}
}

// Insert adds a value. Inserting a duplicate has no effect.
func (s *ResultSet) Insert(value string) {
	s.values[value] = struct{}{}
}

// Contains reports whether the value was inserted.
func (s *ResultSet) Contains(value string) bool {
	_, ok := s.values[value]
	return ok
}

// Len returns the number of unique values.
func (s *ResultSet) Len() int {
	return len(s.values)
}

// Cleaned returns every value passed through Clean.
//
// Two raw values may collapse into the same cleaned string; such values
// appear once.
func (s *ResultSet) Cleaned() []string {
	seen := make(map[string]struct{}, len(s.values))
	result := make([]string, 0, len(s.values))
	for v := range s.values {
		c := Clean(v)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		result = append(result, c)
	}
	return result
}

// Clean strips every double quote and then every backslash from s.
// This is not an unescaper: escape sequences lose their backslash and
// nothing else.
func Clean(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	return strings.ReplaceAll(s, `\`, "")
}
