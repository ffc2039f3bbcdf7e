package qsip

import (
	"encoding/json"
	"sort"
)

// StringSet is an unordered set of field names.
type StringSet map[string]struct{}

// NewStringSet returns a set holding vals.
func NewStringSet(vals ...string) StringSet {
	s := make(StringSet, len(vals))
	s.Add(vals...)
	return s
}

// Add adds vals to the set.
func (s StringSet) Add(vals ...string) {
	for _, v := range vals {
		s[v] = struct{}{}
	}
}

// Has reports whether v is in the set.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Union adds every member of o to s.
func (s StringSet) Union(o StringSet) {
	for v := range o {
		s[v] = struct{}{}
	}
}

// Sorted returns the members of the set in lexical order.
func (s StringSet) Sorted() []string {
	ret := make([]string, 0, len(s))
	for v := range s {
		ret = append(ret, v)
	}
	sort.Strings(ret)
	return ret
}

// MarshalJSON encodes the set as a sorted array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array into the set.
func (s *StringSet) UnmarshalJSON(b []byte) error {
	var vals []string
	if err := json.Unmarshal(b, &vals); err != nil {
		return err
	}
	*s = NewStringSet(vals...)
	return nil
}
