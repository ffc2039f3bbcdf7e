package qsip

import (
	"github.com/pkg/errors"
)

// ObjectSet is a collection of workspace objects keyed by reference which
// remembers insertion order.
type ObjectSet struct {
	refs []string
	objs map[string]*Object
}

// NewObjectSet returns an empty ObjectSet.
func NewObjectSet() *ObjectSet {
	return &ObjectSet{
		objs: make(map[string]*Object),
	}
}

// Add adds obj under ref. It fails if ref is already present.
func (s *ObjectSet) Add(ref string, obj *Object) error {
	if _, ok := s.objs[ref]; ok {
		return errors.Errorf("duplicate object reference '%s'", ref)
	}
	s.refs = append(s.refs, ref)
	s.objs[ref] = obj
	return nil
}

// Set adds or replaces obj under ref. A replaced object keeps its position.
func (s *ObjectSet) Set(ref string, obj *Object) {
	if _, ok := s.objs[ref]; !ok {
		s.refs = append(s.refs, ref)
	}
	s.objs[ref] = obj
}

// Get returns the object stored under ref.
func (s *ObjectSet) Get(ref string) (*Object, bool) {
	obj, ok := s.objs[ref]
	return obj, ok
}

// Refs returns the references in insertion order.
func (s *ObjectSet) Refs() []string {
	ret := make([]string, len(s.refs))
	copy(ret, s.refs)
	return ret
}

// Len returns the number of objects in the set.
func (s *ObjectSet) Len() int { return len(s.refs) }
