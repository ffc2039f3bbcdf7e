package qsip

import (
	"github.com/pkg/errors"
)

// Converter turns a workspace object of one family into its tabular form.
// Implementations must not modify obj.
type Converter interface {
	Convert(obj *Object) (*Conversion, error)
}

// ConverterFunc is a wrapper like http.HandlerFunc which allows you to use a
// bare func as a Converter.
type ConverterFunc func(obj *Object) (*Conversion, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(obj *Object) (*Conversion, error) { return f(obj) }

// Registry maps object families to their converters.
type Registry struct {
	converters map[Family]Converter
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[Family]Converter),
	}
}

// NewDefaultRegistry returns a Registry holding the sample set and matrix
// converters. Diagnostics from the sample set converter go to w.
func NewDefaultRegistry(w Warner) *Registry {
	r := NewRegistry()
	r.Register(FamilySampleSet, &SampleSetConverter{Warner: w})
	r.Register(FamilyMatrix, MatrixConverter{})
	return r
}

// Register sets the converter for a family, replacing any previous one.
func (r *Registry) Register(f Family, c Converter) {
	r.converters[f] = c
}

// Lookup returns the converter for a family.
func (r *Registry) Lookup(f Family) (Converter, bool) {
	c, ok := r.converters[f]
	return c, ok
}

// Dispatcher selects the converter for an object by its type tag.
type Dispatcher struct {
	Registry *Registry
}

// NewDispatcher returns a Dispatcher over reg.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{Registry: reg}
}

// Convert parses the family of obj and runs the matching converter. It fails
// when the type tag names no family, more than one family, or a family with
// no registered converter.
func (d *Dispatcher) Convert(obj *Object) (*Conversion, error) {
	upa, err := obj.UPA()
	if err != nil {
		return nil, err
	}
	fam, err := ParseFamily(obj.Type())
	if err != nil {
		return nil, errors.Errorf("%s: no dedicated converter found for %s", upa, obj.Type())
	}
	conv, ok := d.Registry.Lookup(fam)
	if !ok {
		return nil, errors.Errorf("%s: no dedicated converter found for %s", upa, obj.Type())
	}
	return conv.Convert(obj)
}
