package qsip

import (
	"strings"

	multierror "github.com/hashicorp/go-multierror"
)

// conversionErrorHeader is the first line of the error returned when any
// object in a batch fails to convert.
const conversionErrorHeader = "Errors running data conversion:"

// Batch converts every object of an ObjectSet. A failing object never stops
// the others; all failures are reported together once the whole set has been
// processed.
type Batch struct {
	Dispatcher *Dispatcher
	Log        Logger
}

// NewBatch returns a Batch over the default converters which logs to l and
// sends diagnostics to w.
func NewBatch(l Logger, w Warner) *Batch {
	return &Batch{
		Dispatcher: NewDispatcher(NewDefaultRegistry(w)),
		Log:        l,
	}
}

// Convert converts every object in objs in order. On success it returns a new
// set where each object is a copy of the input merged with its Conversion; objs
// itself is left untouched. If any object fails, Convert returns a nil set and
// an error listing every failure, one per line, in processing order.
func (b *Batch) Convert(objs *ObjectSet) (*ObjectSet, error) {
	var errs *multierror.Error
	out := NewObjectSet()
	for _, ref := range objs.Refs() {
		obj, _ := objs.Get(ref)
		conv, err := b.convertOne(ref, obj)
		if err != nil {
			b.logger().Printf("converting %s: %v", ref, err)
			errs = multierror.Append(errs, err)
			continue
		}
		merged := obj.Clone()
		merged.merge(conv)
		out.Set(ref, merged)
	}
	if errs != nil {
		errs.ErrorFormat = formatConversionErrors
		return nil, errs
	}
	return out, nil
}

func (b *Batch) convertOne(ref string, obj *Object) (*Conversion, error) {
	if obj == nil || obj.Info == nil {
		return nil, Error(ref + ": " + string(ErrNoInfo))
	}
	return b.Dispatcher.Convert(obj)
}

func (b *Batch) logger() Logger {
	if b.Log == nil {
		return NopLogger{}
	}
	return b.Log
}

func formatConversionErrors(es []error) string {
	lines := make([]string, 0, len(es)+1)
	lines = append(lines, conversionErrorHeader)
	for _, e := range es {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}
