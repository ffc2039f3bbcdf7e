package qsip

import (
	"io"
	"time"

	"github.com/pkg/errors"
)

// Source is the interface for getting workspace objects one at a time. Object
// returns io.EOF once the source is exhausted.
type Source interface {
	Object() (*Object, error)
}

// Sink is the interface for consumers of converted objects.
type Sink interface {
	Write(ref string, obj *Object) error
	Close() error
}

// Pipeline reads every object from a Source, converts them as one batch, and
// hands the results to a Sink.
type Pipeline struct {
	src   Source
	batch *Batch
	sink  Sink
	log   Logger

	Stats Statter
}

// NewPipeline gets a new Pipeline.
func NewPipeline(src Source, batch *Batch, sink Sink, log Logger) *Pipeline {
	if log == nil {
		log = NopLogger{}
	}
	return &Pipeline{
		src:   src,
		batch: batch,
		sink:  sink,
		log:   log,
		Stats: NopStatter{},
	}
}

// Run drains the source, converts, and writes. The sink is closed whether or
// not the conversion succeeds; nothing is written unless every object
// converts.
func (p *Pipeline) Run() (err error) {
	defer func() {
		cerr := p.sink.Close()
		if err == nil && cerr != nil {
			err = errors.Wrap(cerr, "closing sink")
		}
	}()

	start := time.Now()
	objs, err := ReadAll(p.src)
	if err != nil {
		return errors.Wrap(err, "reading objects")
	}
	p.log.Printf("read %d objects", objs.Len())
	p.Stats.Count("objects.read", int64(objs.Len()))

	converted, err := p.batch.Convert(objs)
	if err != nil {
		p.Stats.Count("batches.failed", 1)
		return err
	}
	p.Stats.Timing("convert", time.Since(start))
	for _, ref := range converted.Refs() {
		obj, _ := converted.Get(ref)
		if err := p.sink.Write(ref, obj); err != nil {
			return errors.Wrapf(err, "writing %s", ref)
		}
		p.log.Debugf("wrote %s: %d records", ref, len(obj.DataList))
		p.Stats.Count("objects.written", 1)
		p.Stats.Count("records.written", int64(len(obj.DataList)), "type:"+obj.Type())
	}
	p.Stats.Timing("total", time.Since(start))
	return nil
}

// ReadAll drains src into an ObjectSet keyed by each object's reference.
func ReadAll(src Source) (*ObjectSet, error) {
	objs := NewObjectSet()
	for i := 0; ; i++ {
		obj, err := src.Object()
		if err == io.EOF {
			return objs, nil
		} else if err != nil {
			return nil, err
		}
		upa, err := obj.UPA()
		if err != nil {
			return nil, errors.Wrapf(err, "object #%d", i)
		}
		if err := objs.Add(upa, obj); err != nil {
			return nil, err
		}
	}
}

// SliceSource is a Source over objects already in memory.
type SliceSource struct {
	objs []*Object
	idx  int
}

// NewSliceSource returns a Source which yields objs in order.
func NewSliceSource(objs ...*Object) *SliceSource {
	return &SliceSource{objs: objs}
}

// Object implements Source.
func (s *SliceSource) Object() (*Object, error) {
	if s.idx >= len(s.objs) {
		return nil, io.EOF
	}
	s.idx++
	return s.objs[s.idx-1], nil
}
