package workspace

import (
	"context"
	"io"

	"github.com/kbaseapps/qsip"
)

// Source is a qsip.Source over objects fetched from the workspace. The fetch
// happens on the first call to Object.
type Source struct {
	ctx     context.Context
	fetcher *Fetcher
	refs    []string

	objs []*qsip.Object
	idx  int
	err  error
	done bool
}

// NewSource gets a Source which will fetch refs with fetcher.
func NewSource(ctx context.Context, fetcher *Fetcher, refs []string) *Source {
	return &Source{ctx: ctx, fetcher: fetcher, refs: refs}
}

// Object implements qsip.Source.
func (s *Source) Object() (*qsip.Object, error) {
	if !s.done {
		s.done = true
		set, err := s.fetcher.Fetch(s.ctx, s.refs)
		if err != nil {
			s.err = err
		} else {
			for _, ref := range set.Refs() {
				obj, _ := set.Get(ref)
				s.objs = append(s.objs, obj)
			}
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.idx >= len(s.objs) {
		return nil, io.EOF
	}
	s.idx++
	return s.objs[s.idx-1], nil
}
