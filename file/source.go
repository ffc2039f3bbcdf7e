package file

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/json"
	"github.com/pkg/errors"
)

// Source is a qsip.Source which reads line separated JSON workspace objects
// from a file, or from every file in a directory in lexical order.
type Source struct {
	files []string
	idx   int

	cur    *os.File
	curSrc *json.Source
}

// NewSource gets a new file source reading from pathname.
func NewSource(pathname string) (*Source, error) {
	info, err := os.Stat(pathname)
	if err != nil {
		return nil, errors.Wrap(err, "statting path")
	}
	s := &Source{}
	if info.IsDir() {
		infos, err := ioutil.ReadDir(pathname)
		if err != nil {
			return nil, errors.Wrap(err, "reading directory")
		}
		s.files = make([]string, 0, len(infos))
		for _, info = range infos {
			if info.IsDir() {
				continue
			}
			s.files = append(s.files, filepath.Join(pathname, info.Name()))
		}
		sort.Strings(s.files)
	} else {
		s.files = []string{pathname}
	}
	return s, nil
}

// Object implements qsip.Source.
func (s *Source) Object() (*qsip.Object, error) {
	for {
		if s.curSrc == nil {
			if s.idx >= len(s.files) {
				return nil, io.EOF
			}
			f, err := os.Open(s.files[s.idx])
			if err != nil {
				return nil, errors.Wrapf(err, "opening %s", s.files[s.idx])
			}
			s.idx++
			s.cur = f
			s.curSrc = json.NewSource(f)
		}
		obj, err := s.curSrc.Object()
		if err == io.EOF {
			s.cur.Close()
			s.cur, s.curSrc = nil, nil
			continue
		} else if err != nil {
			return nil, errors.Wrapf(err, "reading %s", s.cur.Name())
		}
		return obj, nil
	}
}

// Close closes the file currently being read, if any.
func (s *Source) Close() error {
	if s.cur == nil {
		return nil
	}
	err := s.cur.Close()
	s.cur, s.curSrc = nil, nil
	return err
}
