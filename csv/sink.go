package csv

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/kbaseapps/qsip"
	"github.com/pkg/errors"
)

// Sink is a qsip.Sink which writes each converted object to its own CSV file
// in a directory. Files are named after the object reference with slashes
// replaced by underscores.
type Sink struct {
	dir     string
	written []string
}

// NewSink gets a Sink writing under dir, which is created if needed.
func NewSink(dir string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "making output directory")
	}
	return &Sink{dir: dir}, nil
}

// Write implements qsip.Sink.
func (s *Sink) Write(ref string, obj *qsip.Object) error {
	t, err := qsip.NewTable(ref, obj)
	if err != nil {
		return err
	}
	name := filepath.Join(s.dir, qsip.SafeName(ref)+".csv")
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "creating %s", name)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return errors.Wrap(err, "writing header")
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return errors.Wrap(err, "writing rows")
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", name)
	}
	s.written = append(s.written, name)
	return nil
}

// Files returns the paths written so far, in write order.
func (s *Sink) Files() []string {
	return append([]string(nil), s.written...)
}

// Close implements qsip.Sink. Every file is already closed by Write.
func (s *Sink) Close() error {
	return nil
}
