package json

import (
	"encoding/json"
	"io"

	"github.com/kbaseapps/qsip"
	"github.com/pkg/errors"
)

// Source is a qsip.Source for reading workspace objects encoded as a stream
// of JSON documents.
type Source struct {
	dec *json.Decoder
}

// NewSource gets a new json source which will decode from the given reader.
func NewSource(r io.Reader) *Source {
	return &Source{
		dec: json.NewDecoder(r),
	}
}

// Object implements qsip.Source. It returns the next object that can be
// decoded from the reader, or io.EOF when the reader is exhausted.
func (s *Source) Object() (*qsip.Object, error) {
	obj := &qsip.Object{}
	err := s.dec.Decode(obj)
	if err == io.EOF {
		return nil, err
	} else if err != nil {
		return nil, errors.Wrap(err, "decoding object")
	}
	return obj, nil
}

// Writer encodes objects as line separated JSON, the format Source reads.
type Writer struct {
	enc *json.Encoder
}

// NewWriter gets a Writer which encodes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// Write encodes obj on its own line.
func (w *Writer) Write(obj *qsip.Object) error {
	return errors.Wrap(w.enc.Encode(obj), "encoding object")
}
