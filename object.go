package qsip

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
)

// Ref is the reference triple which identifies a single version of a
// workspace object.
type Ref struct {
	WsID    int64
	ObjID   int64
	Version int64
}

// String renders the reference as "{container}/{object}/{version}".
func (r Ref) String() string {
	return fmt.Sprintf("%d/%d/%d", r.WsID, r.ObjID, r.Version)
}

// ParseRef parses a "{container}/{object}/{version}" string.
func ParseRef(s string) (Ref, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Ref{}, errors.Errorf("reference '%s' must have the form container/object/version", s)
	}
	var nums [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return Ref{}, errors.Errorf("reference '%s' has a non-numeric component '%s'", s, p)
		}
		nums[i] = n
	}
	return Ref{WsID: nums[0], ObjID: nums[1], Version: nums[2]}, nil
}

// Info is the workspace metadata for an object.
type Info struct {
	ObjID     int64             `json:"objid"`
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	SaveDate  string            `json:"save_date"`
	Version   int64             `json:"version"`
	SavedBy   string            `json:"saved_by"`
	WsID      int64             `json:"wsid"`
	Workspace string            `json:"workspace"`
	Chsum     string            `json:"chsum"`
	Size      int64             `json:"size"`
	Meta      map[string]string `json:"meta"`
}

// Ref returns the reference triple of the object described by i.
func (i *Info) Ref() Ref {
	return Ref{WsID: i.WsID, ObjID: i.ObjID, Version: i.Version}
}

// infoTupleLen is the length of the positional info list returned by the
// workspace when an infostruct is not requested.
const infoTupleLen = 11

type infoAlias Info

// UnmarshalJSON accepts either the keyed infostruct or the positional info
// tuple.
func (i *Info) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if !strings.HasPrefix(trimmed, "[") {
		var a infoAlias
		if err := json.Unmarshal(b, &a); err != nil {
			return errors.Wrap(err, "decoding info struct")
		}
		*i = Info(a)
		return nil
	}
	var tuple []interface{}
	if err := json.Unmarshal(b, &tuple); err != nil {
		return errors.Wrap(err, "decoding info tuple")
	}
	if len(tuple) != infoTupleLen {
		return errors.Errorf("info tuple has %d elements, expected %d", len(tuple), infoTupleLen)
	}
	i.ObjID = tupleInt(tuple[0])
	i.Name = tupleString(tuple[1])
	i.Type = tupleString(tuple[2])
	i.SaveDate = tupleString(tuple[3])
	i.Version = tupleInt(tuple[4])
	i.SavedBy = tupleString(tuple[5])
	i.WsID = tupleInt(tuple[6])
	i.Workspace = tupleString(tuple[7])
	i.Chsum = tupleString(tuple[8])
	i.Size = tupleInt(tuple[9])
	if meta, ok := tuple[10].(map[string]interface{}); ok {
		i.Meta = make(map[string]string, len(meta))
		for k, v := range meta {
			i.Meta[k] = fmt.Sprint(v)
		}
	}
	return nil
}

func tupleInt(v interface{}) int64 {
	if f, ok := v.(float64); ok {
		return int64(f)
	}
	return 0
}

func tupleString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Object is a workspace object as handed over by a fetcher, optionally merged
// with the result of converting it.
type Object struct {
	Info *Info                  `json:"info"`
	Data map[string]interface{} `json:"data"`

	FieldNames StringSet          `json:"fieldnames,omitempty"`
	DataList   []Record           `json:"data_list,omitempty"`
	Keys       *KeyClassification `json:"keys,omitempty"`
}

// UPA returns the canonical reference string of the object.
func (o *Object) UPA() (string, error) {
	if o.Info == nil {
		return "", ErrNoInfo
	}
	return o.Info.Ref().String(), nil
}

// Type returns the type tag of the object, or "" if it has no info.
func (o *Object) Type() string {
	if o.Info == nil {
		return ""
	}
	return o.Info.Type
}

// Clone returns a deep copy of o. Converters and the batch orchestrator work
// on clones so that data shared between objects is never modified.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	return deepcopy.Copy(o).(*Object)
}

// merge overwrites the conversion keys of o with those of c.
func (o *Object) merge(c *Conversion) {
	o.FieldNames = c.FieldNames
	o.DataList = c.DataList
	o.Keys = c.Keys
}

// Conversion returns the converted form held by o, if any.
func (o *Object) Conversion() *Conversion {
	if o.FieldNames == nil && o.DataList == nil {
		return nil
	}
	return &Conversion{FieldNames: o.FieldNames, DataList: o.DataList, Keys: o.Keys}
}

// Record is a single flattened row.
type Record map[string]interface{}

// KeyClassification records which metadata keys came from the user and which
// from the controlled vocabulary.
type KeyClassification struct {
	User       StringSet `json:"user"`
	Controlled StringSet `json:"controlled"`
}

// Conversion is the tabular form of one workspace object.
type Conversion struct {
	FieldNames StringSet
	DataList   []Record
	Keys       *KeyClassification
}

// Error is a constant error.
type Error string

func (e Error) Error() string { return string(e) }

// ErrNoInfo is returned when an object carries no info metadata and so has no
// reference.
const ErrNoInfo = Error("Cannot find an 'info' key")
