package qsip

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Table is the row-oriented form of a converted object: one header of column
// names and one row of rendered cells per record.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// NewTable builds a Table from the converted form held by obj. Columns are the
// discovered field names with "id" first and the rest in lexical order; rows
// follow the record order.
func NewTable(name string, obj *Object) (*Table, error) {
	conv := obj.Conversion()
	if conv == nil {
		return nil, errors.Errorf("%s: object has not been converted", name)
	}
	t := &Table{
		Name:    name,
		Columns: columnOrder(conv.FieldNames),
		Rows:    make([][]string, 0, len(conv.DataList)),
	}
	for _, rec := range conv.DataList {
		row := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			row[i] = FormatValue(rec[col])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func columnOrder(fields StringSet) []string {
	cols := make([]string, 0, len(fields))
	if fields.Has("id") {
		cols = append(cols, "id")
	}
	for _, f := range fields.Sorted() {
		if f != "id" {
			cols = append(cols, f)
		}
	}
	return cols
}

// SafeName turns a reference such as "1/2/3" into a name usable for files
// and sheets, "1_2_3".
func SafeName(ref string) string {
	return strings.Replace(ref, "/", "_", -1)
}

// FormatValue renders a decoded JSON value as a cell. Numbers keep their
// shortest representation, nil becomes "", and objects and arrays are
// rendered as compact JSON.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case map[string]interface{}, []interface{}, Record:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
