package qsip

import (
	"strings"

	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
)

// matrixKeys are the keys a matrix payload must carry, in the order they are
// checked and reported.
var matrixKeys = []string{"col_ids", "row_ids", "values"}

// MatrixConverter expands a dense row x column matrix into one record per
// cell. Records are emitted column-major: every row of the first column,
// then every row of the second, and so on.
type MatrixConverter struct{}

// Convert implements Converter.
func (MatrixConverter) Convert(obj *Object) (*Conversion, error) {
	upa, err := obj.UPA()
	if err != nil {
		return nil, err
	}
	matrix, ok := obj.Data["data"].(map[string]interface{})
	if !ok || len(matrix) == 0 {
		return nil, errors.Errorf("%s: no 'data.data' field found", upa)
	}

	missing := make([]string, 0)
	for _, k := range matrixKeys {
		if v, ok := matrix[k].([]interface{}); !ok || len(v) == 0 {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("%s: 'data.data' is missing required keys: %s", upa, strings.Join(missing, ", "))
	}

	colIDs := matrix["col_ids"].([]interface{})
	rowIDs := matrix["row_ids"].([]interface{})
	values := matrix["values"].([]interface{})

	records := make([]Record, 0, len(colIDs)*len(rowIDs))
	for i, colID := range colIDs {
		for j, rowID := range rowIDs {
			value, ok := cell(values, j, i)
			if !ok {
				return nil, errors.Errorf("%s: 'data.data.values' has no entry at [%d][%d]", upa, j, i)
			}
			value = deepcopy.Copy(value)
			records = append(records, Record{
				"id":        FormatValue(colID) + "___" + FormatValue(rowID) + "___" + FormatValue(value),
				"column_id": colID,
				"row_id":    rowID,
				"value":     value,
			})
		}
	}

	return &Conversion{
		FieldNames: NewStringSet("id", "column_id", "row_id", "value"),
		DataList:   records,
	}, nil
}

// cell returns values[row][col].
func cell(values []interface{}, row, col int) (interface{}, bool) {
	if row >= len(values) {
		return nil, false
	}
	r, ok := values[row].([]interface{})
	if !ok || col >= len(r) {
		return nil, false
	}
	return r[col], true
}
