package qsip_test

import (
	"encoding/json"
	"testing"

	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/test"
)

func TestNewTable(t *testing.T) {
	obj := &qsip.Object{
		FieldNames: qsip.NewStringSet("zeta", "id", "alpha"),
		DataList: []qsip.Record{
			{"id": "a", "alpha": 1.5, "zeta": "z"},
			{"id": "b", "zeta": nil},
		},
	}
	tbl, err := qsip.NewTable("1/2/3", obj)
	test.ErrNil(t, err, "NewTable")
	test.MustBe(t, []string{"id", "alpha", "zeta"}, tbl.Columns)
	test.MustBe(t, [][]string{{"a", "1.5", "z"}, {"b", "", ""}}, tbl.Rows)

	_, err = qsip.NewTable("1/2/3", &qsip.Object{})
	test.ErrIs(t, err, "1/2/3: object has not been converted")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{in: nil, want: ""},
		{in: "s", want: "s"},
		{in: 7.0, want: "7"},
		{in: 7.25, want: "7.25"},
		{in: 1e21, want: "1000000000000000000000"},
		{in: json.Number("12"), want: "12"},
		{in: true, want: "true"},
		{in: 3, want: "3"},
		{in: map[string]interface{}{"b": 1.0, "a": "x"}, want: `{"a":"x","b":1}`},
		{in: []interface{}{1.0, "two"}, want: `[1,"two"]`},
	}
	for _, tst := range tests {
		test.MustBe(t, tst.want, qsip.FormatValue(tst.in))
	}
}

func TestSafeName(t *testing.T) {
	test.MustBe(t, "12_3_4", qsip.SafeName("12/3/4"))
}
