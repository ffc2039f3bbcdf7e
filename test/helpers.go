package test

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"reflect"
	"testing"

	"github.com/kbaseapps/qsip"
)

// MustBe uses reflect.DeepEqual to assert that thing1 and thing2 are equal, and
// fails otherwise.
func MustBe(t *testing.T, thing1, thing2 interface{}, context ...string) {
	t.Helper()
	var ctx string
	if len(context) == 0 {
		ctx = ""
	} else {
		ctx = context[0] + ": "
	}
	if !reflect.DeepEqual(thing1, thing2) {
		t.Fatalf("%v'%#v' != '%#v'", ctx, thing1, thing2)
	}
}

// ErrNil asserts that the err is nil and fails otherwise.
func ErrNil(t *testing.T, err error, ctx string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%v: %v", ctx, err)
	}
}

// ErrIs asserts that err is non-nil and that its message is exactly msg.
func ErrIs(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error '%s', got nil", msg)
	}
	if err.Error() != msg {
		t.Fatalf("unexpected error:\n got: %s\nwant: %s", err.Error(), msg)
	}
}

// TempDir makes a temporary directory and returns it along with a func which
// removes it.
func TempDir(t *testing.T, prefix string) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", prefix)
	if err != nil {
		t.Fatalf("making temp dir: %v", err)
	}
	return dir, func() { os.RemoveAll(dir) }
}

// JSON decodes s the same way objects read from a source are decoded, so
// that fixtures compare equal to decoded data.
func JSON(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return m
}

// Info returns info for the object at wsid/objid/ver with the given type.
func Info(wsid, objid, ver int64, typ string) *qsip.Info {
	return &qsip.Info{
		WsID:    wsid,
		ObjID:   objid,
		Version: ver,
		Name:    "obj",
		Type:    typ,
	}
}

// MatrixObject returns a 2x2 amplicon matrix at 1/2/3 with columns c1, c2,
// rows r1, r2 and values [[1, 2], [3, 4]].
func MatrixObject() *qsip.Object {
	return &qsip.Object{
		Info: Info(1, 2, 3, "KBaseMatrices.AmpliconMatrix-1.0"),
		Data: map[string]interface{}{
			"data": map[string]interface{}{
				"col_ids": []interface{}{"c1", "c2"},
				"row_ids": []interface{}{"r1", "r2"},
				"values": []interface{}{
					[]interface{}{1.0, 2.0},
					[]interface{}{3.0, 4.0},
				},
			},
		},
	}
}

// ConvertedMatrix returns MatrixObject after conversion.
func ConvertedMatrix() *qsip.Object {
	objs := qsip.NewObjectSet()
	objs.Set("1/2/3", MatrixObject())
	out, err := qsip.NewBatch(nil, nil).Convert(objs)
	if err != nil {
		panic(err)
	}
	obj, _ := out.Get("1/2/3")
	return obj
}

// Sample returns a sample named name whose self node carries the given type
// and metadata. Metadata values are stored as {value} entries.
func Sample(id, name, typ string, user, controlled map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":   id,
		"name": name,
		"node_tree": []interface{}{
			map[string]interface{}{
				"id":              name,
				"type":            typ,
				"parent":          nil,
				"meta_user":       wrapValues(user),
				"meta_controlled": wrapValues(controlled),
			},
		},
	}
}

func wrapValues(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if _, ok := v.(map[string]interface{}); ok {
			out[k] = v
			continue
		}
		out[k] = map[string]interface{}{"value": v}
	}
	return out
}

// SampleSetObject returns a sample set at 4/5/6 holding samples.
func SampleSetObject(samples ...map[string]interface{}) *qsip.Object {
	list := make([]interface{}, len(samples))
	for i, s := range samples {
		list[i] = s
	}
	return &qsip.Object{
		Info: Info(4, 5, 6, "KBaseSets.SampleSet-2.0"),
		Data: map[string]interface{}{
			"sample_data": list,
		},
	}
}
