package qsip

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringSet(t *testing.T) {
	s := NewStringSet("b", "a")
	s.Union(NewStringSet("c", "a"))
	if !s.Has("c") || s.Has("d") {
		t.Fatalf("unexpected membership: %v", s)
	}
	if got := s.Sorted(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected order: %v", got)
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshalling: %v", err)
	}
	if string(b) != `["a","b","c"]` {
		t.Fatalf("unexpected encoding: %s", b)
	}
	var decoded StringSet
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshalling: %v", err)
	}
	if !reflect.DeepEqual(s, decoded) {
		t.Fatalf("%v != %v", s, decoded)
	}
}

func TestColumnOrder(t *testing.T) {
	tests := []struct {
		fields StringSet
		want   []string
	}{
		{fields: NewStringSet("b", "id", "a"), want: []string{"id", "a", "b"}},
		{fields: NewStringSet("b", "a"), want: []string{"a", "b"}},
		{fields: NewStringSet(), want: []string{}},
	}
	for i, tst := range tests {
		if got := columnOrder(tst.fields); !reflect.DeepEqual(got, tst.want) {
			t.Errorf("test %d: got %v, want %v", i, got, tst.want)
		}
	}
}
