package qsip_test

import (
	"testing"

	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/test"
)

func TestObjectSet(t *testing.T) {
	s := qsip.NewObjectSet()
	a, b := test.MatrixObject(), test.SampleSetObject()
	test.ErrNil(t, s.Add("b", b), "Add b")
	test.ErrNil(t, s.Add("a", a), "Add a")
	test.ErrIs(t, s.Add("a", a), "duplicate object reference 'a'")

	s.Set("b", a)
	s.Set("c", b)
	test.MustBe(t, []string{"b", "a", "c"}, s.Refs())
	test.MustBe(t, 3, s.Len())

	got, ok := s.Get("b")
	if !ok || got != a {
		t.Fatalf("Set did not replace b")
	}
	if _, ok := s.Get("z"); ok {
		t.Fatal("unexpected object for z")
	}

	refs := s.Refs()
	refs[0] = "mutated"
	test.MustBe(t, "b", s.Refs()[0])
}
