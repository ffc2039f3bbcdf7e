package qsip_test

import (
	"testing"

	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/test"
)

func TestDispatcherConvert(t *testing.T) {
	called := make([]qsip.Family, 0)
	reg := qsip.NewRegistry()
	for _, f := range []qsip.Family{qsip.FamilySampleSet, qsip.FamilyMatrix} {
		f := f
		reg.Register(f, qsip.ConverterFunc(func(obj *qsip.Object) (*qsip.Conversion, error) {
			called = append(called, f)
			return &qsip.Conversion{FieldNames: qsip.NewStringSet("id")}, nil
		}))
	}
	d := qsip.NewDispatcher(reg)

	tests := []struct {
		typ    string
		called []qsip.Family
		err    string
	}{
		{
			typ:    "KBaseSets.SampleSet-2.0",
			called: []qsip.Family{qsip.FamilySampleSet},
		},
		{
			typ:    "KBaseMatrices.AmpliconMatrix-1.0",
			called: []qsip.Family{qsip.FamilyMatrix},
		},
		{
			typ:    "KBaseGenomes.Genome-1.0",
			called: []qsip.Family{},
			err:    "1/2/3: no dedicated converter found for KBaseGenomes.Genome-1.0",
		},
		{
			typ:    "Odd.SampleSetMatrix-1.0",
			called: []qsip.Family{},
			err:    "1/2/3: no dedicated converter found for Odd.SampleSetMatrix-1.0",
		},
	}
	for _, tst := range tests {
		t.Run(tst.typ, func(t *testing.T) {
			called = called[:0]
			_, err := d.Convert(&qsip.Object{Info: test.Info(1, 2, 3, tst.typ)})
			if tst.err != "" {
				test.ErrIs(t, err, tst.err)
			} else {
				test.ErrNil(t, err, "Convert")
			}
			test.MustBe(t, tst.called, called)
		})
	}
}

func TestDispatcherUnregisteredFamily(t *testing.T) {
	reg := qsip.NewRegistry()
	reg.Register(qsip.FamilyMatrix, qsip.MatrixConverter{})
	_, err := qsip.NewDispatcher(reg).Convert(test.SampleSetObject())
	test.ErrIs(t, err, "4/5/6: no dedicated converter found for KBaseSets.SampleSet-2.0")
}

func TestDispatcherNoInfo(t *testing.T) {
	_, err := qsip.NewDispatcher(qsip.NewDefaultRegistry(nil)).Convert(&qsip.Object{})
	test.MustBe(t, qsip.ErrNoInfo, err)
}

func TestRegistryLookup(t *testing.T) {
	reg := qsip.NewDefaultRegistry(nil)
	if _, ok := reg.Lookup(qsip.FamilySampleSet); !ok {
		t.Fatal("no sample set converter")
	}
	if _, ok := reg.Lookup(qsip.FamilyMatrix); !ok {
		t.Fatal("no matrix converter")
	}
	if _, ok := reg.Lookup(qsip.FamilyUnknown); ok {
		t.Fatal("unexpected converter for unknown family")
	}
}
