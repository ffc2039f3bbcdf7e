package qsip_test

import (
	"testing"

	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/test"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		p    qsip.Params
		err  string
	}{
		{
			name: "ok",
			p:    qsip.Params{SourceData: "1/1/1", SampleData: "1/2/1", FeatureData: "1/3/1"},
		},
		{
			name: "no source",
			p:    qsip.Params{SampleData: "1/2/1"},
			err:  "source_data parameter not found!",
		},
		{
			name: "no sample",
			p:    qsip.Params{SourceData: "1/1/1", FeatureData: "1/3/1"},
			err:  "sample_data parameter not found!",
		},
		{
			name: "no feature",
			p:    qsip.Params{SourceData: "1/1/1", SampleData: "1/2/1"},
			err:  "feature_data parameter not found!",
		},
		{
			name: "duplicates",
			p:    qsip.Params{SourceData: "1/1/1", SampleData: "1/1/1", FeatureData: "1/1/1"},
			err:  "Only found 1 unique KBase objects to fetch. Check your parameters and rerun the app.",
		},
		{
			name: "bad ref",
			p:    qsip.Params{SourceData: "1/1/1", SampleData: "1/2", FeatureData: "1/3/1"},
			err:  "parsing parameters: reference '1/2' must have the form container/object/version",
		},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			err := tst.p.Validate()
			if tst.err == "" {
				test.ErrNil(t, err, "Validate")
				return
			}
			test.ErrIs(t, err, tst.err)
		})
	}
}

func TestRequireToken(t *testing.T) {
	test.MustBe(t, qsip.ErrNoToken, qsip.RequireToken(""))
	test.ErrNil(t, qsip.RequireToken("tok"), "RequireToken")
}
