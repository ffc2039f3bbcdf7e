package csv_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/csv"
	"github.com/kbaseapps/qsip/test"
)

func TestSinkWrite(t *testing.T) {
	dir, err := ioutil.TempDir("", "qsip-csv")
	test.ErrNil(t, err, "making temp dir")
	defer os.RemoveAll(dir)

	sink, err := csv.NewSink(filepath.Join(dir, "out"))
	test.ErrNil(t, err, "NewSink")

	obj := test.ConvertedMatrix()
	test.ErrNil(t, sink.Write("1/2/3", obj), "Write")
	test.ErrNil(t, sink.Close(), "Close")

	want := filepath.Join(dir, "out", "1_2_3.csv")
	test.MustBe(t, []string{want}, sink.Files())

	got, err := ioutil.ReadFile(want)
	test.ErrNil(t, err, "reading output")
	test.MustBe(t, `id,column_id,row_id,value
c1___r1___1,c1,r1,1
c1___r2___3,c1,r2,3
c2___r1___2,c2,r1,2
c2___r2___4,c2,r2,4
`, string(got))
}

func TestSinkWriteUnconverted(t *testing.T) {
	dir, err := ioutil.TempDir("", "qsip-csv")
	test.ErrNil(t, err, "making temp dir")
	defer os.RemoveAll(dir)

	sink, err := csv.NewSink(dir)
	test.ErrNil(t, err, "NewSink")
	err = sink.Write("1/2/3", &qsip.Object{})
	if err == nil {
		t.Fatal("expected error writing unconverted object")
	}
}
