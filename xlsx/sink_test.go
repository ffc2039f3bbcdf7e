package xlsx_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/test"
	"github.com/kbaseapps/qsip/xlsx"
)

func TestSheetName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{ref: "1/2/3", want: "1_2_3"},
		{ref: "123456789/123456789/123456789", want: "123456789_123456789_123456789"},
		{ref: "1234567890/1234567890/1234567890", want: "1234567890_1234567890_123456789"},
	}
	for _, tst := range tests {
		t.Run(tst.ref, func(t *testing.T) {
			test.MustBe(t, tst.want, xlsx.SheetName(tst.ref))
		})
	}
}

func TestSink(t *testing.T) {
	dir, cleanup := test.TempDir(t, "qsip-xlsx")
	defer cleanup()
	name := filepath.Join(dir, "out.xlsx")

	sink := xlsx.NewSink(name)
	test.ErrNil(t, sink.Write("1/2/3", test.ConvertedMatrix()), "Write")
	if err := sink.Write("1/2/3", test.ConvertedMatrix()); err == nil {
		t.Fatal("expected error writing the same ref twice")
	}
	test.ErrNil(t, sink.Close(), "Close")
	test.MustBe(t, []string{"1_2_3"}, sink.Sheets())

	f, err := excelize.OpenFile(name)
	test.ErrNil(t, err, "opening workbook")
	test.MustBe(t, [][]string{
		{"id", "column_id", "row_id", "value"},
		{"c1___r1___1", "c1", "r1", "1"},
		{"c1___r2___3", "c1", "r2", "3"},
		{"c2___r1___2", "c2", "r1", "2"},
		{"c2___r2___4", "c2", "r2", "4"},
	}, f.GetRows("1_2_3"))
	if idx := f.GetSheetIndex("Sheet1"); idx != 0 {
		t.Fatalf("default sheet still present at %d", idx)
	}
}

func TestSinkFailedBatchWritesNothing(t *testing.T) {
	dir, cleanup := test.TempDir(t, "qsip-xlsx")
	defer cleanup()
	name := filepath.Join(dir, "out.xlsx")

	src := qsip.NewSliceSource(
		test.MatrixObject(),
		&qsip.Object{Info: test.Info(9, 9, 9, "KBaseGenomes.Genome-1.0")},
	)
	err := qsip.NewPipeline(src, qsip.NewBatch(nil, nil), xlsx.NewSink(name), nil).Run()
	if err == nil || !strings.Contains(err.Error(), "9/9/9: no dedicated converter found") {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Fatalf("workbook written for a failed batch: %v", err)
	}
}
