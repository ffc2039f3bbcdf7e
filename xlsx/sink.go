// Package xlsx writes converted objects to a spreadsheet workbook, one sheet
// per object.
package xlsx

import (
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/kbaseapps/qsip"
	"github.com/pkg/errors"
)

// defaultSheet is the sheet excelize creates in every new workbook.
const defaultSheet = "Sheet1"

// maxSheetName is the longest sheet name a workbook accepts.
const maxSheetName = 31

// Sink is a qsip.Sink which collects every converted object into one workbook
// and saves it when closed.
type Sink struct {
	filename string
	file     *excelize.File
	sheets   []string
}

// NewSink gets a Sink which will save to filename.
func NewSink(filename string) *Sink {
	return &Sink{
		filename: filename,
		file:     excelize.NewFile(),
	}
}

// SheetName returns the sheet name used for ref.
func SheetName(ref string) string {
	name := qsip.SafeName(ref)
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}

// Write implements qsip.Sink.
func (s *Sink) Write(ref string, obj *qsip.Object) error {
	t, err := qsip.NewTable(ref, obj)
	if err != nil {
		return err
	}
	name := SheetName(ref)
	for _, existing := range s.sheets {
		if existing == name {
			return errors.Errorf("sheet %s already written", name)
		}
	}
	idx := s.file.NewSheet(name)
	if len(s.sheets) == 0 {
		s.file.SetActiveSheet(idx)
	}
	s.sheets = append(s.sheets, name)

	for col, head := range t.Columns {
		s.file.SetCellValue(name, axis(col, 0), head)
	}
	for r, row := range t.Rows {
		for col, val := range row {
			s.file.SetCellValue(name, axis(col, r+1), val)
		}
	}
	return nil
}

// Sheets returns the sheet names written so far.
func (s *Sink) Sheets() []string {
	return append([]string(nil), s.sheets...)
}

// Close implements qsip.Sink by saving the workbook. Nothing is saved if no
// object was written.
func (s *Sink) Close() error {
	if len(s.sheets) == 0 {
		return nil
	}
	s.file.DeleteSheet(defaultSheet)
	s.file.SetActiveSheet(s.file.GetSheetIndex(s.sheets[0]))
	return errors.Wrapf(s.file.SaveAs(s.filename), "saving %s", s.filename)
}

// axis returns the cell name of the 0 based col and row, e.g. (1, 0) is "B1".
func axis(col, row int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(row+1)
}
