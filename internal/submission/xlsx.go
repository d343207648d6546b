package submission

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXSink appends rows to a worksheet, creating the workbook and sheet on
// first use. The whole workbook is rewritten on every append.
type XLSXSink struct {
	path  string
	sheet string
}

// NewXLSXSink returns a sink appending to sheet in the workbook at path.
func NewXLSXSink(path, sheet string) *XLSXSink {
	if sheet == "" {
		sheet = "Submissions"
	}
	return &XLSXSink{path: path, sheet: sheet}
}

func (s *XLSXSink) Name() string { return SinkXLSX }

func (s *XLSXSink) Write(_ context.Context, r *Record) error {
	mu := lockFor(s.path)
	mu.Lock()
	defer mu.Unlock()

	f, err := openWorkbook(s.path)
	if err != nil {
		return err
	}
	sheet, ok := f.Sheet[s.sheet]
	if !ok {
		if sheet, err = f.AddSheet(s.sheet); err != nil {
			return eris.Wrapf(err, "xlsx: add sheet %s", s.sheet)
		}
	}
	if len(sheet.Rows) == 0 {
		AppendRow(sheet, Columns())
	}
	AppendRow(sheet, r.Row())
	return eris.Wrap(f.Save(s.path), "xlsx: save")
}

func openWorkbook(path string) (*xlsx.File, error) {
	f, err := xlsx.OpenFile(path)
	if err == nil {
		return f, nil
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		return xlsx.NewFile(), nil
	}
	return nil, eris.Wrap(err, "xlsx: open file")
}

// AppendRow adds a row of string cells.
func AppendRow(sheet *xlsx.Sheet, cells []string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}

// WriteXLSX writes records to a new workbook at path.
func WriteXLSX(path, sheetName string, records []Record) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrapf(err, "xlsx: add sheet %s", sheetName)
	}
	AppendRow(sheet, Columns())
	for i := range records {
		AppendRow(sheet, records[i].Row())
	}
	return eris.Wrap(f.Save(path), "xlsx: save")
}
