package submission

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// CSVSink appends one row per record, writing the header when the file is
// new or empty.
type CSVSink struct {
	path string
}

// NewCSVSink returns a sink appending to path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (s *CSVSink) Name() string { return SinkCSV }

func (s *CSVSink) Write(_ context.Context, r *Record) error {
	mu := lockFor(s.path)
	mu.Lock()
	defer mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "csv: create dir")
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return eris.Wrap(err, "csv: open")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return eris.Wrap(err, "csv: stat")
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Columns()); err != nil {
			return eris.Wrap(err, "csv: write header")
		}
	}
	if err := w.Write(r.Row()); err != nil {
		return eris.Wrap(err, "csv: write row")
	}
	w.Flush()
	return eris.Wrap(w.Error(), "csv: flush")
}

// WriteCSV writes a header and one row per record to w.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return eris.Wrap(err, "csv: write header")
	}
	for i := range records {
		if err := cw.Write(records[i].Row()); err != nil {
			return eris.Wrapf(err, "csv: write row %s", records[i].ID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "csv: flush")
}
