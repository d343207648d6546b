package submission

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// JSONDirSink writes each record to its own indented JSON file.
type JSONDirSink struct {
	dir string
}

// NewJSONDirSink returns a sink writing into dir.
func NewJSONDirSink(dir string) *JSONDirSink {
	return &JSONDirSink{dir: dir}
}

func (s *JSONDirSink) Name() string { return SinkJSON }

// FileName returns the file name used for r.
func FileName(r *Record) string {
	ts := strings.ReplaceAll(r.SubmittedAt.UTC().Format(TimeLayout), ":", "-")
	id := r.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "submission_" + ts + "_" + id + ".json"
}

func (s *JSONDirSink) Write(_ context.Context, r *Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return eris.Wrap(err, "json: create dir")
	}
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return eris.Wrap(err, "json: marshal")
	}

	path := filepath.Join(s.dir, FileName(r))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrap(err, "json: write")
	}
	return eris.Wrap(os.Rename(tmp, path), "json: rename")
}
