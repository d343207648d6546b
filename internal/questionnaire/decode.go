package questionnaire

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Decode parses answers from JSON or YAML and normalizes them. Format is
// "json" or "yaml"; an empty format sniffs the first non-space byte.
func Decode(data []byte, format string) (*Answers, error) {
	if format == "" {
		format = "yaml"
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
			format = "json"
		}
	}

	var a Answers
	switch strings.ToLower(format) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&a); err != nil {
			return nil, eris.Wrap(err, "questionnaire: decode json")
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&a); err != nil {
			return nil, eris.Wrap(err, "questionnaire: decode yaml")
		}
	default:
		return nil, eris.Errorf("questionnaire: unsupported format %q", format)
	}

	Normalize(&a)
	return &a, nil
}

// ReadFile decodes an answers file, choosing the format from its extension.
func ReadFile(path string) (*Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "questionnaire: read %s", path)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	a, err := Decode(data, format)
	if err != nil {
		return nil, eris.Wrapf(err, "questionnaire: %s", path)
	}
	return a, nil
}
