package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalgen-innolab/dnacare/internal/assessment"
	"github.com/kalgen-innolab/dnacare/internal/questionnaire"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
)

func evaluateFile(t *testing.T, name, lang string) *assessment.Result {
	t.Helper()
	a, err := questionnaire.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	res, err := assessment.NewService(scorer.CalibratedConfig()).Evaluate(a, lang)
	require.NoError(t, err)
	return res
}

func TestFormatReport_English(t *testing.T) {
	res := evaluateFile(t, "budi.json", "en")

	var buf bytes.Buffer
	formatReport(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "Your Health Risk Assessment")
	assert.Contains(t, out, "Metabolic & Lifestyle Risk")
	assert.Contains(t, out, "Risk Level: High")
	assert.Contains(t, out, "Your Personalized Health Recommendations")
	assert.Contains(t, out, "  - Medical Check-Up Recommended")
	assert.Contains(t, out, "SpotMas - High Risk Cancer Screening: https://")
	assert.NotContains(t, out, "ID:")
}

func TestFormatReport_Indonesian(t *testing.T) {
	res := evaluateFile(t, "siti.yaml", "id")
	res.ID = "0f0e0d0c-aaaa-bbbb-cccc-000000000000"

	var buf bytes.Buffer
	formatReport(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "Penilaian Risiko Kesehatan Anda")
	assert.Contains(t, out, "ID:")
	assert.Contains(t, out, res.ID)
}
