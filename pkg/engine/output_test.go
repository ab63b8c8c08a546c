package engine

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/symcore/internal/logging"
	"github.com/wildfunctions/symcore/pkg/property"
)

func sampleReport() Report {
	return Report{
		RunID:        "run_1",
		Config:       smallConfig(),
		Seed:         42,
		Generations:  3,
		CasesChecked: 60,
		Stats: map[string]*PropertyStats{
			"identity":   {Passed: 60},
			"absorption": {Passed: 59, Failed: 1},
		},
		BestScore: property.Score{Combined: 101.5, Failures: 1},
		BestCase:  "a = x; b = y; c = 0; seed 1",
		Counterexamples: []Counterexample{{
			Property:   "absorption",
			Generation: 2,
			Original:   "a = x + y; b = y; c = 0; seed 1",
			Shrunk:     "a = x; b = y; c = 0; seed 1",
			LaTeX:      `a &= x\\` + "\n" + `b &= y\\` + "\n" + `c &= 0`,
			Detail:     "absorption: x*0: want 0, got x",
			Seed:       1,
			NodeCount:  3,
			Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}},
	}
}

func TestWriteTextFinal(t *testing.T) {
	var buf bytes.Buffer
	WriteTextFinal(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "Run:         run_1")
	assert.Contains(t, out, "Counterexamples (1)")
	assert.Contains(t, out, "[absorption, gen 2] a = x; b = y; c = 0; seed 1")
	// Properties are listed in name order.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("absorption ")), bytes.Index(buf.Bytes(), []byte("identity ")))
}

func TestWriteJSONFinal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONFinal(&buf, sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run_1", decoded["run_id"])
	cxs, ok := decoded["counterexamples"].([]any)
	require.True(t, ok)
	assert.Len(t, cxs, 1)
}

func TestWriteCounterexamplesLatex(t *testing.T) {
	var buf bytes.Buffer
	WriteCounterexamplesLatex(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, `\begin{document}`)
	assert.Contains(t, out, `Run \texttt{run\_1}`)
	assert.Contains(t, out, `\begin{align*}`)
	assert.Contains(t, out, `\end{document}`)

	buf.Reset()
	empty := sampleReport()
	empty.Counterexamples = nil
	WriteCounterexamplesLatex(&buf, empty)
	assert.Contains(t, buf.String(), "No property failed.")
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, WriteArtifacts(dir, sampleReport(), logging.NewNop()))

	for _, name := range []string{"symsoak_run_1.json", "symsoak_run_1.tex"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
