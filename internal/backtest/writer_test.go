package backtest

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Artifacts(t *testing.T) {
	baseDir := t.TempDir()

	f := sinusoidFrame(t, 400, 0.3)
	set := oscillatingSet(t)
	cfg := DefaultConfig()
	rows := Report(f, set, cfg)
	signals := Tail(GenerateSignals(f, set, cfg), 24)

	writer, err := NewWriter(baseDir)
	require.NoError(t, err)
	require.DirExists(t, writer.RunDir())

	require.NoError(t, writer.WriteReport(rows))
	require.NoError(t, writer.WriteSignals(signals))
	require.NoError(t, writer.WriteMarkdown(rows, signals))
	require.NoError(t, writer.WriteSummary(map[string]int{"bars": len(f)}))

	reportFile, err := os.Open(filepath.Join(writer.RunDir(), "backtest_report.csv"))
	require.NoError(t, err)
	defer reportFile.Close()

	records, err := csv.NewReader(reportFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(rows)+1)
	assert.Equal(t, []string{"start", "end", "sharpe", "sortino", "hit_rate", "avg_return", "trades"}, records[0])

	sigFile, err := os.Open(filepath.Join(writer.RunDir(), "signals_last.csv"))
	require.NoError(t, err)
	defer sigFile.Close()

	sigRecords, err := csv.NewReader(sigFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, sigRecords, len(signals)+1)
	assert.Contains(t, []string{"long", "short", "flat"}, sigRecords[1][4])

	var summary map[string]int
	data, err := os.ReadFile(filepath.Join(writer.RunDir(), "summary.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 400, summary["bars"])

	assert.FileExists(t, filepath.Join(writer.RunDir(), "report.md"))
}
