package backtest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/astrorun/astrorun/internal/metrics"
)

// Writer handles writing run artifacts to a run directory.
type Writer struct {
	runDir string
}

// NewWriter creates a writer rooted at a fresh timestamped run directory
// under baseDir.
func NewWriter(baseDir string) (*Writer, error) {
	runDir := filepath.Join(baseDir, "run_"+time.Now().UTC().Format("20060102_150405"))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}
	return &Writer{runDir: runDir}, nil
}

// RunDir returns the run directory path.
func (w *Writer) RunDir() string {
	return w.runDir
}

// WriteReport writes the per-window backtest report as CSV.
func (w *Writer) WriteReport(rows []metrics.Window) error {
	file, err := os.Create(filepath.Join(w.runDir, "backtest_report.csv"))
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write([]string{"start", "end", "sharpe", "sortino", "hit_rate", "avg_return", "trades"}); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range rows {
		rec := []string{
			row.Start.Format(time.RFC3339),
			row.End.Format(time.RFC3339),
			formatFloat(row.Sharpe),
			formatFloat(row.Sortino),
			formatFloat(row.HitRate),
			formatFloat(row.AvgReturn),
			strconv.Itoa(row.Trades),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSignals writes the trailing signal series as CSV.
func (w *Writer) WriteSignals(rows []SignalRow) error {
	file, err := os.Create(filepath.Join(w.runDir, "signals_last.csv"))
	if err != nil {
		return fmt.Errorf("failed to create signals file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write([]string{"timestamp", "total", "close", "signal", "direction"}); err != nil {
		return fmt.Errorf("failed to write signals header: %w", err)
	}
	for _, row := range rows {
		rec := []string{
			row.Timestamp.Format(time.RFC3339),
			formatFloat(row.Total),
			formatFloat(row.Close),
			strconv.Itoa(row.Signal),
			row.Direction,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write signal row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary writes an arbitrary summary value as indented JSON.
func (w *Writer) WriteSummary(summary any) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.runDir, "summary.json"), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// WriteMarkdown writes a human-readable digest of the run.
func (w *Writer) WriteMarkdown(rows []metrics.Window, signals []SignalRow) error {
	var report strings.Builder

	report.WriteString("# Backtest Report\n\n")
	report.WriteString(fmt.Sprintf("**Generated**: %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC")))
	report.WriteString(fmt.Sprintf("**Windows**: %d\n\n", len(rows)))

	if avg, ok := MeanSharpe(rows); ok {
		report.WriteString(fmt.Sprintf("- **Mean Sharpe**: %.4f\n", avg))
	}
	totalTrades := 0
	for _, row := range rows {
		totalTrades += row.Trades
	}
	report.WriteString(fmt.Sprintf("- **Total Trades**: %d\n\n", totalTrades))

	if len(signals) > 0 {
		last := signals[len(signals)-1]
		report.WriteString(fmt.Sprintf("Latest signal: **%s** (total=%.4f at %s)\n",
			last.Direction, last.Total, last.Timestamp.Format(time.RFC3339)))
	}

	if err := os.WriteFile(filepath.Join(w.runDir, "report.md"), []byte(report.String()), 0644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
