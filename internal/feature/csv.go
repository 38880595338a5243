package feature

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Column names recognized in feature CSVs. Date and Close are required; the
// score columns are optional and default to 0.0 when absent.
const (
	colDate  = "Date"
	colClose = "Close"
	colAstro = "Astro_Score"
	colGann  = "Gann_Score"
	colTech  = "Tech_Score"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadCSV reads a feature CSV produced by the upstream scoring pipeline into a
// Frame. Ingestion is deliberately lenient: rows with an unparseable timestamp
// or close are dropped, non-numeric scores coerce to zero, and rows are sorted
// by timestamp before validation.
func LoadCSV(path string) (Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feature csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read feature csv %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("feature csv %s has no data rows", path)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	dateIdx, ok := cols[colDate]
	if !ok {
		return nil, fmt.Errorf("feature csv %s missing required column %s", path, colDate)
	}
	closeIdx, ok := cols[colClose]
	if !ok {
		return nil, fmt.Errorf("feature csv %s missing required column %s", path, colClose)
	}

	bars := make([]Bar, 0, len(records)-1)
	dropped := 0
	for _, rec := range records[1:] {
		ts, ok := parseTime(field(rec, dateIdx))
		if !ok {
			dropped++
			continue
		}
		closePx, ok := parseFloat(field(rec, closeIdx))
		if !ok {
			dropped++
			continue
		}
		bars = append(bars, Bar{
			Timestamp:  ts,
			Close:      closePx,
			AstroScore: scoreField(rec, cols, colAstro),
			GannScore:  scoreField(rec, cols, colGann),
			TechScore:  scoreField(rec, cols, colTech),
		})
	}
	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Str("path", path).Msg("dropped unparseable feature rows")
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp.Before(bars[j].Timestamp) })

	frame, err := New(bars)
	if err != nil {
		return nil, fmt.Errorf("feature csv %s: %w", path, err)
	}
	log.Debug().Int("bars", len(frame)).Str("path", path).Msg("loaded feature frame")
	return frame, nil
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// scoreField coerces an optional score cell; absent columns and non-numeric
// values both read as 0.0.
func scoreField(rec []string, cols map[string]int, name string) float64 {
	idx, ok := cols[name]
	if !ok {
		return 0.0
	}
	v, ok := parseFloat(field(rec, idx))
	if !ok {
		return 0.0
	}
	return v
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
