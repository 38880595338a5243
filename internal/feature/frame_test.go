package feature

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAscendingTimestamps(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := New([]Bar{
		{Timestamp: base, Close: 100},
		{Timestamp: base, Close: 101},
	})
	assert.Error(t, err, "duplicate timestamps rejected")

	_, err = New([]Bar{
		{Timestamp: base.Add(time.Hour), Close: 100},
		{Timestamp: base, Close: 101},
	})
	assert.Error(t, err, "descending timestamps rejected")

	f, err := New([]Bar{
		{Timestamp: base, Close: 100},
		{Timestamp: base.Add(time.Hour), Close: 101},
	})
	require.NoError(t, err)
	assert.Len(t, f, 2)
	assert.Equal(t, base, f.Start())
	assert.Equal(t, base.Add(time.Hour), f.End())
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.csv")
	csv := "Date,Close,Astro_Score,Gann_Score\n" +
		"2025-01-01T02:00:00Z,102,0.3,bad\n" + // out of order; bad gann coerces to 0
		"2025-01-01T00:00:00Z,100,0.1,0.2\n" +
		"2025-01-01T01:00:00Z,not-a-price,0.2,0.2\n" + // dropped row
		"2025-01-01T03:00:00Z,103,,-0.1\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	f, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, f, 3, "row with unparseable close is dropped")

	assert.True(t, f[0].Timestamp.Before(f[1].Timestamp), "rows sorted by timestamp")
	assert.Equal(t, 100.0, f[0].Close)
	assert.Equal(t, 0.1, f[0].AstroScore)
	assert.Zero(t, f[1].GannScore, "non-numeric score coerces to zero")
	assert.Zero(t, f[0].TechScore, "absent Tech_Score column defaults to zero")
	assert.Zero(t, f[2].AstroScore, "empty score cell defaults to zero")
}

func TestLoadCSV_MissingRequiredColumns(t *testing.T) {
	dir := t.TempDir()

	noClose := filepath.Join(dir, "no_close.csv")
	require.NoError(t, os.WriteFile(noClose, []byte("Date,Astro_Score\n2025-01-01,0.1\n"), 0644))
	_, err := LoadCSV(noClose)
	assert.Error(t, err)

	noDate := filepath.Join(dir, "no_date.csv")
	require.NoError(t, os.WriteFile(noDate, []byte("Close\n100\n"), 0644))
	_, err = LoadCSV(noDate)
	assert.Error(t, err)

	_, err = LoadCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestFrame_ClosesIsACopy(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f, err := New([]Bar{
		{Timestamp: base, Close: 100},
		{Timestamp: base.Add(time.Hour), Close: 101},
	})
	require.NoError(t, err)

	closes := f.Closes()
	closes[0] = -1

	assert.Equal(t, 100.0, f[0].Close, "derived series must not alias the frame")
}
