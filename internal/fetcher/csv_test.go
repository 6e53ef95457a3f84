package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamCSVRecords(t *testing.T) {
	t.Parallel()

	input := "name,inn,revenue\nLBL,7707083893,986900000\nКреон,,340000000\n"

	recCh, errCh := StreamCSVRecords(context.Background(), strings.NewReader(input), CSVOptions{})

	var records []map[string]any
	for rec := range recCh {
		records = append(records, rec)
	}
	require.NoError(t, <-errCh)
	require.Len(t, records, 2)

	assert.Equal(t, "LBL", records[0]["name"])
	assert.Equal(t, "7707083893", records[0]["inn"])
	// Empty cells are omitted entirely, not stored as "".
	_, ok := records[1]["inn"]
	assert.False(t, ok)
	assert.Equal(t, "340000000", records[1]["revenue"])
}

func TestStreamCSVRecordsDelimiterAndTrim(t *testing.T) {
	t.Parallel()

	input := "name; region\nLBL ; Москва \n"

	recCh, errCh := StreamCSVRecords(context.Background(), strings.NewReader(input), CSVOptions{
		Delimiter: ';',
		TrimSpace: true,
	})

	var records []map[string]any
	for rec := range recCh {
		records = append(records, rec)
	}
	require.NoError(t, <-errCh)
	require.Len(t, records, 1)
	assert.Equal(t, "LBL", records[0]["name"])
	assert.Equal(t, "Москва", records[0]["region"])
}

func TestStreamCSVRecordsShortRow(t *testing.T) {
	t.Parallel()

	// Rows shorter than the header keep only the cells they have.
	input := "name,inn,region\nLBL\n"

	recCh, errCh := StreamCSVRecords(context.Background(), strings.NewReader(input), CSVOptions{})

	var records []map[string]any
	for rec := range recCh {
		records = append(records, rec)
	}
	require.NoError(t, <-errCh)
	require.Len(t, records, 1)
	assert.Len(t, records[0], 1)
}

func TestReadCSVFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dump.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\nemg\n"), 0o644))

	records, err := ReadCSVFile(context.Background(), path, CSVOptions{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "emg", records[0]["name"])
}

func TestReadCSVFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadCSVFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), CSVOptions{})
	assert.Error(t, err)
}
