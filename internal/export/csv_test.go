package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

func sampleRecords() []model.CompanyRecord {
	return []model.CompanyRecord{
		{
			Name: "Oasis", Revenue: 420_000_000, RevenueYear: 2024,
			SegmentTag: model.SegmentSouvenir, Source: "rrar_2025",
		},
		{
			Name: "LBL", TaxID: "7707083893", Revenue: 986_900_000, RevenueYear: 2024,
			SegmentTag: model.SegmentBTL, Source: "marketing_tech",
			Website: "https://lbl.ru", Region: "Москва", EmployeeCount: 250,
		},
		{
			Name: "Креон", SegmentTag: model.SegmentBTL, Source: "rrar_2025",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(sampleRecords(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, model.Columns(), rows[0])

	// Sorted by revenue descending, unknown revenue last.
	assert.Equal(t, "LBL", rows[1][1])
	assert.Equal(t, "Oasis", rows[2][1])
	assert.Equal(t, "Креон", rows[3][1])

	assert.Equal(t, "986900000", rows[1][3])
	assert.Equal(t, "250", rows[1][7])
	// Zero numerics render as empty cells.
	assert.Equal(t, "", rows[3][2])
	assert.Equal(t, "", rows[3][3])
}

func TestWriteCSVEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(nil, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.Columns(), rows[0])
}

func TestWriteCSVBadPath(t *testing.T) {
	t.Parallel()

	err := WriteCSV(sampleRecords(), filepath.Join(t.TempDir(), "missing", "out.csv"))
	assert.Error(t, err)
}

func TestSortedByRevenueDoesNotMutate(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	sorted := sortedByRevenue(records)

	assert.Equal(t, "LBL", sorted[0].Name)
	assert.Equal(t, "Oasis", records[0].Name)
}
