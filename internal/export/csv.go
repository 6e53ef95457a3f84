// Package export writes the final company roster to CSV and XLSX files
// in the canonical column order, sorted by revenue descending.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

// WriteCSV writes records to path as CSV with a header row.
func WriteCSV(records []model.CompanyRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(model.Columns()); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, rec := range sortedByRevenue(records) {
		if err := w.Write(buildRow(rec)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}

	zap.L().Info("export: wrote csv",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return nil
}

// buildRow maps a record to the canonical CSV row.
func buildRow(rec model.CompanyRecord) []string {
	return []string{
		rec.TaxID,
		rec.Name,
		intField(rec.RevenueYear),
		revenueField(rec.Revenue),
		string(rec.SegmentTag),
		rec.Source,
		rec.IndustryCode,
		intField(rec.EmployeeCount),
		rec.Website,
		rec.Description,
		rec.Region,
		rec.Contact,
		rec.RatingRef,
	}
}

// sortedByRevenue orders records richest first, preserving the incoming
// order among equals. The input slice is not mutated.
func sortedByRevenue(records []model.CompanyRecord) []model.CompanyRecord {
	out := make([]model.CompanyRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return out
}

func intField(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func revenueField(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%.0f", v)
}
