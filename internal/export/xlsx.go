package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

// WriteXLSX writes records to path as a single-sheet XLSX workbook with
// a header row, in the same order and columns as the CSV export.
func WriteXLSX(records []model.CompanyRecord, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("companies")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range model.Columns() {
		header.AddCell().SetString(col)
	}

	for _, rec := range sortedByRevenue(records) {
		row := sheet.AddRow()
		row.AddCell().SetString(rec.TaxID)
		row.AddCell().SetString(rec.Name)
		addIntCell(row, rec.RevenueYear)
		addRevenueCell(row, rec.Revenue)
		row.AddCell().SetString(string(rec.SegmentTag))
		row.AddCell().SetString(rec.Source)
		row.AddCell().SetString(rec.IndustryCode)
		addIntCell(row, rec.EmployeeCount)
		row.AddCell().SetString(rec.Website)
		row.AddCell().SetString(rec.Description)
		row.AddCell().SetString(rec.Region)
		row.AddCell().SetString(rec.Contact)
		row.AddCell().SetString(rec.RatingRef)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}

	zap.L().Info("export: wrote xlsx",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return nil
}

func addIntCell(row *xlsx.Row, v int) {
	cell := row.AddCell()
	if v != 0 {
		cell.SetInt(v)
	}
}

func addRevenueCell(row *xlsx.Row, v float64) {
	cell := row.AddCell()
	if v != 0 {
		cell.SetFloat(v)
	}
}
