package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the Excel bill of materials.
const (
	SheetQuote   = "Quote"
	SheetSummary = "Summary"
)

// ExportQuoteXLSX writes the quote as an Excel workbook. The Quote sheet
// lists every priced line followed by a SUM total row; the Summary sheet
// holds the container, insulation and per-family totals.
func ExportQuoteXLSX(path string, q Quote) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetQuote); err != nil {
		return fmt.Errorf("failed to name quote sheet: %w", err)
	}
	if err := writeQuoteSheet(f, q); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, q); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeQuoteSheet(f *excelize.File, q Quote) error {
	rows := [][]interface{}{{"#", "Kind", "Name", "Price (" + q.Currency + ")"}}
	for i, l := range q.Lines {
		rows = append(rows, []interface{}{i + 1, l.Kind, l.Name, l.Price})
	}
	if err := setRows(f, SheetQuote, rows); err != nil {
		return err
	}

	totalRow := len(rows) + 1
	label, _ := excelize.CoordinatesToCellName(3, totalRow)
	total, _ := excelize.CoordinatesToCellName(4, totalRow)
	if err := f.SetCellValue(SheetQuote, label, "Total"); err != nil {
		return err
	}
	formula := "0"
	if len(q.Lines) > 0 {
		formula = fmt.Sprintf("SUM(D2:D%d)", totalRow-1)
	}
	if err := f.SetCellFormula(SheetQuote, total, formula); err != nil {
		return fmt.Errorf("failed to set total formula: %w", err)
	}

	if err := f.SetColWidth(SheetQuote, "C", "C", 32); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetQuote, 1, 1, bold); err != nil {
		return err
	}
	return f.SetRowStyle(SheetQuote, totalRow, totalRow, bold)
}

func writeSummarySheet(f *excelize.File, q Quote) error {
	rows := [][]interface{}{
		{"Container", q.Container.SizeID},
		{"Length (units)", q.Container.Length},
		{"Width (units)", q.Container.Width},
		{"Height (units)", q.Container.Height},
		{"Insulation", q.Insulation.Label},
		{"Insulation thickness", q.Insulation.Thickness},
		{"Walls", q.Totals.Walls},
		{"Windows", q.Totals.Windows},
		{"Items", q.Totals.Items},
		{"Total", q.Totals.Total},
		{"Currency", q.Currency},
	}
	if err := setRows(f, SheetSummary, rows); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "A", 24)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
