// Package export выгружает ведомости в Excel.
package export

import (
	"bytes"
	"fmt"
	"sort"

	"crew-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var payrollHeader = []any{"Worker", "Worker ID", "Days worked", "Daily rate", "Regular pay", "Overtime", "Total pay", "Status"}

// SheetName возвращает имя листа для периода
func SheetName(period string) string {
	return "Payroll " + period
}

// PayrollWorkbook строит xlsx с ведомостями за период и строкой итогов
func PayrollWorkbook(period string, records []models.PayrollRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(period)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &payrollHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	sorted := make([]models.PayrollRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].WorkerName < sorted[j].WorkerName })

	regular, overtime, total := decimal.Zero, decimal.Zero, decimal.Zero
	for i, r := range sorted {
		row := []any{
			r.WorkerName,
			r.WorkerID,
			r.DaysWorked,
			r.DailyRate,
			r.RegularPay.InexactFloat64(),
			r.Overtime.InexactFloat64(),
			r.TotalPay.InexactFloat64(),
			r.Status,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
		regular = regular.Add(r.RegularPay)
		overtime = overtime.Add(r.Overtime)
		total = total.Add(r.TotalPay)
	}

	totalsRow := len(sorted) + 2
	totals := []any{"Total", "", "", "", regular.InexactFloat64(), overtime.InexactFloat64(), total.InexactFloat64(), ""}
	first, _ := excelize.CoordinatesToCellName(1, totalsRow)
	last, _ := excelize.CoordinatesToCellName(len(payrollHeader), totalsRow)
	if err := f.SetSheetRow(sheet, first, &totals); err != nil {
		return nil, fmt.Errorf("write totals: %w", err)
	}

	if err := f.SetCellStyle(sheet, "A1", "H1", bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, first, last, bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "B", 24); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}
