package export

import (
	"testing"

	"crew-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPayrollWorkbook(t *testing.T) {
	records := []models.PayrollRecord{
		{WorkerID: "w2", WorkerName: "Zed", DaysWorked: 20, DailyRate: 100000,
			RegularPay: decimal.NewFromInt(2_000_000), Overtime: decimal.Zero, TotalPay: decimal.NewFromInt(2_000_000), Status: models.PayrollStatusPaid},
		{WorkerID: "w1", WorkerName: "John Doe", DaysWorked: 25, DailyRate: 150000,
			RegularPay: decimal.NewFromInt(3_750_000), Overtime: decimal.NewFromInt(225_000), TotalPay: decimal.NewFromInt(3_975_000), Status: models.PayrollStatusPending},
	}

	buf, err := PayrollWorkbook("2026-10", records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName("2026-10"))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, "Worker", rows[0][0])
	require.Equal(t, "John Doe", rows[1][0])
	require.Equal(t, "3975000", rows[1][6])
	require.Equal(t, "Zed", rows[2][0])
	require.Equal(t, "Total", rows[3][0])
	require.Equal(t, "5975000", rows[3][6])

	require.Equal(t, "Zed", records[0].WorkerName, "input order is untouched")
}

func TestPayrollWorkbook_Empty(t *testing.T) {
	buf, err := PayrollWorkbook("2026-01", nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName("2026-01"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Total", rows[1][0])
	require.Equal(t, "0", rows[1][6])
}
