package service

import (
	"math"
	"strings"
	"testing"
	"time"

	"crew-ledger/internal/apperror"
	"crew-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWorker(t *testing.T) {
	f := newFixture(t)

	w, err := f.svc.CreateWorker(WorkerInput{Name: "John Doe", DailyRate: 150000, Position: "Mason"})

	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "John Doe", w.Name)
	assert.True(t, w.IsActive)
	assert.NotNil(t, w.Skills)
	assert.Empty(t, w.Skills)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), w.JoinDate)
	assert.Empty(t, f.errs.Errors())

	stored, err := f.records.Workers()
	require.NoError(t, err)
	assert.Empty(t, stored, "creation does not persist")
}

func TestCreateWorker_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      WorkerInput
		message string
	}{
		{"short name", WorkerInput{Name: "J", DailyRate: 150000, Position: "Mason"}, "Name must be at least 2 characters"},
		{"blank name", WorkerInput{Name: "   ", DailyRate: 150000, Position: "Mason"}, "Name must be at least 2 characters"},
		{"low rate", WorkerInput{Name: "John", DailyRate: 999, Position: "Mason"}, "Daily rate must be at least 1000"},
		{"first failure wins", WorkerInput{Name: "J", DailyRate: 0}, "Name must be at least 2 characters"},
		{"no position", WorkerInput{Name: "John", DailyRate: 1000}, "Position is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			w, err := f.svc.CreateWorker(tc.in)

			assert.Nil(t, w)
			requireValidation(t, err, tc.message)
			logged := f.errs.Errors()
			require.Len(t, logged, 1)
			assert.Equal(t, "DataService.createWorker", logged[0].Context)
			require.Len(t, f.notifier.notices, 1)
			assert.Equal(t, tc.message, f.notifier.notices[0].message)
		})
	}
}

func TestCreateWorker_DoesNotMutateInput(t *testing.T) {
	f := newFixture(t)
	skills := []string{" welding ", "", "masonry"}
	in := WorkerInput{Name: "Ana", DailyRate: 1000, Position: "Welder", Skills: skills}

	w, err := f.svc.CreateWorker(in)

	require.NoError(t, err)
	assert.Equal(t, []string{"welding", "masonry"}, w.Skills)
	assert.Equal(t, []string{" welding ", "", "masonry"}, in.Skills)
	w.Skills[0] = "changed"
	assert.Equal(t, " welding ", skills[0])
}

func TestCreateTransaction(t *testing.T) {
	f := newFixture(t)

	tx, err := f.svc.CreateTransaction(TransactionInput{
		Type:        models.TransactionExpense,
		Category:    "materials",
		Amount:      decimal.NewFromInt(250000),
		Description: "Cement bags",
		CreatedBy:   "admin",
	})

	require.NoError(t, err)
	assert.Equal(t, "id-1", tx.ID)
	assert.Equal(t, models.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, fixedNow, tx.Date)
	assert.Empty(t, f.notifier.large)
}

func TestCreateTransaction_Validation(t *testing.T) {
	valid := func() TransactionInput {
		return TransactionInput{Type: models.TransactionIncome, Category: "contract", Amount: decimal.NewFromInt(10), Description: "Advance"}
	}
	tests := []struct {
		name    string
		mutate  func(*TransactionInput)
		message string
	}{
		{"zero amount", func(in *TransactionInput) { in.Amount = decimal.Zero }, "Amount must be greater than 0"},
		{"negative amount", func(in *TransactionInput) { in.Amount = decimal.NewFromInt(-5) }, "Amount must be greater than 0"},
		{"short description", func(in *TransactionInput) { in.Description = "abcd" }, "Description must be at least 5 characters"},
		{"bad type", func(in *TransactionInput) { in.Type = "transfer" }, "Transaction type must be income or expense"},
		{"no category", func(in *TransactionInput) { in.Category = "" }, "Category is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in := valid()
			tc.mutate(&in)

			_, err := f.svc.CreateTransaction(in)

			requireValidation(t, err, tc.message)
			assert.Empty(t, f.notifier.large)
		})
	}
}

func TestCreateTransaction_LargeAmountAlert(t *testing.T) {
	tests := []struct {
		amount int64
		alerts int
	}{
		{4_999_999, 0},
		{5_000_000, 0},
		{5_000_001, 1},
		{12_000_000, 1},
	}

	for _, tc := range tests {
		f := newFixture(t)

		_, err := f.svc.CreateTransaction(TransactionInput{
			Type:        models.TransactionIncome,
			Category:    "contract",
			Amount:      decimal.NewFromInt(tc.amount),
			Description: "Stage payment",
		})

		require.NoError(t, err)
		assert.Len(t, f.notifier.large, tc.alerts, "amount %d", tc.amount)
	}
}

func TestCreateOvertimeRecord(t *testing.T) {
	f := newFixture(t)

	rec, err := f.svc.CreateOvertimeRecord(OvertimeInput{
		WorkerID: "w1",
		Hours:    2.5,
		Rate:     decimal.NewFromInt(18750),
	})

	require.NoError(t, err)
	assert.True(t, rec.Total.Equal(decimal.NewFromFloat(70312.5)), "got %s", rec.Total)
	assert.Equal(t, models.OvertimeStatusPending, rec.Status)
}

func TestCreateOvertimeRecord_TotalIsExact(t *testing.T) {
	f := newFixture(t)
	for _, hours := range []float64{0.5, 1, 3.25, 7.75, 12} {
		for _, rate := range []int64{1, 1250, 18750, 33333} {
			rec, err := f.svc.CreateOvertimeRecord(OvertimeInput{WorkerID: "w1", Hours: hours, Rate: decimal.NewFromInt(rate)})
			require.NoError(t, err)

			want := decimal.NewFromFloat(hours).Mul(decimal.NewFromInt(rate)).Mul(decimal.NewFromFloat(1.5))
			assert.True(t, rec.Total.Equal(want), "hours=%v rate=%d", hours, rate)
		}
	}
}

func TestCreateOvertimeRecord_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      OvertimeInput
		message string
	}{
		{"zero hours", OvertimeInput{WorkerID: "w1", Hours: 0, Rate: decimal.NewFromInt(10)}, "Overtime hours must be greater than 0"},
		{"too many hours", OvertimeInput{WorkerID: "w1", Hours: 12.5, Rate: decimal.NewFromInt(10)}, "Overtime hours cannot exceed 12 hours per day"},
		{"zero rate", OvertimeInput{WorkerID: "w1", Hours: 2, Rate: decimal.Zero}, "Overtime rate must be greater than 0"},
		{"no worker", OvertimeInput{Hours: 2, Rate: decimal.NewFromInt(10)}, "Worker is required"},
		{"NaN hours", OvertimeInput{WorkerID: "w1", Hours: math.NaN(), Rate: decimal.NewFromInt(10)}, "Overtime hours must be greater than 0"},
		{"+Inf hours", OvertimeInput{WorkerID: "w1", Hours: math.Inf(1), Rate: decimal.NewFromInt(10)}, "Overtime hours cannot exceed 12 hours per day"},
		{"-Inf hours", OvertimeInput{WorkerID: "w1", Hours: math.Inf(-1), Rate: decimal.NewFromInt(10)}, "Overtime hours must be greater than 0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.CreateOvertimeRecord(tc.in)
			requireValidation(t, err, tc.message)
		})
	}
}

func TestCreateProject(t *testing.T) {
	f := newFixture(t)
	end := fixedNow.AddDate(0, 3, 0)

	p, err := f.svc.CreateProject(ProjectInput{
		Name:      "Warehouse roof",
		Client:    "PT Maju",
		Budget:    decimal.NewFromInt(90_000_000),
		StartDate: fixedNow,
		EndDate:   &end,
	})

	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusPlanning, p.Status)
	assert.True(t, p.Spent.IsZero())
	assert.NotNil(t, p.Images)
	assert.True(t, p.Remaining().Equal(decimal.NewFromInt(90_000_000)))

	_, err = f.svc.CreateProject(ProjectInput{
		Name:      "Warehouse roof",
		Client:    "PT Maju",
		Budget:    decimal.NewFromInt(1),
		StartDate: fixedNow,
		EndDate:   &fixedNow,
	})
	requireValidation(t, err, "End date must be after start date")

	_, err = f.svc.CreateProject(ProjectInput{Name: "Roof", Client: "PT Maju", StartDate: fixedNow})
	requireValidation(t, err, "Budget must be greater than 0")
}

func TestCreateMaterial(t *testing.T) {
	f := newFixture(t)

	m, err := f.svc.CreateMaterial(MaterialInput{Name: "Cement", Unit: "bag", PricePerUnit: decimal.NewFromInt(65000), Stock: 10, MinStock: 20})
	require.NoError(t, err)
	assert.True(t, m.IsLowStock())
	assert.Equal(t, fixedNow, m.LastUpdated)

	_, err = f.svc.CreateMaterial(MaterialInput{Name: "Sand", Unit: "m3", PricePerUnit: decimal.NewFromInt(1), Stock: -1})
	requireValidation(t, err, "Stock cannot be negative")

	_, err = f.svc.CreateMaterial(MaterialInput{Name: "Sand", PricePerUnit: decimal.NewFromInt(1)})
	requireValidation(t, err, "Unit is required")
}

func TestCreateMaterial_RejectsNonFiniteStock(t *testing.T) {
	price := decimal.NewFromInt(1)
	tests := []struct {
		name    string
		in      MaterialInput
		message string
	}{
		{"NaN stock", MaterialInput{Name: "Sand", Unit: "m3", PricePerUnit: price, Stock: math.NaN()}, "Stock must be a valid number"},
		{"+Inf stock", MaterialInput{Name: "Sand", Unit: "m3", PricePerUnit: price, Stock: math.Inf(1)}, "Stock must be a valid number"},
		{"NaN min stock", MaterialInput{Name: "Sand", Unit: "m3", PricePerUnit: price, MinStock: math.NaN()}, "Minimum stock must be a valid number"},
		{"-Inf min stock", MaterialInput{Name: "Sand", Unit: "m3", PricePerUnit: price, MinStock: math.Inf(-1)}, "Minimum stock must be a valid number"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			m, err := f.svc.CreateMaterial(tc.in)
			requireValidation(t, err, tc.message)
			assert.Nil(t, m)

			materials, err := f.records.Materials()
			require.NoError(t, err)
			assert.Empty(t, materials)
		})
	}
}

func TestCreateAttendanceRecord(t *testing.T) {
	f := newFixture(t)
	checkIn := fixedNow.Add(-6 * time.Hour)
	checkOut := fixedNow.Add(-time.Hour)

	rec, err := f.svc.CreateAttendanceRecord(AttendanceInput{WorkerID: "w1", Date: fixedNow, CheckIn: checkIn, CheckOut: &checkOut})

	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, rec.Status)
	assert.Equal(t, 5.0, rec.HoursWorked)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), rec.Date)
}

func TestCreateAttendanceRecord_Validation(t *testing.T) {
	checkIn := fixedNow.Add(-2 * time.Hour)
	early := checkIn.Add(-time.Minute)
	tests := []struct {
		name    string
		in      AttendanceInput
		message string
	}{
		{"future date", AttendanceInput{WorkerID: "w1", Date: fixedNow.AddDate(0, 0, 1), CheckIn: checkIn}, "Attendance date cannot be in the future"},
		{"future check-in", AttendanceInput{WorkerID: "w1", Date: fixedNow, CheckIn: fixedNow.Add(time.Minute)}, "Check-in time cannot be in the future"},
		{"check-out before check-in", AttendanceInput{WorkerID: "w1", Date: fixedNow, CheckIn: checkIn, CheckOut: &early}, "Check-out time must be after check-in time"},
		{"bad status", AttendanceInput{WorkerID: "w1", Date: fixedNow, CheckIn: checkIn, Status: "vacation"}, `Unknown attendance status "vacation"`},
		{"no worker", AttendanceInput{Date: fixedNow, CheckIn: checkIn}, "Worker is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.CreateAttendanceRecord(tc.in)
			requireValidation(t, err, tc.message)
			assert.True(t, strings.HasPrefix(f.errs.Errors()[0].Context, "DataService."))
		})
	}
}

func TestCreateMethods_LogFailuresWithLabels(t *testing.T) {
	f := newFixture(t)

	_, _ = f.svc.CreateWorker(WorkerInput{})
	_, _ = f.svc.CreateTransaction(TransactionInput{})
	_, _ = f.svc.CreateOvertimeRecord(OvertimeInput{})
	_, _ = f.svc.CreateProject(ProjectInput{})
	_, _ = f.svc.CreateMaterial(MaterialInput{})
	_, _ = f.svc.CreateAttendanceRecord(AttendanceInput{})

	var labels []string
	for _, e := range f.errs.Errors() {
		assert.Equal(t, apperror.CodeValidation, e.Code)
		labels = append(labels, e.Context)
	}
	assert.Equal(t, []string{
		"DataService.createWorker",
		"DataService.createTransaction",
		"DataService.createOvertimeRecord",
		"DataService.createProject",
		"DataService.createMaterial",
		"DataService.createAttendanceRecord",
	}, labels)
}
