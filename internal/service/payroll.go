package service

import (
	"math"
	"strings"
	"time"

	"crew-ledger/internal/apperror"
	"crew-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const periodLayout = "2006-01"

// CalculatePayroll считает зарплату работника за период:
// regularPay = dailyRate * daysWorked,
// overtime = dailyRate / 8 * overtimeHours * 1.5.
// Одна ведомость на работника за период - забота вызывающего
// (см. repository.Collections.FindPayroll).
func (s *DataService) CalculatePayroll(worker models.Worker, daysWorked int, overtimeHours float64, period string) (*models.PayrollRecord, error) {
	return apperror.Wrap(s.errs, "DataService.calculatePayroll", func() (*models.PayrollRecord, error) {
		if strings.TrimSpace(worker.ID) == "" {
			return nil, apperror.NewValidationError("Worker is required")
		}
		if worker.DailyRate <= 0 {
			return nil, apperror.NewValidationError("Worker daily rate must be greater than 0")
		}
		if daysWorked < 0 || daysWorked > 31 {
			return nil, apperror.NewValidationError("Days worked must be between 0 and 31")
		}
		if math.IsNaN(overtimeHours) || math.IsInf(overtimeHours, 0) {
			return nil, apperror.NewValidationError("Overtime hours must be a valid number")
		}
		if overtimeHours < 0 {
			return nil, apperror.NewValidationError("Overtime hours cannot be negative")
		}
		if _, err := time.Parse(periodLayout, period); err != nil {
			return nil, apperror.NewValidationError("Period must be in YYYY-MM format")
		}

		rate := decimal.NewFromInt(worker.DailyRate)
		regularPay := rate.Mul(decimal.NewFromInt(int64(daysWorked)))
		hourlyRate := rate.Div(hoursPerDay)
		overtimePay := hourlyRate.Mul(decimal.NewFromFloat(overtimeHours)).Mul(overtimeMultiplier)

		record := &models.PayrollRecord{
			ID:         s.newID(),
			WorkerID:   worker.ID,
			WorkerName: worker.Name,
			Period:     period,
			DaysWorked: daysWorked,
			DailyRate:  worker.DailyRate,
			RegularPay: regularPay,
			Overtime:   overtimePay,
			TotalPay:   regularPay.Add(overtimePay),
			Status:     models.PayrollStatusPending,
			CreatedAt:  s.now(),
		}

		s.logger.WithFields(logrus.Fields{
			"worker_id": worker.ID,
			"period":    period,
			"total_pay": record.TotalPay.String(),
		}).Info("Payroll calculated")
		return record, nil
	})()
}
