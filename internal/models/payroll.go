package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы ведомостей
const (
	PayrollStatusPending   = "pending"
	PayrollStatusPaid      = "paid"
	PayrollStatusCancelled = "cancelled"
)

// PayrollRecord хранит расчет зарплаты работника за месяц.
// WorkerID не является внешним ключом: работник может быть удален,
// такие записи находит и чистит проверка целостности.
type PayrollRecord struct {
	ID         string          `json:"id"`
	WorkerID   string          `json:"workerId"`
	WorkerName string          `json:"workerName"`
	Period     string          `json:"period"` // YYYY-MM
	DaysWorked int             `json:"daysWorked"`
	DailyRate  int64           `json:"dailyRate"`
	RegularPay decimal.Decimal `json:"regularPay"`
	Overtime   decimal.Decimal `json:"overtime"`
	TotalPay   decimal.Decimal `json:"totalPay"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	PaidAt     *time.Time      `json:"paidAt,omitempty"`
}

// IsBalanced проверяет инвариант totalPay == regularPay + overtime
func (p *PayrollRecord) IsBalanced() bool {
	return p.TotalPay.Equal(p.RegularPay.Add(p.Overtime))
}

// MarkPaid отмечает ведомость как выплаченную
func (p *PayrollRecord) MarkPaid(at time.Time) {
	p.Status = PayrollStatusPaid
	p.PaidAt = &at
}
