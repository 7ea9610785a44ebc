package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OvertimeStatusPending  = "pending"
	OvertimeStatusApproved = "approved"
	OvertimeStatusRejected = "rejected"
)

type OvertimeRecord struct {
	ID          string          `json:"id"`
	WorkerID    string          `json:"workerId"`
	WorkerName  string          `json:"workerName"`
	Date        time.Time       `json:"date"`
	Hours       float64         `json:"hours"`
	Rate        decimal.Decimal `json:"rate"`  // за час
	Total       decimal.Decimal `json:"total"` // hours * rate * 1.5
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
}
