package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"

	TransactionStatusCompleted = "completed"
	TransactionStatusPending   = "pending"
)

type Transaction struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"` // income, expense
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
	CreatedBy   string          `json:"createdBy"`
}

// IsIncome проверяет, является ли операция поступлением
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionIncome
}
