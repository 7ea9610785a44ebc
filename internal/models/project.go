package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in-progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on-hold"
)

type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Client      string          `json:"client"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	Status      string          `json:"status"`
	Progress    int             `json:"progress"`
	Images      []string        `json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Remaining возвращает остаток бюджета
func (p *Project) Remaining() decimal.Decimal {
	return p.Budget.Sub(p.Spent)
}
