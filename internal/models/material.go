package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Material struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Stock        float64         `json:"stock"`
	MinStock     float64         `json:"minStock"`
	Supplier     string          `json:"supplier,omitempty"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}

// IsLowStock проверяет, опустился ли остаток до минимального
func (m *Material) IsLowStock() bool {
	return m.Stock <= m.MinStock
}
