package models

import (
	"time"
)

type Worker struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	DailyRate  int64      `json:"dailyRate"`
	Position   string     `json:"position"`
	JoinDate   time.Time  `json:"joinDate"`
	IsActive   bool       `json:"isActive"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	Skills     []string   `json:"skills"`
	Phone      string     `json:"phone,omitempty"`
	Address    string     `json:"address,omitempty"`
}

// IsArchived проверяет, переведен ли работник в архив
func (w *Worker) IsArchived() bool {
	return w.ArchivedAt != nil && !w.ArchivedAt.IsZero()
}

// Archive архивирует работника, история выплат при этом сохраняется
func (w *Worker) Archive(at time.Time) {
	w.IsActive = false
	w.ArchivedAt = &at
}

// Restore возвращает работника из архива
func (w *Worker) Restore() {
	w.IsActive = true
	w.ArchivedAt = nil
}
