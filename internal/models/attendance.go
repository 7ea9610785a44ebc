package models

import (
	"time"
)

// Статусы посещаемости
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceHalfDay = "half-day"
)

type AttendanceRecord struct {
	ID          string     `json:"id"`
	WorkerID    string     `json:"workerId"`
	WorkerName  string     `json:"workerName,omitempty"`
	Date        time.Time  `json:"date"`
	CheckIn     time.Time  `json:"checkIn"`
	CheckOut    *time.Time `json:"checkOut,omitempty"`
	HoursWorked float64    `json:"hoursWorked"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
}

// CalculateHoursWorked вычисляет отработанные часы
func (a *AttendanceRecord) CalculateHoursWorked() float64 {
	if a.CheckOut == nil || a.CheckOut.IsZero() {
		return 0
	}
	return a.CheckOut.Sub(a.CheckIn).Hours()
}

// IsValidAttendanceStatus проверяет статус посещаемости
func IsValidAttendanceStatus(status string) bool {
	switch status {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceHalfDay:
		return true
	}
	return false
}
