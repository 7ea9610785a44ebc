package service

import (
	"fmt"

	"crew-ledger/internal/apperror"
	"crew-ledger/internal/models"
	"crew-ledger/internal/notify"

	"github.com/sirupsen/logrus"
)

// IntegrityReport - результат проверки целостности
type IntegrityReport struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`

	OrphanedPayroll      int `json:"orphanedPayroll"`
	NegativeTransactions int `json:"negativeTransactions"`
	FutureAttendance     int `json:"futureAttendance"`
}

// CleanupResult - сколько записей удалено в каждой категории
type CleanupResult struct {
	IssuesFound         int `json:"issuesFound"`
	RemovedPayroll      int `json:"removedPayroll"`
	RemovedTransactions int `json:"removedTransactions"`
	RemovedAttendance   int `json:"removedAttendance"`
	FailedCategories    int `json:"failedCategories"`
}

// ValidateDataIntegrity проверяет сохраненные коллекции: ведомости без
// работника, операции с отрицательной суммой, посещаемость в будущем.
// Если данные не читаются, возвращает BUSINESS_LOGIC_ERROR.
func (s *DataService) ValidateDataIntegrity() (*IntegrityReport, error) {
	return apperror.Wrap(s.errs, "DataService.validateDataIntegrity", s.scan)()
}

func (s *DataService) scan() (*IntegrityReport, error) {
	workers, err := s.records.Workers()
	if err != nil {
		return nil, integrityError(err)
	}
	payroll, err := s.records.Payroll()
	if err != nil {
		return nil, integrityError(err)
	}
	transactions, err := s.records.Transactions()
	if err != nil {
		return nil, integrityError(err)
	}
	attendance, err := s.records.Attendance()
	if err != nil {
		return nil, integrityError(err)
	}

	known := workerIDs(workers)
	now := s.now()
	report := &IntegrityReport{Issues: []string{}}

	for _, p := range payroll {
		if !known[p.WorkerID] {
			report.OrphanedPayroll++
		}
	}
	for _, t := range transactions {
		if t.Amount.IsNegative() {
			report.NegativeTransactions++
		}
	}
	for _, a := range attendance {
		if a.Date.After(now) {
			report.FutureAttendance++
		}
	}

	if report.OrphanedPayroll > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("Found %d orphaned payroll records", report.OrphanedPayroll))
	}
	if report.NegativeTransactions > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("Found %d transactions with negative amounts", report.NegativeTransactions))
	}
	if report.FutureAttendance > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf("Found %d attendance records with future dates", report.FutureAttendance))
	}
	report.IsValid = len(report.Issues) == 0

	return report, nil
}

// CleanupData удаляет записи, найденные проверкой целостности.
// Каждая категория чинится отдельно: сбой в одной пишется в лог и не мешает остальным.
// Ошибки наружу не возвращаются.
func (s *DataService) CleanupData() *CleanupResult {
	result := &CleanupResult{}

	report, err := s.ValidateDataIntegrity()
	if err != nil {
		s.logger.WithError(err).Error("Data cleanup aborted: integrity scan failed")
		return result
	}
	if report.IsValid {
		return result
	}

	result.IssuesFound = len(report.Issues)
	s.notify(notify.LevelWarning, fmt.Sprintf("Found %d data integrity issues. Attempting to fix...", result.IssuesFound))

	steps := []struct {
		name    string
		run     func() (int, error)
		removed *int
	}{
		{"payroll", s.removeOrphanedPayroll, &result.RemovedPayroll},
		{"transactions", s.removeNegativeTransactions, &result.RemovedTransactions},
		{"attendance", s.removeFutureAttendance, &result.RemovedAttendance},
	}
	for _, step := range steps {
		removed, err := step.run()
		if err != nil {
			result.FailedCategories++
			s.logger.WithError(err).WithField("category", step.name).Error("Failed to clean up category")
			continue
		}
		*step.removed = removed
	}

	s.logger.WithFields(logrus.Fields{
		"payroll":      result.RemovedPayroll,
		"transactions": result.RemovedTransactions,
		"attendance":   result.RemovedAttendance,
	}).Info("Data cleanup finished")
	s.notify(notify.LevelSuccess, "Data cleanup completed")

	return result
}

func (s *DataService) removeOrphanedPayroll() (int, error) {
	workers, err := s.records.Workers()
	if err != nil {
		return 0, err
	}
	payroll, err := s.records.Payroll()
	if err != nil {
		return 0, err
	}

	known := workerIDs(workers)
	kept := make([]models.PayrollRecord, 0, len(payroll))
	for _, p := range payroll {
		if known[p.WorkerID] {
			kept = append(kept, p)
		}
	}
	removed := len(payroll) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.records.SavePayroll(kept)
}

func (s *DataService) removeNegativeTransactions() (int, error) {
	transactions, err := s.records.Transactions()
	if err != nil {
		return 0, err
	}

	kept := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !t.Amount.IsNegative() {
			kept = append(kept, t)
		}
	}
	removed := len(transactions) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.records.SaveTransactions(kept)
}

func (s *DataService) removeFutureAttendance() (int, error) {
	attendance, err := s.records.Attendance()
	if err != nil {
		return 0, err
	}

	now := s.now()
	kept := make([]models.AttendanceRecord, 0, len(attendance))
	for _, a := range attendance {
		if !a.Date.After(now) {
			kept = append(kept, a)
		}
	}
	removed := len(attendance) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.records.SaveAttendance(kept)
}

func (s *DataService) notify(level notify.Level, message string) {
	if s.notifier != nil {
		s.notifier.Notify(level, message)
	}
}

func workerIDs(workers []models.Worker) map[string]bool {
	ids := make(map[string]bool, len(workers))
	for _, w := range workers {
		ids[w.ID] = true
	}
	return ids
}

func integrityError(err error) error {
	return apperror.NewBusinessLogicError("Failed to validate data integrity").
		WithDetails(err.Error()).
		WithCause(err)
}
