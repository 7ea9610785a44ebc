package service

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"crew-ledger/internal/apperror"
	"crew-ledger/internal/models"
	"crew-ledger/internal/notify"
	"crew-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	MinWorkerNameLength    = 2
	MinDailyRate           = 1000
	MinDescriptionLength   = 5
	MinProjectNameLength   = 3
	MinMaterialNameLength  = 2
	MaxOvertimeHoursPerDay = 12
	LargeTransactionAmount = 5_000_000
)

// Рабочий день 8 часов, сверхурочные оплачиваются в полуторном размере
var (
	hoursPerDay        = decimal.NewFromInt(8)
	overtimeMultiplier = decimal.NewFromFloat(1.5)
)

// DataService проверяет и создает записи предметной области, считает зарплату
// и следит за целостностью сохраненных коллекций.
// Методы создания ничего не пишут в хранилище: сохраняет вызывающий.
type DataService struct {
	records  *repository.Collections
	errs     *apperror.Handler
	notifier notify.Notifier
	logger   *logrus.Logger
	now      func() time.Time
	newID    func() string
}

type Option func(*DataService)

func WithClock(now func() time.Time) Option {
	return func(s *DataService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *DataService) { s.newID = newID }
}

func WithLogger(logger *logrus.Logger) Option {
	return func(s *DataService) { s.logger = logger }
}

func NewDataService(
	records *repository.Collections,
	errs *apperror.Handler,
	notifier notify.Notifier,
	opts ...Option,
) *DataService {
	s := &DataService{
		records:  records,
		errs:     errs,
		notifier: notifier,
		logger:   logrus.StandardLogger(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type WorkerInput struct {
	Name      string
	DailyRate int64
	Position  string
	JoinDate  time.Time
	Skills    []string
	Phone     string
	Address   string
}

// CreateWorker проверяет данные и создает нового активного работника
func (s *DataService) CreateWorker(in WorkerInput) (*models.Worker, error) {
	return apperror.Wrap(s.errs, "DataService.createWorker", func() (*models.Worker, error) {
		name := strings.TrimSpace(in.Name)
		if utf8.RuneCountInString(name) < MinWorkerNameLength {
			return nil, apperror.NewValidationError("Name must be at least 2 characters")
		}
		if in.DailyRate < MinDailyRate {
			return nil, apperror.NewValidationError("Daily rate must be at least 1000")
		}
		if strings.TrimSpace(in.Position) == "" {
			return nil, apperror.NewValidationError("Position is required")
		}

		joinDate := in.JoinDate
		if joinDate.IsZero() {
			joinDate = startOfDay(s.now())
		}

		skills := make([]string, 0, len(in.Skills))
		for _, skill := range in.Skills {
			if skill = strings.TrimSpace(skill); skill != "" {
				skills = append(skills, skill)
			}
		}

		worker := &models.Worker{
			ID:        s.newID(),
			Name:      name,
			DailyRate: in.DailyRate,
			Position:  strings.TrimSpace(in.Position),
			JoinDate:  joinDate,
			IsActive:  true,
			Skills:    skills,
			Phone:     strings.TrimSpace(in.Phone),
			Address:   strings.TrimSpace(in.Address),
		}

		s.logger.WithFields(logrus.Fields{
			"id":         worker.ID,
			"daily_rate": worker.DailyRate,
		}).Info("Worker created")
		return worker, nil
	})()
}

type TransactionInput struct {
	Type        string
	Category    string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Status      string
	CreatedBy   string
}

// CreateTransaction создает операцию; о крупных суммах сообщает отдельно
func (s *DataService) CreateTransaction(in TransactionInput) (*models.Transaction, error) {
	return apperror.Wrap(s.errs, "DataService.createTransaction", func() (*models.Transaction, error) {
		if in.Type != models.TransactionIncome && in.Type != models.TransactionExpense {
			return nil, apperror.NewValidationError("Transaction type must be income or expense")
		}
		if !in.Amount.IsPositive() {
			return nil, apperror.NewValidationError("Amount must be greater than 0")
		}
		description := strings.TrimSpace(in.Description)
		if utf8.RuneCountInString(description) < MinDescriptionLength {
			return nil, apperror.NewValidationError("Description must be at least 5 characters")
		}
		if strings.TrimSpace(in.Category) == "" {
			return nil, apperror.NewValidationError("Category is required")
		}

		date := in.Date
		if date.IsZero() {
			date = s.now()
		}
		status := in.Status
		if status == "" {
			status = models.TransactionStatusCompleted
		}

		tx := &models.Transaction{
			ID:          s.newID(),
			Type:        in.Type,
			Category:    strings.TrimSpace(in.Category),
			Amount:      in.Amount,
			Description: description,
			Date:        date,
			Status:      status,
			CreatedBy:   in.CreatedBy,
		}

		if tx.Amount.GreaterThan(decimal.NewFromInt(LargeTransactionAmount)) {
			s.logger.WithField("amount", tx.Amount.String()).Warn("Large transaction")
			if s.notifier != nil {
				s.notifier.LargeTransaction(*tx)
			}
		}
		return tx, nil
	})()
}

type OvertimeInput struct {
	WorkerID    string
	WorkerName  string
	Date        time.Time
	Hours       float64
	Rate        decimal.Decimal
	Description string
}

// CreateOvertimeRecord создает запись о сверхурочных: total = hours * rate * 1.5
func (s *DataService) CreateOvertimeRecord(in OvertimeInput) (*models.OvertimeRecord, error) {
	return apperror.Wrap(s.errs, "DataService.createOvertimeRecord", func() (*models.OvertimeRecord, error) {
		if strings.TrimSpace(in.WorkerID) == "" {
			return nil, apperror.NewValidationError("Worker is required")
		}
		// NaN не проходит ни одно сравнение, поэтому проверка записана в положительной форме
		if !(in.Hours > 0) {
			return nil, apperror.NewValidationError("Overtime hours must be greater than 0")
		}
		if in.Hours > MaxOvertimeHoursPerDay {
			return nil, apperror.NewValidationError("Overtime hours cannot exceed 12 hours per day")
		}
		if !in.Rate.IsPositive() {
			return nil, apperror.NewValidationError("Overtime rate must be greater than 0")
		}

		date := in.Date
		if date.IsZero() {
			date = startOfDay(s.now())
		}

		return &models.OvertimeRecord{
			ID:          s.newID(),
			WorkerID:    in.WorkerID,
			WorkerName:  in.WorkerName,
			Date:        date,
			Hours:       in.Hours,
			Rate:        in.Rate,
			Total:       decimal.NewFromFloat(in.Hours).Mul(in.Rate).Mul(overtimeMultiplier),
			Description: in.Description,
			Status:      models.OvertimeStatusPending,
		}, nil
	})()
}

type ProjectInput struct {
	Name        string
	Client      string
	Location    string
	Description string
	Budget      decimal.Decimal
	StartDate   time.Time
	EndDate     *time.Time
}

func (s *DataService) CreateProject(in ProjectInput) (*models.Project, error) {
	return apperror.Wrap(s.errs, "DataService.createProject", func() (*models.Project, error) {
		name := strings.TrimSpace(in.Name)
		if utf8.RuneCountInString(name) < MinProjectNameLength {
			return nil, apperror.NewValidationError("Project name must be at least 3 characters")
		}
		if strings.TrimSpace(in.Client) == "" {
			return nil, apperror.NewValidationError("Client is required")
		}
		if !in.Budget.IsPositive() {
			return nil, apperror.NewValidationError("Budget must be greater than 0")
		}
		if in.StartDate.IsZero() {
			return nil, apperror.NewValidationError("Start date is required")
		}
		var endDate *time.Time
		if in.EndDate != nil && !in.EndDate.IsZero() {
			if !in.EndDate.After(in.StartDate) {
				return nil, apperror.NewValidationError("End date must be after start date")
			}
			end := *in.EndDate
			endDate = &end
		}

		return &models.Project{
			ID:          s.newID(),
			Name:        name,
			Client:      strings.TrimSpace(in.Client),
			Location:    in.Location,
			Description: in.Description,
			Budget:      in.Budget,
			Spent:       decimal.Zero,
			StartDate:   in.StartDate,
			EndDate:     endDate,
			Status:      models.ProjectStatusPlanning,
			Progress:    0,
			Images:      []string{},
			CreatedAt:   s.now(),
		}, nil
	})()
}

type MaterialInput struct {
	Name         string
	Category     string
	Unit         string
	PricePerUnit decimal.Decimal
	Stock        float64
	MinStock     float64
	Supplier     string
}

func (s *DataService) CreateMaterial(in MaterialInput) (*models.Material, error) {
	return apperror.Wrap(s.errs, "DataService.createMaterial", func() (*models.Material, error) {
		name := strings.TrimSpace(in.Name)
		if utf8.RuneCountInString(name) < MinMaterialNameLength {
			return nil, apperror.NewValidationError("Material name must be at least 2 characters")
		}
		if strings.TrimSpace(in.Unit) == "" {
			return nil, apperror.NewValidationError("Unit is required")
		}
		if !in.PricePerUnit.IsPositive() {
			return nil, apperror.NewValidationError("Price per unit must be greater than 0")
		}
		if !isFinite(in.Stock) {
			return nil, apperror.NewValidationError("Stock must be a valid number")
		}
		if !isFinite(in.MinStock) {
			return nil, apperror.NewValidationError("Minimum stock must be a valid number")
		}
		if in.Stock < 0 {
			return nil, apperror.NewValidationError("Stock cannot be negative")
		}
		if in.MinStock < 0 {
			return nil, apperror.NewValidationError("Minimum stock cannot be negative")
		}

		return &models.Material{
			ID:           s.newID(),
			Name:         name,
			Category:     in.Category,
			Unit:         strings.TrimSpace(in.Unit),
			PricePerUnit: in.PricePerUnit,
			Stock:        in.Stock,
			MinStock:     in.MinStock,
			Supplier:     in.Supplier,
			LastUpdated:  s.now(),
		}, nil
	})()
}

type AttendanceInput struct {
	WorkerID   string
	WorkerName string
	Date       time.Time
	CheckIn    time.Time
	CheckOut   *time.Time
	Status     string
	Notes      string
}

func (s *DataService) CreateAttendanceRecord(in AttendanceInput) (*models.AttendanceRecord, error) {
	return apperror.Wrap(s.errs, "DataService.createAttendanceRecord", func() (*models.AttendanceRecord, error) {
		now := s.now()

		if strings.TrimSpace(in.WorkerID) == "" {
			return nil, apperror.NewValidationError("Worker is required")
		}
		if in.Date.IsZero() {
			return nil, apperror.NewValidationError("Date is required")
		}
		if startOfDay(in.Date).After(startOfDay(now)) {
			return nil, apperror.NewValidationError("Attendance date cannot be in the future")
		}
		if in.CheckIn.IsZero() {
			return nil, apperror.NewValidationError("Check-in time is required")
		}
		if in.CheckIn.After(now) {
			return nil, apperror.NewValidationError("Check-in time cannot be in the future")
		}
		var checkOut *time.Time
		if in.CheckOut != nil && !in.CheckOut.IsZero() {
			if !in.CheckOut.After(in.CheckIn) {
				return nil, apperror.NewValidationError("Check-out time must be after check-in time")
			}
			out := *in.CheckOut
			checkOut = &out
		}
		status := in.Status
		if status == "" {
			status = models.AttendancePresent
		}
		if !models.IsValidAttendanceStatus(status) {
			return nil, apperror.NewValidationError(fmt.Sprintf("Unknown attendance status %q", status))
		}

		record := &models.AttendanceRecord{
			ID:         s.newID(),
			WorkerID:   in.WorkerID,
			WorkerName: in.WorkerName,
			Date:       startOfDay(in.Date),
			CheckIn:    in.CheckIn,
			CheckOut:   checkOut,
			Status:     status,
			Notes:      in.Notes,
		}
		record.HoursWorked = record.CalculateHoursWorked()
		return record, nil
	})()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
