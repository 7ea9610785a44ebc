package apperror

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"crew-ledger/internal/notify"

	"github.com/sirupsen/logrus"
)

// StorageKey - ключ, под которым журнал ошибок хранится в локальном хранилище
const StorageKey = "app_errors"

const maxStoredErrors = 100

// Persister - хранилище, куда журнал ошибок копируется между запусками
type Persister interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Reporter - все, что нужно границе ошибок от журнала
type Reporter interface {
	HandleError(err error, context string) *AppError
}

// Handler ведет журнал ошибок приложения и сообщает о них пользователю.
// Сбои записи журнала только пишутся в лог: обработка ошибок не должна падать.
type Handler struct {
	mu       sync.Mutex
	errors   []AppError
	store    Persister
	notifier notify.Notifier
	logger   *logrus.Logger
	now      func() time.Time
}

func NewHandler(store Persister, notifier notify.Notifier, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleError приводит err к AppError, добавляет в журнал и уведомляет пользователя
func (h *Handler) HandleError(err error, context string) *AppError {
	appErr := h.normalize(err)
	appErr.Context = context

	h.logger.WithFields(logrus.Fields{
		"context": context,
		"code":    appErr.Code,
	}).WithError(err).Error("Application error")

	h.mu.Lock()
	h.errors = append(h.errors, *appErr)
	if len(h.errors) > maxStoredErrors {
		h.errors = h.errors[len(h.errors)-maxStoredErrors:]
	}
	h.persist(*appErr)
	h.mu.Unlock()

	h.notify(appErr)
	return appErr
}

func (h *Handler) normalize(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr != nil {
		cp := *appErr
		if cp.Code == "" {
			cp.Code = CodeUnknown
		}
		if cp.Message == "" {
			cp.Message = defaultMessage
		}
		if cp.Timestamp.IsZero() {
			cp.Timestamp = h.now()
		}
		return &cp
	}

	message := defaultMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &AppError{Code: CodeUnknown, Message: message, Timestamp: h.now()}
}

// persist дописывает ошибку в сохраненный журнал, оставляя последние 100 записей
func (h *Handler) persist(appErr AppError) {
	if h.store == nil {
		return
	}

	var stored []AppError
	raw, ok, err := h.store.Get(StorageKey)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to read stored error log")
		return
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			h.logger.WithError(err).Warn("Stored error log is corrupted, starting a new one")
			stored = nil
		}
	}

	stored = append(stored, appErr)
	if len(stored) > maxStoredErrors {
		stored = stored[len(stored)-maxStoredErrors:]
	}

	data, err := json.Marshal(stored)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to encode error log")
		return
	}
	if err := h.store.Set(StorageKey, string(data)); err != nil {
		h.logger.WithError(err).Warn("Failed to save error log")
	}
}

func (h *Handler) notify(appErr *AppError) {
	if h.notifier == nil {
		return
	}

	switch appErr.Code {
	case CodeValidation:
		h.notifier.Notify(notify.LevelWarning, appErr.Message)
	case CodeNetwork:
		h.notifier.Notify(notify.LevelError, "Network error. Please check your connection.")
	case CodeStorage:
		h.notifier.Notify(notify.LevelError, "Storage error. Data may not be saved.")
	default:
		h.notifier.Notify(notify.LevelError, "Something went wrong. Please try again.")
	}
}

// Errors возвращает копию журнала в порядке возникновения.
// В памяти, как и в хранилище, держатся только последние 100 ошибок.
func (h *Handler) Errors() []AppError {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]AppError, len(h.errors))
	copy(out, h.errors)
	return out
}

// ClearErrors очищает журнал в памяти и в хранилище
func (h *Handler) ClearErrors() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.errors = nil
	if h.store == nil {
		return
	}
	if err := h.store.Remove(StorageKey); err != nil {
		h.logger.WithError(err).Warn("Failed to clear stored error log")
	}
}
