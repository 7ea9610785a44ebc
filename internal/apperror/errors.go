// Package apperror describes typed application errors, the error log that
// collects them and the boundary that reports failures of wrapped operations.
package apperror

import (
	"errors"
	"time"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeNetwork       Code = "NETWORK_ERROR"
	CodeStorage       Code = "STORAGE_ERROR"
	CodeBusinessLogic Code = "BUSINESS_LOGIC_ERROR"
	CodeUnknown       Code = "UNKNOWN_ERROR"
)

const defaultMessage = "An unexpected error occurred"

// AppError - ошибка приложения с типом и временем возникновения
type AppError struct {
	Code      Code      `json:"code"`
	Message   string    `json:"message"`
	Details   any       `json:"details,omitempty"`
	Context   string    `json:"context,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	cause error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause возвращает копию ошибки с исходной причиной для errors.Is/As
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.cause = err
	return &cp
}

// WithDetails возвращает копию ошибки с дополнительными данными
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func newError(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, Timestamp: time.Now()}
}

func NewValidationError(message string) *AppError {
	return newError(CodeValidation, message)
}

func NewNetworkError(message string) *AppError {
	return newError(CodeNetwork, message)
}

func NewStorageError(message string) *AppError {
	return newError(CodeStorage, message)
}

func NewBusinessLogicError(message string) *AppError {
	return newError(CodeBusinessLogic, message)
}

// CodeOf возвращает тип ошибки; для обычных ошибок - CodeUnknown
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}
	return CodeUnknown
}

// IsCode проверяет, что в цепочке err есть AppError с данным кодом
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
