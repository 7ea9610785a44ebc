package storage

import (
	"errors"
	"fmt"

	"crew-ledger/internal/apperror"
)

// SafeStorage никогда не возвращает ошибок и не паникует: любой сбой
// хранилища попадает в журнал как STORAGE_ERROR, а вызов возвращает
// нейтральное значение (пустую строку и false при чтении, false при записи).
type SafeStorage struct {
	backend Storage
	errs    *apperror.Handler
}

func NewSafeStorage(backend Storage, errs *apperror.Handler) *SafeStorage {
	return &SafeStorage{backend: backend, errs: errs}
}

func (s *SafeStorage) Get(key string) (string, bool) {
	value, ok, err := s.get(key)
	if err != nil {
		return "", false
	}
	return value, ok
}

// get сообщает о сбое чтения в журнал и возвращает ErrUnavailable
func (s *SafeStorage) get(key string) (value string, ok bool, err error) {
	defer s.recoverAs("read", key, func() { value, ok, err = "", false, ErrUnavailable })

	v, found, backendErr := s.backend.Get(key)
	if backendErr != nil {
		s.report("read", key, backendErr)
		return "", false, ErrUnavailable
	}
	return v, found, nil
}

func (s *SafeStorage) Set(key, value string) (ok bool) {
	defer s.recoverAs("write", key, func() { ok = false })

	if err := s.backend.Set(key, value); err != nil {
		s.report("write", key, err)
		return false
	}
	return true
}

func (s *SafeStorage) Remove(key string) (ok bool) {
	defer s.recoverAs("remove", key, func() { ok = false })

	if err := s.backend.Remove(key); err != nil {
		s.report("remove", key, err)
		return false
	}
	return true
}

func (s *SafeStorage) report(op, key string, err error) {
	appErr := apperror.NewStorageError(fmt.Sprintf("Failed to %s %q: %v", op, key, err)).
		WithDetails(map[string]string{"key": key, "operation": op})
	s.errs.HandleError(appErr, "SafeStorage."+op)
}

func (s *SafeStorage) recoverAs(op, key string, reset func()) {
	if p := recover(); p != nil {
		s.report(op, key, fmt.Errorf("panic: %v", p))
		reset()
	}
}

// ErrUnavailable возвращает AsStorage при сбое хранилища; сам сбой уже в журнале
var ErrUnavailable = errors.New("storage unavailable")

// AsStorage отдает SafeStorage как Storage. Любой сбой возвращается как
// ErrUnavailable, чтобы чтение-изменение-запись не перезаписало коллекцию пустой.
func (s *SafeStorage) AsStorage() Storage {
	return guarded{s}
}

type guarded struct {
	safe *SafeStorage
}

func (g guarded) Get(key string) (string, bool, error) {
	return g.safe.get(key)
}

func (g guarded) Set(key, value string) error {
	if !g.safe.Set(key, value) {
		return ErrUnavailable
	}
	return nil
}

func (g guarded) Remove(key string) error {
	if !g.safe.Remove(key) {
		return ErrUnavailable
	}
	return nil
}
