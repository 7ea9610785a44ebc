package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"crew-ledger/internal/storage"
)

// Ключи коллекций в локальном хранилище
const (
	KeyWorkers      = "workers"
	KeyPayroll      = "payrollRecords"
	KeyTransactions = "transactions"
	KeyAttendance   = "attendance"
	KeyOvertime     = "overtime"
	KeyProjects     = "projects"
	KeyMaterials    = "materials"
)

var (
	ErrCorruptCollection = errors.New("collection data is corrupted")
	ErrNotFound          = errors.New("record not found")
)

// Collections хранит каждую коллекцию записей как JSON-массив под своим ключом.
// Отсутствующий ключ читается как пустая коллекция.
type Collections struct {
	store storage.Storage
}

func NewCollections(store storage.Storage) *Collections {
	return &Collections{store: store}
}

func load[T any](s storage.Storage, key string) ([]T, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	items := []T{}
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptCollection, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func save[T any](s storage.Storage, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func appendTo[T any](s storage.Storage, key string, item T) error {
	items, err := load[T](s, key)
	if err != nil {
		return err
	}
	return save(s, key, append(items, item))
}
