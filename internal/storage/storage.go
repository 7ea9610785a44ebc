// Package storage - локальное хранилище "ключ - строка" и его защищенная обертка.
package storage

// Storage - постоянное хранилище строк по ключу. Отсутствие ключа не ошибка.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}
