// Package notify доставляет сообщения пользователю: в лог и в чат администратора.
package notify

import "crew-ledger/internal/models"

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier принимает уведомления ядра; отображение не его забота
type Notifier interface {
	Notify(level Level, message string)
	LargeTransaction(tx models.Transaction)
}

// Fanout рассылает уведомление всем получателям по очереди
type Fanout []Notifier

func (f Fanout) Notify(level Level, message string) {
	for _, n := range f {
		n.Notify(level, message)
	}
}

func (f Fanout) LargeTransaction(tx models.Transaction) {
	for _, n := range f {
		n.LargeTransaction(tx)
	}
}
