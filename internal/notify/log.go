package notify

import (
	"crew-ledger/internal/models"

	"github.com/sirupsen/logrus"
)

type LogNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(level Level, message string) {
	entry := n.logger.WithField("level_hint", string(level))
	switch level {
	case LevelError:
		entry.Error(message)
	case LevelWarning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

func (n *LogNotifier) LargeTransaction(tx models.Transaction) {
	n.logger.WithFields(logrus.Fields{
		"id":       tx.ID,
		"type":     tx.Type,
		"category": tx.Category,
		"amount":   tx.Amount.String(),
	}).Warn("Large transaction recorded")
}
