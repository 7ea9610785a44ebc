package notify

import (
	"fmt"

	"crew-ledger/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender - часть tgbotapi.BotAPI, нужная для отправки
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier пишет уведомления в чат администратора
type TelegramNotifier struct {
	bot    Sender
	chatID int64
	logger *logrus.Logger
}

func NewTelegramNotifier(bot Sender, chatID int64, logger *logrus.Logger) *TelegramNotifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}
}

func (n *TelegramNotifier) Notify(level Level, message string) {
	n.send(levelEmoji(level) + " " + message)
}

func (n *TelegramNotifier) LargeTransaction(tx models.Transaction) {
	kind := "Расход"
	if tx.IsIncome() {
		kind = "Поступление"
	}
	text := fmt.Sprintf("💰 Крупная операция!\n%s: %s\nКатегория: %s\n%s",
		kind, tx.Amount.StringFixed(0), tx.Category, tx.Description)
	n.send(text)
}

func (n *TelegramNotifier) send(text string) {
	if n.chatID == 0 {
		return
	}
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		n.logger.WithError(err).WithField("chat_id", n.chatID).Warn("Failed to deliver notification")
	}
}

func levelEmoji(level Level) string {
	switch level {
	case LevelSuccess:
		return "✅"
	case LevelWarning:
		return "⚠️"
	default:
		return "❌"
	}
}
