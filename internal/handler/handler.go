package handler

import (
	"errors"
	"time"

	"crew-ledger/internal/apperror"
	"crew-ledger/internal/models"
	"crew-ledger/internal/repository"
	"crew-ledger/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// BotAPI - методы tgbotapi.BotAPI, которыми пользуется обработчик
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot         BotAPI
	data        *service.DataService
	records     *repository.Collections
	errs        *apperror.Handler
	adminChatID int64
	logger      *logrus.Logger
	now         func() time.Time

	// ведомости, ждущие подтверждения перезаписи, по chatID
	pendingPayroll map[int64]models.PayrollRecord
}

func NewHandler(
	bot BotAPI,
	data *service.DataService,
	records *repository.Collections,
	errs *apperror.Handler,
	adminChatID int64,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		bot:            bot,
		data:           data,
		records:        records,
		errs:           errs,
		adminChatID:    adminChatID,
		logger:         logger,
		now:            time.Now,
		pendingPayroll: make(map[int64]models.PayrollRecord),
	}
}

// HandleUpdates обрабатывает обновления по одному, пока канал не закроется
func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		h.handleSafely(update)
	}
}

// handleSafely не дает панике в одной команде остановить цикл обновлений;
// сама паника уже записана в журнал ошибок границей сервиса
func (h *Handler) handleSafely(update tgbotapi.Update) {
	defer func() {
		if p := recover(); p != nil {
			h.logger.WithField("update_id", update.UpdateID).Errorf("Update handler panicked: %v", p)
		}
	}()

	h.HandleUpdate(update)
}

func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	h.handleMessage(update.Message)
}

// handleCallbackQuery обрабатывает inline кнопки
func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	// Удаляем клавиатуру
	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.request(editMsg)

	switch callback.Data {
	case callbackConfirmPayroll:
		h.confirmPayrollOverwrite(chatID)
	case callbackCancelPayroll:
		delete(h.pendingPayroll, chatID)
		h.reply(chatID, "❌ Перезапись ведомости отменена.")
	}

	// Отвечаем на callback (убираем "часики" у кнопки)
	h.request(tgbotapi.NewCallback(callback.ID, ""))
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}

	username := ""
	if message.From != nil {
		username = message.From.UserName
	}
	h.logger.WithField("chat_id", message.Chat.ID).Infof("[%s] %s", username, message.Text)

	if !message.IsCommand() {
		h.reply(message.Chat.ID, "Используйте /help для списка команд.")
		return
	}

	if !h.isAllowed(message.Chat.ID) {
		h.reply(message.Chat.ID, "❌ Доступ запрещен. Бот работает только в чате администратора.")
		return
	}

	h.handleCommand(message)
}

// isAllowed: без настроенного чата администратора бот открыт всем
func (h *Handler) isAllowed(chatID int64) bool {
	return h.adminChatID == 0 || chatID == h.adminChatID
}

func (h *Handler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

// replyError показывает ошибку пользователю. Ошибки ядра уже ушли
// в чат администратора через уведомления, туда повторно не пишем.
func (h *Handler) replyError(chatID int64, prefix string, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && chatID == h.adminChatID {
		return
	}
	h.reply(chatID, "❌ "+prefix+": "+err.Error())
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.WithError(err).Warn("Failed to send telegram message")
	}
}

func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.WithError(err).Debug("Telegram request failed")
	}
}
