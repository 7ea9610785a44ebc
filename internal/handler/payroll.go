package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"crew-ledger/internal/export"
	"crew-ledger/internal/models"
	"crew-ledger/internal/repository"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	callbackConfirmPayroll = "confirm_overwrite_payroll"
	callbackCancelPayroll  = "cancel_overwrite_payroll"
)

// calculatePayroll: /payroll ID дни сверхурочные ГГГГ-ММ.
// Если ведомость за период уже есть, спрашивает подтверждение перезаписи.
func (h *Handler) calculatePayroll(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parts := strings.Fields(args)
	if len(parts) != 4 {
		h.reply(chatID, "❌ Формат: /payroll ID дни сверхурочные_часы ГГГГ-ММ")
		return
	}

	days, err := strconv.Atoi(parts[1])
	if err != nil {
		h.reply(chatID, "❌ Количество дней должно быть целым числом")
		return
	}
	hours, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		h.reply(chatID, "❌ Сверхурочные часы должны быть числом")
		return
	}

	worker, err := h.records.FindWorker(parts[0])
	if errors.Is(err, repository.ErrNotFound) {
		h.reply(chatID, "❌ Работник не найден")
		return
	}
	if err != nil {
		h.replyError(chatID, "Ошибка поиска работника", err)
		return
	}

	record, err := h.data.CalculatePayroll(*worker, days, hours, parts[3])
	if err != nil {
		h.replyError(chatID, "Ведомость не рассчитана", err)
		return
	}

	existing, err := h.records.FindPayroll(record.WorkerID, record.Period)
	if err != nil {
		h.replyError(chatID, "Ошибка проверки ведомостей", err)
		return
	}
	if existing != nil {
		h.pendingPayroll[chatID] = *record

		text := fmt.Sprintf("⚠️ Ведомость %s за %s уже есть (итого %s).\nПерезаписать новым расчетом (итого %s)?",
			existing.WorkerName, existing.Period, existing.TotalPay.StringFixed(0), record.TotalPay.StringFixed(0))
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Да, перезаписать", callbackConfirmPayroll),
				tgbotapi.NewInlineKeyboardButtonData("❌ Нет, отменить", callbackCancelPayroll),
			),
		)
		h.send(msg)
		return
	}

	h.savePayroll(chatID, *record)
}

func (h *Handler) confirmPayrollOverwrite(chatID int64) {
	record, ok := h.pendingPayroll[chatID]
	if !ok {
		h.reply(chatID, "❌ Нет ведомости, ожидающей подтверждения.")
		return
	}
	delete(h.pendingPayroll, chatID)

	h.savePayroll(chatID, record)
}

func (h *Handler) savePayroll(chatID int64, record models.PayrollRecord) {
	replaced, err := h.records.UpsertPayroll(record)
	if err != nil {
		h.replyError(chatID, "Не удалось сохранить ведомость", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"worker_id": record.WorkerID,
		"period":    record.Period,
		"replaced":  replaced,
	}).Info("Payroll saved")

	h.reply(chatID, "✅ Ведомость сохранена\n"+formatPayroll(record))
}

// exportPayroll: /export ГГГГ-ММ
func (h *Handler) exportPayroll(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID
	period := strings.TrimSpace(args)
	if period == "" {
		period = h.now().Format("2006-01")
	}

	records, err := h.records.PayrollForPeriod(period)
	if err != nil {
		h.replyError(chatID, "Ошибка чтения ведомостей", err)
		return
	}
	if len(records) == 0 {
		h.reply(chatID, fmt.Sprintf("📭 Ведомостей за %s нет", period))
		return
	}

	buf, err := export.PayrollWorkbook(period, records)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build payroll workbook")
		h.reply(chatID, "❌ Не удалось сформировать файл")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("payroll-%s.xlsx", period),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("📊 Ведомости за %s: %d", period, len(records))
	h.send(doc)
}

func formatPayroll(r models.PayrollRecord) string {
	return fmt.Sprintf(`👷 %s, %s
📅 Дней: %d × %d
💵 Оклад: %s
⏱ Сверхурочные: %s
💰 Итого: %s
📌 Статус: %s`,
		r.WorkerName, r.Period,
		r.DaysWorked, r.DailyRate,
		r.RegularPay.StringFixed(0),
		r.Overtime.StringFixed(0),
		r.TotalPay.StringFixed(0),
		r.Status)
}

// markPayrollPaid: /paid ID ГГГГ-ММ
func (h *Handler) markPayrollPaid(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parts := strings.Fields(args)
	if len(parts) != 2 {
		h.reply(chatID, "❌ Формат: /paid ID ГГГГ-ММ")
		return
	}

	record, err := h.records.FindPayroll(parts[0], parts[1])
	if err != nil {
		h.replyError(chatID, "Ошибка чтения ведомостей", err)
		return
	}
	if record == nil {
		h.reply(chatID, "❌ Ведомость не найдена")
		return
	}
	if record.Status != models.PayrollStatusPending {
		h.reply(chatID, fmt.Sprintf("❌ Ведомость уже в статусе %s", record.Status))
		return
	}

	record.MarkPaid(h.now())
	h.savePayroll(chatID, *record)
}
