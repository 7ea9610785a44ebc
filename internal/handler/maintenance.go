package handler

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const recentErrorsShown = 10

// checkIntegrity запускает проверку целостности без исправлений
func (h *Handler) checkIntegrity(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	report, err := h.data.ValidateDataIntegrity()
	if err != nil {
		h.replyError(chatID, "Проверка не выполнена", err)
		return
	}
	if report.IsValid {
		h.reply(chatID, "✅ Данные в порядке")
		return
	}

	lines := []string{"⚠️ Найдены проблемы:"}
	for _, issue := range report.Issues {
		lines = append(lines, "• "+issue)
	}
	lines = append(lines, "", "Исправить: /cleanup")
	h.reply(chatID, strings.Join(lines, "\n"))
}

func (h *Handler) cleanupData(message *tgbotapi.Message) {
	result := h.data.CleanupData()

	if result.IssuesFound == 0 {
		h.reply(message.Chat.ID, "✅ Исправлять нечего")
		return
	}

	text := fmt.Sprintf(`🧹 Очистка завершена
Ведомостей без работника удалено: %d
Операций с отрицательной суммой удалено: %d
Отметок из будущего удалено: %d`,
		result.RemovedPayroll, result.RemovedTransactions, result.RemovedAttendance)
	if result.FailedCategories > 0 {
		text += fmt.Sprintf("\n❌ Не удалось обработать категорий: %d (см. лог)", result.FailedCategories)
	}
	h.reply(message.Chat.ID, text)
}

func (h *Handler) showErrors(message *tgbotapi.Message) {
	errs := h.errs.Errors()
	if len(errs) == 0 {
		h.reply(message.Chat.ID, "✅ Журнал ошибок пуст")
		return
	}

	start := 0
	if len(errs) > recentErrorsShown {
		start = len(errs) - recentErrorsShown
	}

	lines := []string{fmt.Sprintf("🧾 Ошибки (%d, показаны последние %d):", len(errs), len(errs)-start)}
	for _, e := range errs[start:] {
		lines = append(lines, fmt.Sprintf("%s [%s] %s: %s", e.Timestamp.Format("2006-01-02 15:04"), e.Code, e.Context, e.Message))
	}
	h.reply(message.Chat.ID, strings.Join(lines, "\n"))
}

func (h *Handler) clearErrors(message *tgbotapi.Message) {
	h.errs.ClearErrors()
	h.reply(message.Chat.ID, "🧹 Журнал ошибок очищен")
}
