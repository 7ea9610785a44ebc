package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"crew-ledger/internal/models"
	"crew-ledger/internal/repository"
	"crew-ledger/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// listWorkers показывает всех работников, архивные в конце
func (h *Handler) listWorkers(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	workers, err := h.records.Workers()
	if err != nil {
		h.replyError(chatID, "Ошибка получения списка работников", err)
		return
	}
	if len(workers) == 0 {
		h.reply(chatID, "📭 Работников пока нет. Добавьте: /addworker")
		return
	}

	var active, archived []string
	for _, w := range workers {
		line := formatWorkerLine(w)
		if w.IsArchived() || !w.IsActive {
			archived = append(archived, line)
		} else {
			active = append(active, line)
		}
	}

	lines := []string{fmt.Sprintf("👷 Работники (%d):", len(active))}
	lines = append(lines, active...)
	if len(archived) > 0 {
		lines = append(lines, "", fmt.Sprintf("🗄 Архив (%d):", len(archived)))
		lines = append(lines, archived...)
	}

	h.reply(chatID, strings.Join(lines, "\n"))
}

// addWorker: /addworker имя;ставка;должность[;навыки]
func (h *Handler) addWorker(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parts := splitFields(args, ";")
	if len(parts) < 3 {
		h.reply(chatID, "❌ Формат: /addworker имя;ставка;должность[;навыки через запятую]")
		return
	}

	rate, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		h.reply(chatID, "❌ Ставка должна быть целым числом")
		return
	}

	input := service.WorkerInput{Name: parts[0], DailyRate: rate, Position: parts[2]}
	if len(parts) > 3 {
		input.Skills = strings.Split(parts[3], ",")
	}

	worker, err := h.data.CreateWorker(input)
	if err != nil {
		h.replyError(chatID, "Работник не добавлен", err)
		return
	}
	if err := h.records.AddWorker(*worker); err != nil {
		h.replyError(chatID, "Не удалось сохранить работника", err)
		return
	}

	h.reply(chatID, "✅ Работник добавлен:\n"+formatWorkerLine(*worker))
}

func (h *Handler) archiveWorker(message *tgbotapi.Message, args string) {
	h.changeWorker(message.Chat.ID, args, func(w *models.Worker) { w.Archive(h.now()) }, "🗄 Работник переведен в архив")
}

func (h *Handler) restoreWorker(message *tgbotapi.Message, args string) {
	h.changeWorker(message.Chat.ID, args, func(w *models.Worker) { w.Restore() }, "♻️ Работник восстановлен")
}

func (h *Handler) changeWorker(chatID int64, args string, change func(*models.Worker), done string) {
	id := strings.TrimSpace(args)
	if id == "" {
		h.reply(chatID, "❌ Укажите ID работника")
		return
	}

	worker, err := h.records.FindWorker(id)
	if errors.Is(err, repository.ErrNotFound) {
		h.reply(chatID, "❌ Работник не найден")
		return
	}
	if err != nil {
		h.replyError(chatID, "Ошибка поиска работника", err)
		return
	}

	change(worker)
	if err := h.records.UpdateWorker(*worker); err != nil {
		h.replyError(chatID, "Не удалось сохранить работника", err)
		return
	}

	h.reply(chatID, done+":\n"+formatWorkerLine(*worker))
}

func formatWorkerLine(w models.Worker) string {
	line := fmt.Sprintf("• %s - %s, %d/день\n  🆔 %s", w.Name, w.Position, w.DailyRate, w.ID)
	if len(w.Skills) > 0 {
		line += "\n  🛠 " + strings.Join(w.Skills, ", ")
	}
	return line
}

// splitFields делит строку по разделителю и обрезает пробелы
func splitFields(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
