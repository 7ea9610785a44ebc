package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"crew-ledger/internal/repository"
	"crew-ledger/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// addTransaction: /tx income|expense сумма категория описание
func (h *Handler) addTransaction(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parts := strings.Fields(args)
	if len(parts) < 4 {
		h.reply(chatID, "❌ Формат: /tx income|expense сумма категория описание")
		return
	}

	amount, err := decimal.NewFromString(parts[1])
	if err != nil {
		h.reply(chatID, "❌ Сумма должна быть числом")
		return
	}

	createdBy := ""
	if message.From != nil {
		createdBy = message.From.UserName
	}

	tx, err := h.data.CreateTransaction(service.TransactionInput{
		Type:        parts[0],
		Amount:      amount,
		Category:    parts[2],
		Description: strings.Join(parts[3:], " "),
		CreatedBy:   createdBy,
	})
	if err != nil {
		h.replyError(chatID, "Операция не добавлена", err)
		return
	}
	if err := h.records.AddTransaction(*tx); err != nil {
		h.replyError(chatID, "Не удалось сохранить операцию", err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Операция сохранена: %s %s (%s)", tx.Type, tx.Amount.StringFixed(0), tx.Category))
}

// addOvertime: /overtime ID часы ставка [описание]
func (h *Handler) addOvertime(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parts := strings.Fields(args)
	if len(parts) < 3 {
		h.reply(chatID, "❌ Формат: /overtime ID часы ставка_в_час [описание]")
		return
	}

	hours, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		h.reply(chatID, "❌ Часы должны быть числом")
		return
	}
	rate, err := decimal.NewFromString(parts[2])
	if err != nil {
		h.reply(chatID, "❌ Ставка должна быть числом")
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

	record, err := h.data.CreateOvertimeRecord(service.OvertimeInput{
		WorkerID:    worker.ID,
		WorkerName:  worker.Name,
		Hours:       hours,
		Rate:        rate,
		Description: strings.Join(parts[3:], " "),
	})
	if err != nil {
		h.replyError(chatID, "Сверхурочные не добавлены", err)
		return
	}
	if err := h.records.AddOvertime(*record); err != nil {
		h.replyError(chatID, "Не удалось сохранить сверхурочные", err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Сверхурочные %s: %gч, к оплате %s", record.WorkerName, record.Hours, record.Total.StringFixed(0)))
}

// addAttendance: /attend ID ЧЧ:ММ [ЧЧ:ММ] - отметка за сегодня
func (h *Handler) addAttendance(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parts := strings.Fields(args)
	if len(parts) < 2 {
		h.reply(chatID, "❌ Формат: /attend ID ЧЧ:ММ [ЧЧ:ММ]")
		return
	}

	today := h.now()
	checkIn, err := clockOn(today, parts[1])
	if err != nil {
		h.reply(chatID, "❌ Время прихода в формате ЧЧ:ММ")
		return
	}
	var checkOut *time.Time
	if len(parts) > 2 {
		out, err := clockOn(today, parts[2])
		if err != nil {
			h.reply(chatID, "❌ Время ухода в формате ЧЧ:ММ")
			return
		}
		checkOut = &out
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

	record, err := h.data.CreateAttendanceRecord(service.AttendanceInput{
		WorkerID:   worker.ID,
		WorkerName: worker.Name,
		Date:       today,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		h.replyError(chatID, "Отметка не добавлена", err)
		return
	}
	if err := h.records.AddAttendance(*record); err != nil {
		h.replyError(chatID, "Не удалось сохранить отметку", err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ %s отмечен(а) %s, часов: %.1f", record.WorkerName, record.Date.Format(dateLayout), record.HoursWorked))
}

// addProject: /project название;заказчик;бюджет;начало[;окончание]
func (h *Handler) addProject(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parts := splitFields(args, ";")
	if len(parts) < 4 {
		h.reply(chatID, "❌ Формат: /project название;заказчик;бюджет;ГГГГ-ММ-ДД[;ГГГГ-ММ-ДД]")
		return
	}

	budget, err := decimal.NewFromString(parts[2])
	if err != nil {
		h.reply(chatID, "❌ Бюджет должен быть числом")
		return
	}
	start, err := time.Parse(dateLayout, parts[3])
	if err != nil {
		h.reply(chatID, "❌ Дата начала в формате ГГГГ-ММ-ДД")
		return
	}
	input := service.ProjectInput{Name: parts[0], Client: parts[1], Budget: budget, StartDate: start}
	if len(parts) > 4 && parts[4] != "" {
		end, err := time.Parse(dateLayout, parts[4])
		if err != nil {
			h.reply(chatID, "❌ Дата окончания в формате ГГГГ-ММ-ДД")
			return
		}
		input.EndDate = &end
	}

	project, err := h.data.CreateProject(input)
	if err != nil {
		h.replyError(chatID, "Объект не добавлен", err)
		return
	}
	if err := h.records.AddProject(*project); err != nil {
		h.replyError(chatID, "Не удалось сохранить объект", err)
		return
	}

	h.reply(chatID, fmt.Sprintf("🏗 Объект %s (%s) добавлен, бюджет %s", project.Name, project.Client, project.Budget.StringFixed(0)))
}

// addMaterial: /material название;ед.;цена;остаток;мин.остаток
func (h *Handler) addMaterial(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parts := splitFields(args, ";")
	if len(parts) < 5 {
		h.reply(chatID, "❌ Формат: /material название;ед.;цена;остаток;мин.остаток")
		return
	}

	price, err := decimal.NewFromString(parts[2])
	if err != nil {
		h.reply(chatID, "❌ Цена должна быть числом")
		return
	}
	stock, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		h.reply(chatID, "❌ Остаток должен быть числом")
		return
	}
	minStock, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		h.reply(chatID, "❌ Минимальный остаток должен быть числом")
		return
	}

	material, err := h.data.CreateMaterial(service.MaterialInput{
		Name:         parts[0],
		Unit:         parts[1],
		PricePerUnit: price,
		Stock:        stock,
		MinStock:     minStock,
	})
	if err != nil {
		h.replyError(chatID, "Материал не добавлен", err)
		return
	}
	if err := h.records.AddMaterial(*material); err != nil {
		h.replyError(chatID, "Не удалось сохранить материал", err)
		return
	}

	text := fmt.Sprintf("📦 Материал %s: %g %s", material.Name, material.Stock, material.Unit)
	if material.IsLowStock() {
		text += "\n⚠️ Остаток ниже минимального!"
	}
	h.reply(chatID, text)
}

// clockOn возвращает время ЧЧ:ММ в день day
func clockOn(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

func (h *Handler) listProjects(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	projects, err := h.records.Projects()
	if err != nil {
		h.replyError(chatID, "Ошибка получения объектов", err)
		return
	}
	if len(projects) == 0 {
		h.reply(chatID, "📭 Объектов пока нет. Добавьте: /project")
		return
	}

	lines := []string{fmt.Sprintf("🏗 Объекты (%d):", len(projects))}
	for _, p := range projects {
		lines = append(lines, fmt.Sprintf("• %s (%s) - %s, остаток %s из %s",
			p.Name, p.Client, p.Status, p.Remaining().StringFixed(0), p.Budget.StringFixed(0)))
	}
	h.reply(chatID, strings.Join(lines, "\n"))
}

// listMaterials показывает склад, позиции ниже минимума помечены
func (h *Handler) listMaterials(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	materials, err := h.records.Materials()
	if err != nil {
		h.replyError(chatID, "Ошибка получения материалов", err)
		return
	}
	if len(materials) == 0 {
		h.reply(chatID, "📭 Материалов пока нет. Добавьте: /material")
		return
	}

	lines := []string{fmt.Sprintf("📦 Материалы (%d):", len(materials))}
	for _, m := range materials {
		line := fmt.Sprintf("• %s: %g %s по %s", m.Name, m.Stock, m.Unit, m.PricePerUnit.StringFixed(0))
		if m.IsLowStock() {
			line += " ⚠️"
		}
		lines = append(lines, line)
	}
	h.reply(chatID, strings.Join(lines, "\n"))
}
