package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start", "help":
		h.sendHelpMessage(message)

	// Работники
	case "workers":
		h.listWorkers(message)
	case "addworker":
		h.addWorker(message, args)
	case "archive":
		h.archiveWorker(message, args)
	case "restore":
		h.restoreWorker(message, args)

	// Зарплата
	case "payroll":
		h.calculatePayroll(message, args)
	case "paid":
		h.markPayrollPaid(message, args)
	case "export":
		h.exportPayroll(message, args)

	// Учет
	case "transaction", "tx":
		h.addTransaction(message, args)
	case "overtime":
		h.addOvertime(message, args)
	case "attend":
		h.addAttendance(message, args)
	case "project":
		h.addProject(message, args)
	case "projects":
		h.listProjects(message)
	case "material":
		h.addMaterial(message, args)
	case "materials":
		h.listMaterials(message)

	// Обслуживание
	case "check":
		h.checkIntegrity(message)
	case "cleanup":
		h.cleanupData(message)
	case "errors":
		h.showErrors(message)
	case "clearerrors":
		h.clearErrors(message)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	text := `📋 Доступные команды:

👷 Работники:
/workers - Список работников
/addworker имя;ставка;должность[;навыки через запятую] - Добавить работника
/archive ID - Перевести работника в архив
/restore ID - Вернуть работника из архива

💵 Зарплата:
/payroll ID дни сверхурочные_часы ГГГГ-ММ - Рассчитать ведомость
/paid ID ГГГГ-ММ - Отметить ведомость выплаченной
/export ГГГГ-ММ - Выгрузить ведомости в Excel

📒 Учет:
/tx income|expense сумма категория описание - Операция
/overtime ID часы ставка_в_час [описание] - Сверхурочные
/attend ID ЧЧ:ММ [ЧЧ:ММ] - Отметка прихода/ухода за сегодня
/project название;заказчик;бюджет;ГГГГ-ММ-ДД[;ГГГГ-ММ-ДД] - Объект
/projects - Объекты и остаток бюджета
/material название;ед.;цена;остаток;мин.остаток - Материал
/materials - Склад материалов

🛠 Обслуживание:
/check - Проверить целостность данных
/cleanup - Исправить найденные проблемы
/errors - Последние ошибки
/clearerrors - Очистить журнал ошибок`

	h.reply(message.Chat.ID, text)
}
