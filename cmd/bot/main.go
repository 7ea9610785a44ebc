package main

import (
	"os"
	"os/signal"
	"syscall"

	"crew-ledger/internal/apperror"
	"crew-ledger/internal/config"
	"crew-ledger/internal/handler"
	"crew-ledger/internal/logging"
	"crew-ledger/internal/notify"
	"crew-ledger/internal/repository"
	"crew-ledger/internal/service"
	"crew-ledger/internal/storage"
	"crew-ledger/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetConfig()
	logger := logging.New(cfg.LogLevel)
	logger.Info("Config initialized...")

	// Инициализируем SQLite базу данных
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}

	store, err := storage.NewGormStorage(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create storage")
	}

	// Создаем клиент Telegram
	client, err := telegram.NewClient(cfg.TelegramToken, logger.IsLevelEnabled(logrus.DebugLevel))
	if err != nil {
		logger.Fatal("Failed to create Telegram client:", err)
	}
	logger.Infof("Authorized on account %s", client.Bot.Self.UserName)

	notifier := notify.Fanout{
		notify.NewLogNotifier(logger),
		notify.NewTelegramNotifier(client.Bot, cfg.AdminChatID, logger),
	}
	if cfg.AdminChatID == 0 {
		logger.Warn("ADMIN_CHAT_ID is not set: bot is open to every chat, notifications go to the log only")
	}

	errs := apperror.NewHandler(store, notifier, logger)

	// Ядро читает хранилище напрямую, чтобы поврежденные данные
	// становились ошибками проверки целостности
	data := service.NewDataService(repository.NewCollections(store), errs, notifier, service.WithLogger(logger))

	// Экран пишет через SafeStorage: сбой записи попадает в журнал ошибок один раз
	records := repository.NewCollections(storage.NewSafeStorage(store, errs).AsStorage())

	// Проверка целостности при старте
	if result := data.CleanupData(); result.IssuesFound > 0 {
		logger.WithFields(logrus.Fields{
			"issues":       result.IssuesFound,
			"failed":       result.FailedCategories,
			"payroll":      result.RemovedPayroll,
			"transactions": result.RemovedTransactions,
			"attendance":   result.RemovedAttendance,
		}).Warn("Startup cleanup fixed data issues")
	}

	botHandler := handler.NewHandler(client.Bot, data, records, errs, cfg.AdminChatID, logger)

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Запускаем обработку сообщений
	go botHandler.HandleUpdates(client.Updates())

	logger.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	client.Stop()

	// Закрываем соединение с БД
	if err := store.Close(); err != nil {
		logger.Infof("Error closing database: %v", err)
	}

	logger.Info("Bot stopped gracefully")
}
