package service

import (
	"fmt"
	"testing"
	"time"

	"crew-ledger/internal/apperror"
	"crew-ledger/internal/models"
	"crew-ledger/internal/notify"
	"crew-ledger/internal/repository"
	"crew-ledger/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC)

type notice struct {
	level   notify.Level
	message string
}

type recordingNotifier struct {
	notices []notice
	large   []models.Transaction
}

func (r *recordingNotifier) Notify(level notify.Level, message string) {
	r.notices = append(r.notices, notice{level, message})
}

func (r *recordingNotifier) LargeTransaction(tx models.Transaction) {
	r.large = append(r.large, tx)
}

type fixture struct {
	svc      *DataService
	store    *storage.MemoryStorage
	records  *repository.Collections
	errs     *apperror.Handler
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	store := storage.NewMemoryStorage()
	notifier := &recordingNotifier{}
	errs := apperror.NewHandler(store, notifier, logger)
	records := repository.NewCollections(store)

	seq := 0
	svc := NewDataService(records, errs, notifier,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
		WithLogger(logger),
	)

	return &fixture{svc: svc, store: store, records: records, errs: errs, notifier: notifier}
}

func requireValidation(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsCode(err, apperror.CodeValidation), "expected validation error, got %v", err)
	require.EqualError(t, err, message)
}
