package apperror

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PassesValueThrough(t *testing.T) {
	h := NewHandler(newMemPersister(), &recordingNotifier{}, nil)

	op := Wrap(h, "sum", func() (int, error) { return 42, nil })
	got, err := op()

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Empty(t, h.Errors())
}

func TestWrap_ReportsErrorOnceAndReturnsIt(t *testing.T) {
	h := NewHandler(newMemPersister(), &recordingNotifier{}, nil)
	original := NewValidationError("Days worked must be between 0 and 31")

	_, err := Wrap(h, "DataService.calculatePayroll", func() (string, error) { return "", original })()

	require.Same(t, original, err)
	logged := h.Errors()
	require.Len(t, logged, 1)
	assert.Equal(t, "DataService.calculatePayroll", logged[0].Context)
	assert.Equal(t, original.Message, logged[0].Message)
}

func TestWrap_PanicIsReportedAndRepanicked(t *testing.T) {
	h := NewHandler(newMemPersister(), &recordingNotifier{}, nil)
	boom := errors.New("sync failure")

	op := Wrap(h, "explode", func() (int, error) { panic(boom) })

	assert.PanicsWithError(t, "sync failure", func() { _, _ = op() })
	logged := h.Errors()
	require.Len(t, logged, 1)
	assert.Equal(t, "sync failure", logged[0].Message)
}

func TestWrapAsync_Success(t *testing.T) {
	h := NewHandler(newMemPersister(), &recordingNotifier{}, nil)

	fetch := WrapAsync(h, "fetch", func(ctx context.Context) (string, error) { return "ok", nil })
	got, err := fetch(context.Background()).Await()

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Empty(t, h.Errors())
}

func TestWrapAsync_RejectionReportedOnce(t *testing.T) {
	h := NewHandler(newMemPersister(), &recordingNotifier{}, nil)
	original := NewNetworkError("timeout")

	fetch := WrapAsync(h, "fetch", func(ctx context.Context) (string, error) { return "", original })
	_, err := fetch(context.Background()).Await()

	require.Same(t, original, err)
	logged := h.Errors()
	require.Len(t, logged, 1)
	assert.Equal(t, CodeNetwork, logged[0].Code)
}

func TestWrapAsync_PanicBecomesError(t *testing.T) {
	h := NewHandler(newMemPersister(), &recordingNotifier{}, nil)

	fetch := WrapAsync(h, "fetch", func(ctx context.Context) (int, error) { panic("lost") })
	f := fetch(context.Background())
	<-f.Done()
	_, err := f.Await()

	require.EqualError(t, err, "panic: lost")
	assert.Len(t, h.Errors(), 1)
}
