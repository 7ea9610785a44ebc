package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_LevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "warn")

	logger.Info("hidden")
	logger.WithField("worker_id", "w1").Warn("visible")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "level=warning")
	require.Contains(t, out, "msg=visible")
	require.Contains(t, out, "worker_id=w1")
}

func TestNewWithOutput_BadLevelFallsBackToInfo(t *testing.T) {
	logger := NewWithOutput(&bytes.Buffer{}, "chatty")
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
