package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/jason-s-yu/uno/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		SaveDir:            t.TempDir(),
		SaveRetention:      10,
		PlayerName:         "Player",
		AIPlayers:          3,
		HandSize:           7,
		Seed:               5,
		LogLevel:           logrus.ErrorLevel,
		HistorianBatchSize: 20,
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRunQuitImmediately(t *testing.T) {
	cfg := testConfig(t)
	out := &bytes.Buffer{}

	err := run(context.Background(), cfg, quietLogger(), strings.NewReader("1\n!quit\ny\n"), out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Choose difficulty")
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestRunSaveThenLoad(t *testing.T) {
	cfg := testConfig(t)

	first := &bytes.Buffer{}
	err := run(context.Background(), cfg, quietLogger(), strings.NewReader("2\n!save\n!quit\ny\n"), first)
	require.NoError(t, err)
	assert.Contains(t, first.String(), "Game saved")

	second := &bytes.Buffer{}
	err = run(context.Background(), cfg, quietLogger(), strings.NewReader("y\n1\n!quit\ny\n"), second)
	require.NoError(t, err)
	assert.Contains(t, second.String(), "Game loaded.")
	assert.NotContains(t, second.String(), "Choose difficulty")
}

func TestRunEndOfInput(t *testing.T) {
	cfg := testConfig(t)
	err := run(context.Background(), cfg, quietLogger(), strings.NewReader("3\n"), io.Discard)
	assert.ErrorIs(t, err, io.EOF)
}
