package cmd

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_SilencesCobraErrors(t *testing.T) {
	assert.True(t, RootCmd.SilenceErrors)
	assert.True(t, RootCmd.SilenceUsage)
}

func TestReportError(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelWarn}))

	reportError(logger, errors.New("unknown register 'mstatuss'"))

	require.NotEmpty(t, out.String())
	assert.Contains(t, out.String(), "level=ERROR")
	assert.Contains(t, out.String(), `msg="command failed"`)
	assert.Contains(t, out.String(), `error="unknown register 'mstatuss'"`)
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = parseLevel("loud")
	assert.Error(t, err)
}
