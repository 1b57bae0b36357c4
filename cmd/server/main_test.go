package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsDialErrors(t *testing.T) {
	t.Setenv("PAIRING_ADDR", "127.0.0.1:1")
	t.Setenv("PAIRING_DIAL_TIMEOUT", "200ms")

	err := run(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to pairing service at 127.0.0.1:1")
}

func TestRunRejectsInvalidConfiguration(t *testing.T) {
	t.Setenv("PAIRING_DIAL_TIMEOUT", "soon")

	err := run(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
