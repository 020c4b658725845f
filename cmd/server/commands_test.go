package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned.csv")

	n, err := writeFile(path, func(w io.Writer) (int, error) {
		_, err := io.WriteString(w, "price,district\n50000,Kievsky\n")
		return 1, err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "price,district\n50000,Kievsky\n", string(body))
}

func TestWriteFile_RemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned.csv")
	errExport := errors.New("dataset unavailable")

	_, err := writeFile(path, func(w io.Writer) (int, error) {
		_, _ = io.WriteString(w, "price,district\n")
		return 0, errExport
	})
	require.ErrorIs(t, err, errExport)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestWriteFile_CreateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "cleaned.csv")

	_, err := writeFile(path, func(io.Writer) (int, error) {
		t.Fatal("write must not run")
		return 0, nil
	})
	assert.Error(t, err)
}
