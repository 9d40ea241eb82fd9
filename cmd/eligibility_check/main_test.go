package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/MantleCoop/internal/eligibility"
)

func TestReadHistory(t *testing.T) {
	got, err := readHistory("from flag", "ignored", strings.NewReader("stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from flag", got)

	path := filepath.Join(t.TempDir(), "history.txt")
	require.NoError(t, os.WriteFile(path, []byte("  from file\n"), 0o600))
	got, err = readHistory("", path, strings.NewReader("stdin"))
	require.NoError(t, err)
	assert.Equal(t, "  from file\n", got)

	got, err = readHistory("", "-", strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	_, err = readHistory("", filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestWriteState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeState(&buf, eligibility.State{Error: eligibility.MsgValidation}))
	assert.JSONEq(t, `{"error":"Please provide a more detailed account history (at least 50 characters)."}`, buf.String())
}
