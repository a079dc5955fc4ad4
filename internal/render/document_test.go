package render

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentName(t *testing.T) {
	assert.Equal(t, "2021", DocumentName(2021, 0))
	assert.Equal(t, "2021_dbg", DocumentName(2021, 3))
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDocument(dir, "2021", func(w io.Writer) error {
		_, err := io.WriteString(w, "<html></html>")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2021.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteDocumentFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	prev := filepath.Join(dir, "2021.html")
	require.NoError(t, os.WriteFile(prev, []byte("previous"), 0644))

	_, err := WriteDocument(dir, "2021", func(w io.Writer) error {
		io.WriteString(w, "partial")
		return errors.New("archive went away")
	})
	assert.Error(t, err)

	data, err := os.ReadFile(prev)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
