package attachments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/forbes3100/macbak/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestBuildIndexLeafDirectoriesOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.jpeg"), "x")
	writeFile(t, filepath.Join(root, "a", "mid.jpeg"), "x")
	writeFile(t, filepath.Join(root, "a", "b", "GUID1", "cat.jpeg"), "x")
	writeFile(t, filepath.Join(root, "a", "b", "GUID1", ".DS_Store"), "x")
	writeFile(t, filepath.Join(root, "c", "GUID2", "dog.heic"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))

	exclude, err := utils.ParseWildmat(".DS_Store")
	require.NoError(t, err)

	ix, err := BuildIndex(root, exclude)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat.jpeg", "dog.heic"}, ix.Names())

	p, ok := ix.Lookup("cat.jpeg")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a", "b", "GUID1", "cat.jpeg"), p)

	_, ok = ix.Lookup("top.jpeg")
	assert.False(t, ok)
	_, ok = ix.Lookup("")
	assert.False(t, ok)
}

func TestBuildIndexMissingRoot(t *testing.T) {
	ix, err := BuildIndex("", nil)
	require.NoError(t, err)
	assert.Empty(t, ix)

	ix, err = BuildIndex(filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	assert.Empty(t, ix)
}
