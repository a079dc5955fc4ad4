package media

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHEICConverterMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := HEICConverter{}.Convert(filepath.Join(dir, "IMG_0001.HEIC"), filepath.Join(dir, "IMG_0001.jpeg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHEICConverterUndecodable(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "IMG_0001.HEIC")
	dst := filepath.Join(dir, "IMG_0001.jpeg")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0644))

	assert.Error(t, HEICConverter{Quality: 80}.Convert(src, dst))
	assert.NoFileExists(t, dst)
}

func TestHEICConverterWritesJPEG(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "camel.jpeg")

	require.NoError(t, HEICConverter{}.Convert(filepath.Join("testdata", "camel.heic"), dst))

	img, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, 1596, img.Bounds().Dx())
	assert.Equal(t, 1064, img.Bounds().Dy())
}

func TestRenderHEICWithDecoder(t *testing.T) {
	root := t.TempDir()
	rel := "Attachments/ca/01/camel.HEIC"
	data, err := os.ReadFile(filepath.Join("testdata", "camel.heic"))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Attachments", "ca", "01"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(rel)), data, 0644))

	var buf bytes.Buffer
	ref, err := NewRenderer(Options{Root: root, OutputDir: root}).Render(&buf, other, Item{Path: rel, MimeType: "image/heic"})
	require.NoError(t, err)
	assert.Equal(t, "Attachments/ca/01/camel.jpeg", ref.Path)
	assert.Contains(t, buf.String(), `<img src="Attachments/ca/01/camel.jpeg" width="300">`)
	assert.NotContains(t, buf.String(), "Conversion failed!")
	assert.FileExists(t, filepath.Join(root, "Attachments", "ca", "01", "camel.jpeg"))
}
