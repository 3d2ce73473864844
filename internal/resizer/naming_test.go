package resizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	assert.Equal(t, "a_resized_50%.png", OutputName("a.png", Scale50))
	assert.Equal(t, "photo_resized_25%.JPG", OutputName("photo.JPG", Scale25))
	assert.Equal(t, "my.holiday_resized_75%.jpeg", OutputName("my.holiday.jpeg", Scale75))
}

func TestSupportedExtension(t *testing.T) {
	for _, ext := range []string{".jpg", ".JPEG", ".Png", ".gif", ".webp", ".BMP", ".tiff"} {
		assert.True(t, SupportedExtension(ext), ext)
	}
	for _, ext := range []string{"", ".txt", ".tif", ".svg", ".heic", "jpg"} {
		assert.False(t, SupportedExtension(ext), ext)
	}
}

func TestResolveDestination(t *testing.T) {
	dir := t.TempDir()

	dest, err := resolveDestination(dir, "a_resized_50%.png", ConflictRename)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_resized_50%.png"), dest)

	require.NoError(t, os.WriteFile(dest, []byte("x"), 0o644))

	dest, err = resolveDestination(dir, "a_resized_50%.png", ConflictOverwrite)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_resized_50%.png"), dest)

	dest, err = resolveDestination(dir, "a_resized_50%.png", ConflictRename)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_resized_50% - dup1.png"), dest)

	require.NoError(t, os.WriteFile(dest, []byte("x"), 0o644))
	dest, err = resolveDestination(dir, "a_resized_50%.png", ConflictRename)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_resized_50% - dup2.png"), dest)
}

func TestWriteAtomicReplaces(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

	err := writeAtomic(dest, func(f *os.File) error {
		_, err := f.WriteString("new")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not survive")
}
