package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Inter", "Inter-Regular.ttf"))
	writeFile(t, filepath.Join(dir, "Mono.OTF"))
	writeFile(t, filepath.Join(dir, "readme.txt"))

	got, err := ScanDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Inter/Inter-Regular.ttf", "Mono.OTF"}, got)

	got, err = ScanDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindPrefersRegular(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Google_Sans", "GoogleSans-Bold.ttf"))
	writeFile(t, filepath.Join(dir, "Google_Sans", "GoogleSans-Regular.ttf"))

	got, err := Find([]string{dir}, "Google Sans")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Google_Sans", "GoogleSans-Regular.ttf"), got)

	got, err = Find([]string{dir}, "googlesans-bold.ttf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Google_Sans", "GoogleSans-Bold.ttf"), got)
}

func TestFindExistingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "any.ttf")
	writeFile(t, path)

	got, err := Find(nil, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestFindMissing(t *testing.T) {
	_, err := Find([]string{t.TempDir()}, "Inter")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Find(nil, "  ")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
