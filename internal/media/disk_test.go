package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorageSave(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStorage(dir, "/images/media")
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1756600000000) }

	stored, err := s.Save(context.Background(), "reef photo.jpg", strings.NewReader("bytes"))
	require.NoError(t, err)

	assert.Equal(t, "1756600000000-reef_photo.jpg", stored.Filename)
	assert.Equal(t, "/images/media/1756600000000-reef_photo.jpg", stored.URL)

	data, err := os.ReadFile(filepath.Join(dir, stored.Filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes"), data)
}

func TestDiskStorageDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStorage(dir, "/images/media")
	require.NoError(t, err)

	stored, err := s.Save(context.Background(), "reef.jpg", strings.NewReader("bytes"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), stored.Filename))
	_, statErr := os.Stat(filepath.Join(dir, stored.Filename))
	assert.True(t, os.IsNotExist(statErr))

	assert.NoError(t, s.Delete(context.Background(), stored.Filename), "deleting an absent file is a no-op")
}

func TestDiskStorageDeleteRejectsPathTraversal(t *testing.T) {
	s, err := NewDiskStorage(t.TempDir(), "/images/media")
	require.NoError(t, err)

	assert.Error(t, s.Delete(context.Background(), "../escape.jpg"))
	assert.Error(t, s.Delete(context.Background(), "nested/file.jpg"))
}

func TestStorageKeySanitizesName(t *testing.T) {
	at := time.UnixMilli(1756600000000)

	assert.Equal(t, "1756600000000-reef.jpg", storageKey("reef.jpg", at))
	assert.Equal(t, "1756600000000-a_b_c.png", storageKey("a b/c.png", at))
}
