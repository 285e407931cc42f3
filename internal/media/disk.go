package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// DiskStorage writes uploads into a directory served as static files.
type DiskStorage struct {
	dir     string
	urlPath string
	now     func() time.Time
}

func NewDiskStorage(dir, urlPath string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskStorage{dir: dir, urlPath: urlPath, now: time.Now}, nil
}

func (s *DiskStorage) Save(ctx context.Context, originalName string, r io.Reader) (*StoredFile, error) {
	filename := storageKey(originalName, s.now())
	path := filepath.Join(s.dir, filename)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}

	return &StoredFile{
		URL:      s.urlPath + "/" + filename,
		Filename: filename,
	}, nil
}

func (s *DiskStorage) Delete(ctx context.Context, filename string) error {
	// Never follow a path outside the media dir.
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid filename %q", filename)
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
