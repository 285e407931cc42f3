// Package media holds the file storage collaborator behind uploads. The rest
// of the system depends only on this contract: store bytes, get back a public
// URL and a storage key; delete by key. It owns file bytes, never record
// metadata.
package media

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"
)

// StoredFile describes an accepted upload.
type StoredFile struct {
	URL      string
	Filename string
}

type Storage interface {
	Save(ctx context.Context, originalName string, r io.Reader) (*StoredFile, error)
	Delete(ctx context.Context, filename string) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// storageKey builds a unique key from the upload time and a sanitized
// original name, the naming scheme the site's media directory already uses.
func storageKey(originalName string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), unsafeChars.ReplaceAllString(originalName, "_"))
}
