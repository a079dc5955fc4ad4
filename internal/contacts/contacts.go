// Package contacts maps raw handle identifiers to display names using the
// <archive>_handles.json book that sits next to the archive.
package contacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forbes3100/macbak/internal/models"
	"github.com/goccy/go-json"
)

var ErrBookMissing = errors.New("handle name book not found")

// Book maps raw identifiers (phone numbers, emails) to display names.
type Book map[string]string

// BookPath returns the book location for an archive: chat.db -> chat_handles.json.
func BookPath(archivePath string) string {
	return strings.TrimSuffix(archivePath, filepath.Ext(archivePath)) + "_handles.json"
}

func LoadBook(path string) (Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrBookMissing)
		}
		return nil, err
	}
	book := Book{}
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return book, nil
}

// Name returns the display name for id, or id itself when unmapped.
func (b Book) Name(id string) string {
	if name, ok := b[id]; ok {
		return name
	}
	return id
}

// Resolve keys display names by handle row id.
func (b Book) Resolve(handles []models.Handle) map[int64]string {
	names := make(map[int64]string, len(handles))
	for _, h := range handles {
		names[h.ID] = b.Name(h.Identifier)
	}
	return names
}
