package backend

import (
	"errors"

	"github.com/forbes3100/macbak/internal/models"
)

const (
	SupportedBackendList = "sqlite3, sqlite"
)

// ErrNotFound is returned when no attachment sits at a (message, ordinal) join.
var ErrNotFound = errors.New("attachment not found")

type ArchiveBackend interface {
	ListHandles() ([]models.Handle, error)
	// ListMessages returns every message ordered by its resolved local
	// timestamp. Year filtering is left to the caller.
	ListMessages() ([]models.Message, error)
	GetAttachment(messageID int64, ordinal int) (models.Attachment, error)
	// RelocateAttachment rewrites the stored path of the attachment at the
	// given join position and commits before returning.
	RelocateAttachment(messageID int64, ordinal int, storedPath string) error
	Close() error
}
