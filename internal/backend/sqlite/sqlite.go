package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/forbes3100/macbak/internal/backend"
	"github.com/forbes3100/macbak/internal/models"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// AppleEpochOffset is the number of seconds between the Unix epoch and
// 2001-01-01, the epoch of message.date.
const AppleEpochOffset = 978307200

// message.date holds nanoseconds on current archives and seconds on old ones;
// the first nine digits are seconds in both cases.
const resolvedDate = "datetime(substr(message.date, 1, 9) + 978307200, 'unixepoch', 'localtime')"

const (
	listHandlesQuery = `SELECT handle.ROWID AS rowid, handle.id AS id FROM handle`

	listMessagesQuery = `SELECT message.ROWID AS rowid, ` + resolvedDate + ` AS f_date,
		message.guid AS guid, message.is_from_me AS is_from_me,
		message.cache_has_attachments AS cache_has_attachments,
		message.handle_id AS handle_id, message.text AS text,
		COALESCE(message.service, '') AS service
		FROM message ORDER BY f_date, message.ROWID`

	getAttachmentQuery = `SELECT attachment.ROWID AS rowid, attachment.created_date AS created_date,
		attachment.filename AS filename, attachment.mime_type AS mime_type,
		attachment.transfer_name AS transfer_name
		FROM attachment
		INNER JOIN message_attachment_join ON attachment.ROWID = message_attachment_join.attachment_id
		WHERE message_attachment_join.message_id = ?
		ORDER BY message_attachment_join.attachment_id
		LIMIT 1 OFFSET ?`

	relocateAttachmentQuery = `UPDATE attachment SET filename = ?
		WHERE ROWID IN (
			SELECT attachment_id FROM message_attachment_join
			WHERE message_id = ?
			ORDER BY attachment_id
			LIMIT 1 OFFSET ?
		)`
)

type SQLiteBackend struct {
	db *sqlx.DB
}

// NewSQLiteBackend opens the archive at path with the named database/sql
// driver, "sqlite3" (cgo) or "sqlite" (pure Go). The file must already exist.
func NewSQLiteBackend(driver, path string) (*SQLiteBackend, error) {
	var dsn string
	switch driver {
	case "sqlite3":
		dsn = fmt.Sprintf("file:%s?mode=rw", path)
	case "sqlite":
		dsn = fmt.Sprintf("file:%s?mode=rw&_pragma=busy_timeout(5000)", path)
	default:
		return nil, fmt.Errorf("invalid backend type %q, supported backends: %s", driver, backend.SupportedBackendList)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	// one connection keeps reads and the occasional relocation serialized
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}

	return &SQLiteBackend{
		db: db,
	}, nil
}

func (sb *SQLiteBackend) ListHandles() ([]models.Handle, error) {
	var handles []models.Handle
	return handles, sb.db.Select(&handles, listHandlesQuery)
}

func (sb *SQLiteBackend) ListMessages() ([]models.Message, error) {
	var messages []models.Message
	return messages, sb.db.Select(&messages, listMessagesQuery)
}

func (sb *SQLiteBackend) GetAttachment(messageID int64, ordinal int) (models.Attachment, error) {
	var a models.Attachment
	if err := sb.db.Get(&a, getAttachmentQuery, messageID, ordinal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, fmt.Errorf("message %d, attachment %d: %w", messageID, ordinal, backend.ErrNotFound)
		}
		return a, err
	}
	a.MessageID = messageID
	a.Ordinal = ordinal
	return a, nil
}

func (sb *SQLiteBackend) RelocateAttachment(messageID int64, ordinal int, storedPath string) error {
	tx, err := sb.db.Beginx()
	if err != nil {
		return err
	}
	res, err := tx.Exec(relocateAttachmentQuery, storedPath, messageID, ordinal)
	if err != nil {
		tx.Rollback()
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if n != 1 {
		tx.Rollback()
		return fmt.Errorf("message %d, attachment %d: relocation updated %d rows: %w", messageID, ordinal, n, backend.ErrNotFound)
	}
	return tx.Commit()
}

func (sb *SQLiteBackend) Close() error {
	return sb.db.Close()
}
