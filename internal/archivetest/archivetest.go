// Package archivetest builds small chat.db-shaped archives for tests.
package archivetest

import (
	"database/sql"
	"embed"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

var appleEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// AppleDate converts t to message.date units: nanoseconds since 2001-01-01.
func AppleDate(t time.Time) int64 {
	return t.Sub(appleEpoch).Nanoseconds()
}

type Message struct {
	GUID           string
	Text           sql.NullString
	HandleID       int64
	Service        string
	Date           time.Time
	IsFromMe       bool
	HasAttachments bool
}

type Attachment struct {
	CreatedDate  time.Time
	Filename     sql.NullString
	MimeType     string
	TransferName string
}

type Archive struct {
	Path string
	DB   *sqlx.DB

	t testing.TB
}

// Text is a shorthand for a non-null message body or stored path.
func Text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

// New creates dir/chat.db with the message, handle, attachment and join
// tables. The connection is closed when the test ends.
func New(t testing.TB, dir string) *Archive {
	t.Helper()
	path := filepath.Join(dir, "chat.db")

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture archive: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("goose dialect: %v", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}

	return &Archive{Path: path, DB: db, t: t}
}

func (a *Archive) AddHandle(rowid int64, id string) {
	a.t.Helper()
	a.mustExec("INSERT INTO handle (ROWID, id) VALUES (?, ?)", rowid, id)
}

func (a *Archive) AddMessage(m Message) int64 {
	a.t.Helper()
	return a.mustInsert(`INSERT INTO message (guid, text, handle_id, service, date, is_from_me, cache_has_attachments)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.GUID, m.Text, m.HandleID, m.Service, AppleDate(m.Date), m.IsFromMe, m.HasAttachments)
}

func (a *Archive) AddAttachment(att Attachment) int64 {
	a.t.Helper()
	return a.mustInsert(`INSERT INTO attachment (created_date, filename, mime_type, transfer_name)
		VALUES (?, ?, ?, ?)`,
		AppleDate(att.CreatedDate), att.Filename, att.MimeType, att.TransferName)
}

func (a *Archive) Join(messageID, attachmentID int64) {
	a.t.Helper()
	a.mustExec("INSERT INTO message_attachment_join (message_id, attachment_id) VALUES (?, ?)", messageID, attachmentID)
}

// StoredPath reads attachment.filename back for assertions.
func (a *Archive) StoredPath(attachmentID int64) sql.NullString {
	a.t.Helper()
	var p sql.NullString
	if err := a.DB.Get(&p, "SELECT filename FROM attachment WHERE ROWID = ?", attachmentID); err != nil {
		a.t.Fatalf("read attachment %d: %v", attachmentID, err)
	}
	return p
}

func (a *Archive) mustExec(query string, args ...interface{}) {
	a.t.Helper()
	if _, err := a.DB.Exec(query, args...); err != nil {
		a.t.Fatalf("fixture exec: %v", err)
	}
}

func (a *Archive) mustInsert(query string, args ...interface{}) int64 {
	a.t.Helper()
	res, err := a.DB.Exec(query, args...)
	if err != nil {
		a.t.Fatalf("fixture insert: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		a.t.Fatalf("fixture insert id: %v", err)
	}
	return id
}
