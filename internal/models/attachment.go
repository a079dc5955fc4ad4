package models

import (
	"database/sql"
	"strings"
)

// PayloadExtension marks plugin payloads, which carry no renderable content.
const PayloadExtension = ".pluginPayloadAttachment"

const (
	MimeHEIC = "image/heic"
	MimeJPEG = "image/jpeg"
)

type Attachment struct {
	ID           int64          `db:"rowid"`
	CreatedDate  int64          `db:"created_date"`
	Filename     sql.NullString `db:"filename"`
	MimeType     sql.NullString `db:"mime_type"`
	TransferName sql.NullString `db:"transfer_name"`

	// Join position the row was fetched from.
	MessageID int64 `db:"-"`
	Ordinal   int   `db:"-"`
}

func (a Attachment) Mime() string {
	return a.MimeType.String
}

func IsAudio(mime string) bool {
	return strings.HasPrefix(mime, "audio")
}

func IsImage(mime string) bool {
	return strings.HasPrefix(mime, "image")
}
