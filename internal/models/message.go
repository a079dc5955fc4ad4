package models

import (
	"database/sql"
	"strconv"
	"time"
)

// SelfHandleID is the handle the archive assigns to the owner's own messages.
const SelfHandleID = 0

// DateLayout is the layout of the store-resolved local timestamp.
const DateLayout = "2006-01-02 15:04:05"

const (
	ServiceIMessage = "iMessage"
	ServiceSMS      = "SMS"
)

type Message struct {
	ID             int64          `db:"rowid"`
	Date           string         `db:"f_date"`
	GUID           string         `db:"guid"`
	IsFromMe       bool           `db:"is_from_me"`
	HasAttachments bool           `db:"cache_has_attachments"`
	HandleID       int64          `db:"handle_id"`
	Text           sql.NullString `db:"text"`
	Service        string         `db:"service"`
}

// FromMe reports whether the archive owner sent the message. Rows pointing at
// the self handle count as sent by the owner whatever is_from_me says.
func (m Message) FromMe() bool {
	return m.IsFromMe || m.HandleID == SelfHandleID
}

// Day is the date portion of the resolved timestamp, "YYYY-MM-DD".
func (m Message) Day() string {
	if len(m.Date) < 10 {
		return m.Date
	}
	return m.Date[:10]
}

// Year parses the year from the resolved timestamp, or returns 0.
func (m Message) Year() int {
	if len(m.Date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(m.Date[:4])
	if err != nil {
		return 0
	}
	return y
}

func (m Message) Time() (time.Time, error) {
	return time.ParseInLocation(DateLayout, m.Date, time.Local)
}
