package render

import (
	"io"

	"github.com/forbes3100/macbak/internal/markup"
)

// Session is the state of one document being rendered.
type Session struct {
	w     io.Writer
	debug int

	style          markup.Style
	currentDay     string
	currentSpeaker string
	hasSpeaker     bool

	attachments int
}

func NewSession(w io.Writer, debug int) *Session {
	return &Session{w: w, debug: debug}
}

func (s *Session) write(str string) {
	io.WriteString(s.w, str)
}

func (s *Session) note(body string) {
	s.write(s.style.Note(body))
}
