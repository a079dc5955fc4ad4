package render

import (
	"fmt"
	"html"
	"strconv"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/forbes3100/macbak/internal/attachments"
	"github.com/forbes3100/macbak/internal/media"
	"github.com/forbes3100/macbak/internal/models"
)

// Placeholder marks where an attachment sits inside message text.
const Placeholder = "\ufffc"

var placeholderRe = regexp2.MustCompile(Placeholder, regexp2.None)

// renderBody writes a message's text spans and attachments in order. The
// n-th placeholder is the attachment at ordinal n. A message with no text but
// the attachment flag set is a lone attachment at ordinal 0.
func (c *Conversation) renderBody(s *Session, msg models.Message) error {
	text := msg.Text.String
	if text == "" {
		if msg.HasAttachments {
			return c.renderAttachment(s, msg, 0)
		}
		return nil
	}

	// regexp2 reports rune offsets
	runes := []rune(text)
	start, ordinal := 0, 0
	m, err := placeholderRe.FindStringMatch(text)
	for m != nil {
		c.renderText(s, string(runes[start:m.Index]))
		if err := c.renderAttachment(s, msg, ordinal); err != nil {
			return err
		}
		ordinal++
		start = m.Index + m.Length
		m, err = placeholderRe.FindNextMatch(m)
	}
	if err != nil {
		return fmt.Errorf("message %d: scan text: %w", msg.ID, err)
	}
	c.renderText(s, string(runes[start:]))
	return nil
}

func (c *Conversation) renderText(s *Session, text string) {
	if s.debug > 0 {
		s.note(fmt.Sprintf("text(%d) = %s", utf8.RuneCountInString(text), html.EscapeString(strconv.QuoteToASCII(text))))
	}
	if text == "" {
		return
	}
	s.write(s.style.Bubble(FormatText(text)))
}

func (c *Conversation) renderAttachment(s *Session, msg models.Message, ordinal int) error {
	att, err := c.archive.GetAttachment(msg.ID, ordinal)
	if err != nil {
		return fmt.Errorf("message %d: %w", msg.ID, err)
	}
	s.attachments++

	if s.debug > 2 {
		s.note(html.EscapeString(fmt.Sprintf("att %d,%d,%s,%s:", msg.ID, ordinal, msg.Date, msg.GUID)) + "<br>" +
			html.EscapeString(fmt.Sprintf("%d,%s,%s,%s", att.CreatedDate, att.Filename.String, att.Mime(), att.TransferName.String)))
	}
	if s.debug > 1 {
		s.note("a_libpath=" + html.EscapeString(att.Filename.String))
	}

	res, err := c.resolver.Resolve(att)
	if err != nil {
		return fmt.Errorf("message %d: %w", msg.ID, err)
	}
	if ad := res.Adopted; ad != nil {
		s.note(fmt.Sprintf("Found extern file %s<br>\nCopying to %s<br>\nAs %s",
			html.EscapeString(ad.Source), html.EscapeString(ad.Dest), html.EscapeString(ad.StoredPath)))
	}

	switch res.Outcome {
	case attachments.NotInLibrary:
		s.note("Not in library! " + html.EscapeString(res.StoredPath))
		return nil
	case attachments.NoSourceFile:
		s.note(fmt.Sprintf("No file! %s %s", html.EscapeString(att.TransferName.String), html.EscapeString(att.Mime())))
		return nil
	case attachments.MissingFile:
		s.note("Expected file! " + html.EscapeString(res.Path))
		return nil
	}

	_, err = c.media.Render(s.w, s.style, media.Item{
		Path:        res.Path,
		MimeType:    att.Mime(),
		FromMe:      msg.FromMe(),
		CreatedDate: att.CreatedDate,
	})
	return err
}
