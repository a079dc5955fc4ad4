package render

import (
	"fmt"
	"html"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/forbes3100/macbak/internal/attachments"
	"github.com/forbes3100/macbak/internal/markup"
	"github.com/forbes3100/macbak/internal/media"
	"github.com/forbes3100/macbak/internal/models"
)

// Archive is the part of the store a conversation reads.
type Archive interface {
	ListMessages() ([]models.Message, error)
	GetAttachment(messageID int64, ordinal int) (models.Attachment, error)
}

type Options struct {
	Archive Archive
	// Handles maps handle row ids to display names.
	Handles  map[int64]string
	Resolver *attachments.Resolver
	Media    *media.Renderer
	Debug    int
	Logger   *log.Logger
}

type Conversation struct {
	archive  Archive
	handles  map[int64]string
	resolver *attachments.Resolver
	media    *media.Renderer
	debug    int
	log      *log.Logger
}

// Stats counts what went into one document.
type Stats struct {
	Messages    int
	Attachments int
}

func NewConversation(opts Options) *Conversation {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	handles := opts.Handles
	if handles == nil {
		handles = map[int64]string{}
	}
	return &Conversation{
		archive:  opts.Archive,
		handles:  handles,
		resolver: opts.Resolver,
		media:    opts.Media,
		debug:    opts.Debug,
		log:      logger,
	}
}

// Render writes the complete document for one year of messages.
func (c *Conversation) Render(w io.Writer, year int) (Stats, error) {
	msgs, err := c.archive.ListMessages()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list messages: %w", err)
	}

	s := NewSession(w, c.debug)
	stats := Stats{}

	s.write(markup.Head)
	c.dump(s)
	for _, msg := range msgs {
		if msg.Year() != year {
			continue
		}
		if err := c.renderMessage(s, msg); err != nil {
			return stats, err
		}
		stats.Messages++
	}
	s.write(markup.Tail)

	stats.Attachments = s.attachments
	return stats, nil
}

func (c *Conversation) speaker(handleID int64) string {
	if name, ok := c.handles[handleID]; ok {
		return name
	}
	return fmt.Sprintf("handle %d", handleID)
}

func (c *Conversation) renderMessage(s *Session, msg models.Message) error {
	day := msg.Day()
	if day != s.currentDay {
		s.write(markup.DayRule)
	}

	fromMe := msg.FromMe()
	s.style = markup.NewStyle(fromMe, msg.Service)
	if fromMe {
		s.write(fmt.Sprintf("<p class=\"%s\">%s - from me, %s #%d</p>\n",
			markup.ClassDate, msg.Date, html.EscapeString(msg.Service), msg.ID))
	} else {
		who := html.EscapeString(c.speaker(msg.HandleID))
		s.write(fmt.Sprintf("<p class=\"%s\">%s - from %s, %s #%d</p>\n",
			markup.ClassDate, msg.Date, who, html.EscapeString(msg.Service), msg.ID))
		if !s.hasSpeaker || who != s.currentSpeaker || day != s.currentDay {
			s.write(fmt.Sprintf("<p class=\"%s\">%s</p>\n", markup.ClassName, who))
			s.currentSpeaker = who
			s.hasSpeaker = true
		}
	}
	s.currentDay = day

	return c.renderBody(s, msg)
}

// dump writes the debug listings requested by levels 10 and 11.
func (c *Conversation) dump(s *Session) {
	switch c.debug {
	case 10:
		ids := make([]int64, 0, len(c.handles))
		for id := range c.handles {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			s.write(fmt.Sprintf("<p>handle %d = %s</p>\n", id, html.EscapeString(c.handles[id])))
		}
	case 11:
		if c.resolver == nil {
			return
		}
		ix := c.resolver.Index()
		for _, name := range ix.Names() {
			s.write(fmt.Sprintf("<p>root=%s, f=%s</p>\n", html.EscapeString(ix[name]), html.EscapeString(name)))
		}
	}
}
