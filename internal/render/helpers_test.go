package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/forbes3100/macbak/internal/archivetest"
	"github.com/forbes3100/macbak/internal/attachments"
	"github.com/forbes3100/macbak/internal/backend"
	"github.com/forbes3100/macbak/internal/media"
	"github.com/forbes3100/macbak/internal/models"
	"github.com/stretchr/testify/require"
)

const prefix = "~/Library/Messages/"

type lookup struct {
	messageID int64
	ordinal   int
}

type fakeArchive struct {
	messages    []models.Message
	attachments map[int64][]models.Attachment
	lookups     []lookup
}

func (f *fakeArchive) ListMessages() ([]models.Message, error) {
	return f.messages, nil
}

func (f *fakeArchive) GetAttachment(messageID int64, ordinal int) (models.Attachment, error) {
	f.lookups = append(f.lookups, lookup{messageID, ordinal})
	list := f.attachments[messageID]
	if ordinal >= len(list) {
		return models.Attachment{}, fmt.Errorf("message %d, attachment %d: %w", messageID, ordinal, backend.ErrNotFound)
	}
	a := list[ordinal]
	a.MessageID = messageID
	a.Ordinal = ordinal
	return a, nil
}

type fakeConverter struct{ calls int }

func (f *fakeConverter) Convert(src, dst string) error {
	f.calls++
	return os.WriteFile(dst, []byte("jpeg"), 0644)
}

func libraryFile(t *testing.T, root, rel string) models.Attachment {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte("data"), 0644))
	return models.Attachment{
		Filename:     archivetest.Text(prefix + rel),
		MimeType:     archivetest.Text(mimeFor(rel)),
		TransferName: archivetest.Text(filepath.Base(rel)),
	}
}

func mimeFor(rel string) string {
	switch filepath.Ext(rel) {
	case ".m4a":
		return "audio/x-m4a"
	case ".HEIC":
		return "image/heic"
	default:
		return "image/jpeg"
	}
}

type harness struct {
	root    string
	archive *fakeArchive
	conv    *fakeConverter
	c       *Conversation
}

func newHarness(t *testing.T, handles map[int64]string, debug int) *harness {
	t.Helper()
	h := &harness{
		root:    t.TempDir(),
		archive: &fakeArchive{attachments: map[int64][]models.Attachment{}},
		conv:    &fakeConverter{},
	}
	resolver := attachments.NewResolver(attachments.Options{
		Root:           h.root,
		AttachmentsDir: "Attachments",
		Prefix:         prefix,
	})
	renderer := media.NewRenderer(media.Options{Root: h.root, OutputDir: h.root, Converter: h.conv, Debug: debug})
	h.c = NewConversation(Options{
		Archive:  h.archive,
		Handles:  handles,
		Resolver: resolver,
		Media:    renderer,
		Debug:    debug,
	})
	return h
}

func (h *harness) render(t *testing.T, year int) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := h.c.Render(&buf, year)
	require.NoError(t, err)
	return buf.String()
}

func msg(id int64, date string, handle int64, text string) models.Message {
	m := models.Message{ID: id, GUID: fmt.Sprint(id), Date: date, HandleID: handle, Service: "iMessage"}
	if text != "" {
		m.Text = archivetest.Text(text)
	}
	return m
}
