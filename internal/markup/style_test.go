package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStyle(t *testing.T) {
	other := NewStyle(false, "SMS")
	assert.Equal(t, ` class="c"`, other.Container)
	assert.Equal(t, "", other.Flex)
	assert.Equal(t, "", other.Text)
	assert.Equal(t, ` class="j"`, other.Info)
	assert.Equal(t, "", other.Image)

	me := NewStyle(true, "iMessage")
	assert.Equal(t, ` class="cm"`, me.Container)
	assert.Equal(t, ` class="me"`, me.Text)
	assert.Equal(t, ` class="i"`, me.Info)
	assert.Equal(t, ` class="cm"`, me.Image)
	assert.Contains(t, me.Flex, "flex-end")

	assert.Equal(t, ` class="g"`, NewStyle(true, "SMS").Text)
}

func TestBubbleAndNote(t *testing.T) {
	s := NewStyle(false, "iMessage")
	assert.Equal(t, "<div class=\"c\"><div>\n<p>hi</p>\n</div></div>\n", s.Bubble("hi"))
	assert.Equal(t, "<p class=\"j\">No file!</p>\n", s.Note("No file!"))
}

func TestHeadAndTail(t *testing.T) {
	assert.True(t, strings.Contains(Head, "<html>\n<head>\n"))
	assert.True(t, strings.Contains(Head, "<style>"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(Tail), "</html>"))
}
