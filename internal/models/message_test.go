package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFromMe(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want bool
	}{
		{"flag set", Message{IsFromMe: true, HandleID: 3}, true},
		{"other handle", Message{IsFromMe: false, HandleID: 3}, false},
		{"self handle overrides flag", Message{IsFromMe: false, HandleID: SelfHandleID}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.msg.FromMe())
		})
	}
}

func TestMessageDateParts(t *testing.T) {
	m := Message{Date: "2021-09-05 09:41:17"}
	assert.Equal(t, "2021-09-05", m.Day())
	assert.Equal(t, 2021, m.Year())

	ts, err := m.Time()
	require.NoError(t, err)
	assert.Equal(t, 41, ts.Minute())

	assert.Equal(t, 0, Message{Date: "bad"}.Year())
	assert.Equal(t, "", Message{}.Day())
}

func TestMimeKinds(t *testing.T) {
	assert.True(t, IsAudio("audio/x-m4a"))
	assert.False(t, IsAudio("image/jpeg"))
	assert.True(t, IsImage(MimeHEIC))
	assert.False(t, IsImage(""))
}
