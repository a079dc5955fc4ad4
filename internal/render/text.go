package render

import (
	"fmt"
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/forbes3100/macbak/internal/markup"
	"github.com/kyokomi/emoji/v2"
)

var (
	emojiOnce     sync.Once
	emojiAliases  map[string]string
	emojiMaxRunes int
)

func loadEmoji() {
	emojiAliases = map[string]string{}
	for glyph, aliases := range emoji.RevCodeMap() {
		glyph = strings.TrimSpace(glyph)
		if glyph == "" || len(aliases) == 0 {
			continue
		}
		if _, ok := emojiAliases[glyph]; ok {
			continue
		}
		emojiAliases[glyph] = aliases[0]
		if n := utf8.RuneCountInString(glyph); n > emojiMaxRunes {
			emojiMaxRunes = n
		}
	}
}

// matchEmoji returns the alias and rune length of the longest emoji starting
// at runes[i], or a zero length.
func matchEmoji(runes []rune, i int) (string, int) {
	if runes[i] < utf8.RuneSelf && (i+1 >= len(runes) || runes[i+1] < utf8.RuneSelf) {
		return "", 0
	}
	emojiOnce.Do(loadEmoji)
	n := emojiMaxRunes
	if rest := len(runes) - i; n > rest {
		n = rest
	}
	for ; n > 0; n-- {
		if alias, ok := emojiAliases[string(runes[i:i+n])]; ok {
			return alias, n
		}
	}
	return "", 0
}

func writeCharRefs(sb *strings.Builder, runes []rune) {
	for _, r := range runes {
		if r < utf8.RuneSelf {
			sb.WriteRune(r)
		} else {
			fmt.Fprintf(sb, "&#%d;", r)
		}
	}
}

// FormatText turns message text into ASCII-only markup: HTML is escaped,
// emoji are wrapped in a titled span, every other non-ASCII rune becomes a
// numeric character reference, and newlines become <br>.
func FormatText(text string) string {
	runes := []rune(html.EscapeString(text))
	sb := strings.Builder{}
	for i := 0; i < len(runes); {
		if alias, n := matchEmoji(runes, i); n > 0 {
			fmt.Fprintf(&sb, `<span class="%s" title="%s">`, markup.ClassEmoji, html.EscapeString(alias))
			writeCharRefs(&sb, runes[i:i+n])
			sb.WriteString("</span>")
			i += n
			continue
		}
		if runes[i] == '\n' {
			sb.WriteString("<br>")
		} else {
			writeCharRefs(&sb, runes[i:i+1])
		}
		i++
	}
	return sb.String()
}
