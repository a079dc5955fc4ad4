package markup

import (
	"fmt"
	"strings"
)

// Style is the set of class attributes used for one message's fragments.
// Each field is either empty or a complete attribute with a leading space,
// ready to splice into a tag: "<p" + s.Text + ">".
type Style struct {
	Container string
	Flex      string
	Text      string
	Info      string
	Image     string
}

func class(name string) string {
	return fmt.Sprintf(` class="%s"`, name)
}

// NewStyle picks the classes for a message: the owner's messages are pushed
// right in blue bubbles, or green ones when sent over SMS.
func NewStyle(fromMe bool, service string) Style {
	if !fromMe {
		return Style{
			Container: class(ClassContainer),
			Info:      class(ClassInfo),
		}
	}
	bubble := ClassMyText
	if service == "SMS" {
		bubble = ClassMySMSText
	}
	return Style{
		Container: class(ClassMyContainer),
		Flex:      ` style="display: flex; justify-content: flex-end"`,
		Text:      class(bubble),
		Info:      class(ClassMyInfo),
		Image:     class(ClassMyContainer),
	}
}

// Note formats an informational line; body is written as is.
func (s Style) Note(body string) string {
	return fmt.Sprintf("<p%s>%s</p>\n", s.Info, body)
}

// Bubble wraps already formatted text in the message containers.
func (s Style) Bubble(body string) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("<div%s><div%s>\n", s.Container, s.Flex))
	sb.WriteString(fmt.Sprintf("<p%s>%s</p>\n", s.Text, body))
	sb.WriteString("</div></div>\n")
	return sb.String()
}
