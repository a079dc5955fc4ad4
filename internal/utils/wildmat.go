package utils

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Wildmat is a comma-separated list of glob patterns, each optionally negated
// with a leading '!'. The last pattern that matches a name decides the result.
type Wildmat struct {
	patterns []*WildmatPattern
}

type WildmatPattern struct {
	negated bool
	pattern string
	regex   *regexp2.Regexp
}

func regexpEscape(str string) string {
	var sb strings.Builder
	for _, r := range str {
		if strings.ContainsRune(`\.+()|{}[]^$#`, r) {
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func convertWildmatToRegex(pat string) (*regexp2.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")
	for _, v := range regexpEscape(pat) {
		switch v {
		case '?':
			sb.WriteString(".")
		case '*':
			sb.WriteString(".*")
		default:
			sb.WriteRune(v)
		}
	}
	sb.WriteString("$")
	return regexp2.Compile(sb.String(), regexp2.None)
}

// ParseWildmat compiles a wildmat. An empty string yields a wildmat that
// matches nothing.
func ParseWildmat(wildmat string) (*Wildmat, error) {
	res := &Wildmat{}
	for _, v := range strings.Split(wildmat, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		negated := v[0] == '!'
		if negated {
			v = v[1:]
		}
		r, err := convertWildmatToRegex(v)
		if err != nil {
			return nil, err
		}
		res.patterns = append(res.patterns, &WildmatPattern{pattern: v, negated: negated, regex: r})
	}
	return res, nil
}

func (w *Wildmat) Match(name string) bool {
	if w == nil {
		return false
	}
	matched := false
	for _, p := range w.patterns {
		ok, err := p.regex.MatchString(name)
		if err != nil || !ok {
			continue
		}
		matched = !p.negated
	}
	return matched
}
