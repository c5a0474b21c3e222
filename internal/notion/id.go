package notion

import (
	"net/url"
	"strings"
)

const pageIDLength = 32

// ExtractPageID pulls a page id out of a Notion URL, a page slug or a
// hyphenated UUID. Input without a recognisable id is returned trimmed.
func ExtractPageID(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if u, err := url.Parse(s); err == nil && u.Host != "" {
		s = strings.TrimRight(u.Path, "/")
		if i := strings.LastIndex(s, "/"); i >= 0 {
			s = s[i+1:]
		}
	}

	compact := strings.ReplaceAll(s, "-", "")
	if len(compact) < pageIDLength {
		return strings.TrimSpace(input)
	}
	candidate := compact[len(compact)-pageIDLength:]
	if !isHex(candidate) {
		return strings.TrimSpace(input)
	}
	return strings.ToLower(candidate)
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
