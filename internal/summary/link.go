package summary

import (
	"errors"
	"strings"
)

var (
	errNotLink       = errors.New("not a link")
	errUnclosedName  = errors.New("unclosed link text")
	errMissingTarget = errors.New("link text is not followed by a target")
	errUnclosedPath  = errors.New("unclosed link target")
	errTrailingText  = errors.New("unexpected text after link")
	errEmptyName     = errors.New("link has an empty name")
)

// parseLink parses s, which must consist of exactly one inline link
// `[name](path)`. Brackets and parentheses may nest and be escaped with a
// backslash. The path may be empty or wrapped in angle brackets.
func parseLink(s string) (name, path string, err error) {
	if !strings.HasPrefix(s, "[") {
		return "", "", errNotLink
	}

	end := matchClosing(s, 0, '[', ']')
	if end < 0 {
		return "", "", errUnclosedName
	}
	if end+1 >= len(s) || s[end+1] != '(' {
		return "", "", errMissingTarget
	}

	pathEnd := matchClosing(s, end+1, '(', ')')
	if pathEnd < 0 {
		return "", "", errUnclosedPath
	}
	if strings.TrimSpace(s[pathEnd+1:]) != "" {
		return "", "", errTrailingText
	}

	name = strings.TrimSpace(unescape(s[1:end]))
	if name == "" {
		return "", "", errEmptyName
	}

	path = strings.TrimSpace(s[end+2 : pathEnd])
	if strings.HasPrefix(path, "<") && strings.HasSuffix(path, ">") {
		path = strings.TrimSpace(path[1 : len(path)-1])
	}
	return name, path, nil
}

// matchClosing returns the index of the delimiter closing the one at
// s[open], or -1.
func matchClosing(s string, open int, left, right byte) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case left:
			depth++
		case right:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// looksLikeLink reports whether s carries link syntax that should have
// parsed, so a broken link is not mistaken for prose.
func looksLikeLink(s string) bool {
	return strings.Contains(s, "](") || strings.HasPrefix(s, "[")
}
