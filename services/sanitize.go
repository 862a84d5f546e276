package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// documentPolicy allows the formatting the back office editor produces.
// A bluemonday policy is safe for concurrent use once built.
var documentPolicy = bluemonday.UGCPolicy()

// SanitizeHTML strips anything but safe formatting from backend HTML
func SanitizeHTML(content string) string {
	return documentPolicy.Sanitize(content)
}

// DocumentHTML turns a backend content field into safe HTML. Fields holding
// markup are sanitized; plain text becomes paragraphs, one per blank-line
// separated block, with single newlines kept as line breaks.
func DocumentHTML(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	if looksLikeHTML(content) {
		return SanitizeHTML(content)
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	var b strings.Builder
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(line))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

// looksLikeHTML reports whether s contains an element tag
func looksLikeHTML(s string) bool {
	for i := strings.IndexByte(s, '<'); i >= 0 && i+1 < len(s); {
		c := s[i+1]
		if c == '/' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
		next := strings.IndexByte(s[i+1:], '<')
		if next < 0 {
			return false
		}
		i += next + 1
	}
	return false
}
