package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FormatDuration renders seconds as HH:MM:SS. Negative values render as zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// StripHTML removes tags and decodes entities, collapsing whitespace.
func StripHTML(s string) string {
	text := htmlTagPattern.ReplaceAllString(s, " ")
	text = html.UnescapeString(text)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// ExportFileName builds a download name from a test title.
func ExportFileName(title, ext string) string {
	name := whitespacePattern.ReplaceAllString(strings.TrimSpace(title), "_")
	if name == "" {
		name = "test"
	}
	return name + "_results." + ext
}
