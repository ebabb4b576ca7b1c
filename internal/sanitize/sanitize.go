// Package sanitize cleans user supplied comment text before it is persisted.
//
// Both functions are idempotent: they are applied until the output stops
// changing, so markup that only appears after an inner tag is removed
// (e.g. "<scr<b>ipt>") is stripped as well.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptBlock = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	// a tag starts with a letter right after "<" or "</"; "a < b" is text
	tag         = regexp.MustCompile(`</?[A-Za-z][^<>]*>`)
	htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Content removes <script> blocks with their body, HTML comments and any
// remaining tags, then trims surrounding whitespace.
func Content(text string) string {
	return fixpoint(text, func(s string) string {
		s = scriptBlock.ReplaceAllString(s, "")
		s = htmlComment.ReplaceAllString(s, "")
		s = tag.ReplaceAllString(s, "")
		return strings.TrimSpace(s)
	})
}

// Name strips tags from a display name and collapses whitespace runs.
func Name(name string) string {
	return fixpoint(name, func(s string) string {
		s = scriptBlock.ReplaceAllString(s, "")
		s = htmlComment.ReplaceAllString(s, "")
		s = tag.ReplaceAllString(s, "")
		return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	})
}

// fixpoint terminates: after the first pass whitespace is already collapsed,
// so any later change is a removal and shortens the text.
func fixpoint(s string, pass func(string) string) string {
	for {
		next := pass(s)
		if next == s {
			return s
		}
		s = next
	}
}
