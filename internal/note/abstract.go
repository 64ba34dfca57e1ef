// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"regexp"
	"strings"
)

// NoAbstract is written when the record carries no abstract.
const NoAbstract = "No abstract available."

var (
	jatsTitle     = regexp.MustCompile(`(?s)<jats:title>.*?</jats:title>`)
	jatsParagraph = regexp.MustCompile(`</jats:p>\s*<jats:p[^>]*>`)
	jatsTag       = regexp.MustCompile(`</?jats:[^>]*>`)
	blankRun      = regexp.MustCompile(`\n{3,}`)
)

// SanitizeAbstract turns a JATS-marked abstract into plain text. Section
// titles are dropped, paragraph boundaries become blank lines, and
// remaining tags are stripped. Tabs become spaces; literal "\t" escapes are
// removed.
func SanitizeAbstract(raw string) string {
	s := jatsTitle.ReplaceAllString(raw, "")
	s = jatsParagraph.ReplaceAllString(s, "\n\n")
	s = jatsTag.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, `\t`, "")
	s = strings.ReplaceAll(s, `\n\n`, "")
	s = blankRun.ReplaceAllString(s, "\n\n")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}
