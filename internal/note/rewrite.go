// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"strings"

	"github.com/pdiddy/happyref/pkg/types"
)

// Rewrite regenerates the metadata block of doc from rec and leaves the
// body byte-for-byte unchanged. When rec has no access date the stored one
// is kept.
func Rewrite(doc string, rec types.Record) (string, error) {
	block, body, err := splitDocument(doc)
	if err != nil {
		return "", err
	}
	if rec.DateAccessed == "" {
		if m, err := parseMetadata(block); err == nil {
			rec.DateAccessed = m.Accessed
		}
	}
	return MetadataBlock(rec) + body, nil
}

// ReplaceCitationSection puts cit into the "## Citation" section of doc.
// An existing section is replaced in place; otherwise a new one is appended
// and doc is kept as a prefix of the result. An empty cit removes the
// section.
func ReplaceCitationSection(doc, cit string) string {
	start, end, ok := findCitationSection(doc)
	if !ok {
		if cit == "" {
			return doc
		}
		if !strings.HasSuffix(doc, "\n") {
			doc += "\n"
		}
		return doc + "\n" + citationSection(cit)
	}

	rest := doc[end:]
	if cit == "" {
		return doc[:start] + strings.TrimPrefix(rest, "\n")
	}
	section := citationSection(cit)
	if strings.HasPrefix(rest, "## ") {
		section += "\n"
	}
	return doc[:start] + section + rest
}

// findCitationSection locates the citation heading and the end of its
// section: just past the closing "---" line, or at the next "## " heading,
// or at the end of doc.
func findCitationSection(doc string) (start, end int, ok bool) {
	start = -1
	pos := 0
	for pos < len(doc) {
		line, next := lineAt(doc, pos)
		t := strings.TrimRight(line, "\r")
		switch {
		case start < 0:
			if t == citationHeading {
				start = pos
			}
		case t == delimiter:
			return start, next, true
		case strings.HasPrefix(t, "## "):
			return start, pos, true
		}
		pos = next
	}
	if start < 0 {
		return 0, 0, false
	}
	return start, len(doc), true
}

// lineAt returns the line starting at pos, without its newline, and the
// offset of the following line.
func lineAt(doc string, pos int) (string, int) {
	line, _, found := strings.Cut(doc[pos:], "\n")
	if !found {
		return line, len(doc)
	}
	return line, pos + len(line) + 1
}
