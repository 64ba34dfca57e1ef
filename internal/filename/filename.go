// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filename derives filesystem-safe base filenames for notes.
package filename

import (
	"fmt"
	"strings"

	"github.com/pdiddy/happyref/pkg/types"
)

const (
	// Untitled stands in for a missing title or author.
	Untitled = "Untitled"
	// Fallback is used when sanitization leaves nothing.
	Fallback = "Crossref Note"
)

// unsafe replaces each character that is not allowed in note filenames
// with a single space.
var unsafe = strings.NewReplacer(
	"/", " ", `\`, " ", "?", " ", "%", " ", "*", " ",
	":", " ", "|", " ", `"`, " ", "<", " ", ">", " ",
)

// Sanitize replaces unsafe characters with spaces and trims the result.
// An empty result becomes Fallback. Sanitize is idempotent.
func Sanitize(name string) string {
	s := strings.TrimSpace(unsafe.Replace(name))
	if s == "" {
		return Fallback
	}
	return s
}

// Derive returns the sanitized base filename (without extension) for rec.
// It never returns the empty string.
func Derive(rec types.Record, style types.FilenameStyle) string {
	switch style {
	case types.FilenameAuthor:
		return Sanitize(orUntitled(firstFamily(rec)))
	case types.FilenameAuthorYear:
		return Sanitize(authorYear(rec))
	default:
		return Sanitize(orUntitled(rec.FirstTitle()))
	}
}

// authorYear builds "Family[ et al] (Year)", with the year probed across
// every date the record carries.
func authorYear(rec types.Record) string {
	family := firstFamily(rec)
	year := rec.AnyYear()
	if family == "" || year == 0 {
		return Untitled
	}
	if len(rec.Authors) > 1 {
		family += " et al"
	}
	return fmt.Sprintf("%s (%d)", family, year)
}

func firstFamily(rec types.Record) string {
	if len(rec.Authors) == 0 {
		return ""
	}
	return strings.TrimSpace(rec.Authors[0].Family)
}

func orUntitled(s string) string {
	if s == "" {
		return Untitled
	}
	return s
}
