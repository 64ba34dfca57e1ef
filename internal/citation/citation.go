// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation renders bibliographic records as human-readable
// citations in one of eight styles.
// Implements: Citation Formatter (format dispatch, per-style author-join
// rules, fail-closed diagnostics).
package citation

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/happyref/pkg/types"
)

const diagnosticPrefix = "Could not generate"

// parts holds the record fields a layout needs, already extracted and
// trimmed. Authors is the joined author list for the style.
type parts struct {
	Authors  string
	Year     int
	Title    string
	Journal  string
	Volume   string
	Issue    string
	Page     string
	DOI      string
	URL      string
	Accessed string // YYYY-MM-DD or free text
}

// policy describes one citation style: how a single author is written, how
// the list is joined (including any et-al truncation), and how the pieces
// are laid out.
type policy struct {
	author func(types.Author) string
	join   func([]string) string
	layout func(parts) string
}

var policies = map[types.CitationStyle]policy{
	types.StyleHarvard:   {author: familyInitial, join: commaJoin, layout: harvard},
	types.StyleVancouver: {author: familySpaceInitial, join: vancouverJoin, layout: vancouver},
	types.StyleAPA:       {author: familyInitial, join: apaJoin, layout: apa},
	types.StyleChicago:   {author: fullName, join: chicagoJoin, layout: chicago},
	types.StyleAMA:       {author: familyWordInitials, join: commaJoin, layout: ama},
	types.StyleAP:        {author: familyInitial, join: commaJoin, layout: ap},
	types.StyleCanadian:  {author: fullName, join: andJoin, layout: canadian},
	types.StyleOxford:    {author: fullName, join: oxfordJoin, layout: oxford},
}

// Format renders rec in the given style. It never fails: when the record
// lacks authors, issued date, title or container title it returns the
// "missing data" diagnostic, and when the issued date has no year it
// returns the "missing year data" diagnostic. StyleNone and unknown styles
// yield the empty string.
func Format(rec types.Record, style types.CitationStyle) string {
	p, ok := policies[style]
	if !ok {
		return ""
	}
	if !rec.HasCitationFields() {
		return missingData(style)
	}
	if rec.IssuedYear() == 0 {
		return missingYearData(style)
	}

	names := make([]string, 0, len(rec.Authors))
	for _, a := range rec.Authors {
		if n := p.author(a); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return missingData(style)
	}

	return p.layout(parts{
		Authors:  p.join(names),
		Year:     rec.IssuedYear(),
		Title:    rec.FirstTitle(),
		Journal:  rec.Journal(),
		Volume:   strings.TrimSpace(rec.Volume),
		Issue:    strings.TrimSpace(rec.Issue),
		Page:     strings.TrimSpace(rec.Page),
		DOI:      strings.TrimSpace(rec.DOI),
		URL:      strings.TrimSpace(rec.URL),
		Accessed: strings.TrimSpace(rec.DateAccessed),
	})
}

// IsDiagnostic reports whether s is a formatter diagnostic rather than a
// citation.
func IsDiagnostic(s string) bool {
	return strings.HasPrefix(s, diagnosticPrefix)
}

func missingData(style types.CitationStyle) string {
	return fmt.Sprintf("%s %s citation due to missing data.", diagnosticPrefix, style.DisplayName())
}

func missingYearData(style types.CitationStyle) string {
	return fmt.Sprintf("%s %s citation due to missing year data.", diagnosticPrefix, style.DisplayName())
}

// doiLink returns the resolver URL for a DOI, tolerating values that
// already carry a resolver prefix.
func doiLink(doi string) string {
	for _, p := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/"} {
		doi = strings.TrimPrefix(doi, p)
	}
	return "https://doi.org/" + doi
}

// terminate appends a period unless s already ends with sentence
// punctuation.
func terminate(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!") {
		return s
	}
	return s + "."
}

// accessedOn renders a stored YYYY-MM-DD access date with the given time
// layout. Values that do not parse are returned verbatim.
func accessedOn(raw, layout string) string {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return raw
	}
	return t.Format(layout)
}

const (
	dayMonthYear = "2 January 2006"
	monthDayYear = "January 2, 2006"
)
