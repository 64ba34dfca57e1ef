// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for happyref.
// Implements: the bibliographic record model, citation and filename style
// enums, and the configuration values threaded through note creation.
package types

import (
	"fmt"
	"strings"
)

// Author is one contributor of a bibliographic record. Either name part may
// be empty.
type Author struct {
	Given  string `json:"given,omitempty" yaml:"given,omitempty"`
	Family string `json:"family,omitempty" yaml:"family,omitempty"`
}

// FullName returns "Given Family", or whichever part is present.
func (a Author) FullName() string {
	return strings.TrimSpace(a.Given + " " + a.Family)
}

// Date is a partial calendar date. Year is zero when the registry supplied
// the date without a year; Month and Day are zero when unknown.
type Date struct {
	Year  int `json:"year,omitempty" yaml:"year,omitempty"`
	Month int `json:"month,omitempty" yaml:"month,omitempty"`
	Day   int `json:"day,omitempty" yaml:"day,omitempty"`
}

// String renders the date as YYYY[-MM[-DD]] with zero padding. A date with
// no year renders as the empty string.
func (d *Date) String() string {
	if d == nil || d.Year == 0 {
		return ""
	}
	s := fmt.Sprintf("%04d", d.Year)
	if d.Month > 0 {
		s += fmt.Sprintf("-%02d", d.Month)
		if d.Day > 0 {
			s += fmt.Sprintf("-%02d", d.Day)
		}
	}
	return s
}

// Record is a bibliographic record as returned by a registry lookup or
// recovered from a note's metadata block. Every field is optional; a nil
// date pointer means the date is absent, a non-nil date with Year 0 means
// the date is present but has no year.
type Record struct {
	Title          []string `json:"title,omitempty" yaml:"title,omitempty"`
	Authors        []Author `json:"authors,omitempty" yaml:"authors,omitempty"`
	ContainerTitle []string `json:"container_title,omitempty" yaml:"container_title,omitempty"`
	Publisher      string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	Issued          *Date `json:"issued,omitempty" yaml:"issued,omitempty"`
	PublishedPrint  *Date `json:"published_print,omitempty" yaml:"published_print,omitempty"`
	PublishedOnline *Date `json:"published_online,omitempty" yaml:"published_online,omitempty"`
	Created         *Date `json:"created,omitempty" yaml:"created,omitempty"`

	DOI      string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	URL      string   `json:"url,omitempty" yaml:"url,omitempty"`
	Volume   string   `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue    string   `json:"issue,omitempty" yaml:"issue,omitempty"`
	Page     string   `json:"page,omitempty" yaml:"page,omitempty"`
	WorkType string   `json:"type,omitempty" yaml:"type,omitempty"`
	ISBN     []string `json:"isbn,omitempty" yaml:"isbn,omitempty"`

	// Abstract may carry JATS markup; sanitize before display.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// DateAccessed is YYYY-MM-DD, set once when the note is rendered.
	DateAccessed string `json:"date_accessed,omitempty" yaml:"date_accessed,omitempty"`
}

// FirstTitle returns the canonical title, or "" when absent.
func (r Record) FirstTitle() string {
	if len(r.Title) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Title[0])
}

// Journal returns the first container title, or "" when absent.
func (r Record) Journal() string {
	if len(r.ContainerTitle) == 0 {
		return ""
	}
	return strings.TrimSpace(r.ContainerTitle[0])
}

// FirstISBN returns the first ISBN, or "" when absent.
func (r Record) FirstISBN() string {
	if len(r.ISBN) == 0 {
		return ""
	}
	return r.ISBN[0]
}

// IssuedYear returns the year of the issued date, or 0.
func (r Record) IssuedYear() int {
	if r.Issued == nil {
		return 0
	}
	return r.Issued.Year
}

// AnyYear probes issued, published-print, published-online and created in
// that order and returns the first year found, or 0.
func (r Record) AnyYear() int {
	for _, d := range []*Date{r.Issued, r.PublishedPrint, r.PublishedOnline, r.Created} {
		if d != nil && d.Year > 0 {
			return d.Year
		}
	}
	return 0
}

// HasCitationFields reports whether the fields every citation style needs
// (authors, issued date, title, container title) are present.
func (r Record) HasCitationFields() bool {
	return len(r.Authors) > 0 && r.Issued != nil && r.FirstTitle() != "" && r.Journal() != ""
}
