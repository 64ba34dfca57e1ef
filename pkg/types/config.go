// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// CitationStyle names a human-readable citation convention.
type CitationStyle string

const (
	StyleHarvard   CitationStyle = "harvard"
	StyleVancouver CitationStyle = "vancouver"
	StyleAPA       CitationStyle = "apa"
	StyleChicago   CitationStyle = "chicago"
	StyleAMA       CitationStyle = "ama"
	StyleAP        CitationStyle = "ap"
	StyleCanadian  CitationStyle = "canadian"
	StyleOxford    CitationStyle = "oxford"
	StyleNone      CitationStyle = "none"
)

// CitationStyles lists every style in display order.
var CitationStyles = []CitationStyle{
	StyleHarvard, StyleVancouver, StyleAPA, StyleChicago,
	StyleAMA, StyleAP, StyleCanadian, StyleOxford, StyleNone,
}

// DisplayName returns the conventional capitalised name of the style
// (e.g. "Harvard", "APA").
func (s CitationStyle) DisplayName() string {
	switch s {
	case StyleHarvard:
		return "Harvard"
	case StyleVancouver:
		return "Vancouver"
	case StyleAPA:
		return "APA"
	case StyleChicago:
		return "Chicago"
	case StyleAMA:
		return "AMA"
	case StyleAP:
		return "AP"
	case StyleCanadian:
		return "Canadian"
	case StyleOxford:
		return "Oxford"
	case StyleNone:
		return "None"
	default:
		return string(s)
	}
}

// ParseCitationStyle accepts a style name in any case ("APA", "apa").
// The empty string parses as Harvard.
func ParseCitationStyle(s string) (CitationStyle, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StyleHarvard, nil
	}
	for _, st := range CitationStyles {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown citation style %q", s)
}

// FilenameStyle selects how a note's base filename is derived.
type FilenameStyle string

const (
	FilenameTitle      FilenameStyle = "title"
	FilenameAuthor     FilenameStyle = "author"
	FilenameAuthorYear FilenameStyle = "author_year"
)

// ParseFilenameStyle accepts "title", "author", "author_year" (also
// "author-year" and "authoryear"). The empty string parses as title.
func ParseFilenameStyle(s string) (FilenameStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "title":
		return FilenameTitle, nil
	case "author":
		return FilenameAuthor, nil
	case "author_year", "author-year", "authoryear":
		return FilenameAuthorYear, nil
	default:
		return "", fmt.Errorf("unknown filename style %q", s)
	}
}

// HTTPConfig holds shared HTTP settings for registry requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "happyref/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RegistryConfig holds settings for the bibliographic registry client.
type RegistryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Mailto is sent with each request to join the registry's polite pool.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// PlusToken is an optional paid-tier API token.
	PlusToken string `json:"plus_token,omitempty" yaml:"plus_token,omitempty"`

	// RequestInterval is the minimum spacing between consecutive lookups
	// in a batch (default 1s).
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`

	// MaxRetries bounds retries on HTTP 429 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// NoteConfig holds the user-facing note settings. It is passed by value
// into the renderer, filename deriver and path resolver.
type NoteConfig struct {
	// DefaultFolder is the vault-relative folder for new notes; empty
	// means the vault root.
	DefaultFolder string `json:"default_folder" yaml:"default_folder"`

	// CitationStyle selects the citation rendered into new notes.
	CitationStyle CitationStyle `json:"citation_style" yaml:"citation_style"`

	// FilenameStyle selects how note filenames are derived.
	FilenameStyle FilenameStyle `json:"filename_style" yaml:"filename_style"`
}
