// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/happyref/pkg/types"
)

// ExportJSON writes every entry, oldest first, as an indented JSON array.
func (l *Ledger) ExportJSON(ctx context.Context, w io.Writer) error {
	entries, err := l.exportEntries(ctx)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form,
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title,omitempty"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	Accessed       string    `yaml:"accessed,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	ISBN           string    `yaml:"ISBN,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// ExportCSL writes every entry, oldest first, as a CSL-YAML list.
func (l *Ledger) ExportCSL(ctx context.Context, w io.Writer) error {
	entries, err := l.exportEntries(ctx)
	if err != nil {
		return err
	}
	items := make([]CSLItem, len(entries))
	for i, e := range entries {
		items[i] = toCSLItem(e)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("marshaling CSL: %w", err)
	}
	return nil
}

func (l *Ledger) exportEntries(ctx context.Context) ([]Entry, error) {
	entries, err := l.List(ctx, ListOptions{Limit: -1})
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// cslTypes maps Crossref work types to CSL item types.
var cslTypes = map[string]string{
	"journal-article":     "article-journal",
	"book":                "book",
	"monograph":           "book",
	"edited-book":         "book",
	"book-chapter":        "chapter",
	"proceedings-article": "paper-conference",
	"posted-content":      "article",
	"dissertation":        "thesis",
	"report":              "report",
	"dataset":             "dataset",
}

func toCSLItem(e Entry) CSLItem {
	rec := e.Record
	item := CSLItem{
		ID:             e.Identifier,
		Type:           "article",
		Title:          rec.FirstTitle(),
		ContainerTitle: rec.Journal(),
		Publisher:      rec.Publisher,
		Accessed:       rec.DateAccessed,
		Volume:         rec.Volume,
		Issue:          rec.Issue,
		Page:           rec.Page,
		DOI:            rec.DOI,
		ISBN:           rec.FirstISBN(),
		URL:            rec.URL,
	}
	if t, ok := cslTypes[rec.WorkType]; ok {
		item.Type = t
	}
	if item.ID == "" {
		item.ID = e.Path
	}
	for _, a := range rec.Authors {
		item.Author = append(item.Author, toCSLName(a))
	}
	if d := issuedParts(rec); d != nil {
		item.Issued = &CSLDate{DateParts: [][]int{d}}
	}
	return item
}

// toCSLName uses the literal field for single-token names.
func toCSLName(a types.Author) CSLName {
	if a.Given == "" {
		return CSLName{Literal: a.Family}
	}
	return CSLName{Family: a.Family, Given: a.Given}
}

func issuedParts(rec types.Record) []int {
	for _, d := range []*types.Date{rec.Issued, rec.PublishedPrint, rec.PublishedOnline, rec.Created} {
		if d == nil || d.Year == 0 {
			continue
		}
		parts := []int{d.Year}
		if d.Month > 0 {
			parts = append(parts, d.Month)
			if d.Day > 0 {
				parts = append(parts, d.Day)
			}
		}
		return parts
	}
	return nil
}
