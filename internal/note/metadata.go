// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/happyref/internal/filename"
	"github.com/pdiddy/happyref/pkg/types"
)

// Tag marks notes created by happyref.
const Tag = "CreatedBy/HappyRef"

const delimiter = "---"

// ErrMissingMetadataBlock is returned when a document does not start with a
// "---" delimited metadata block.
var ErrMissingMetadataBlock = errors.New("document has no metadata block")

// metadata mirrors the keys of the metadata block.
type metadata struct {
	Tags      []string `yaml:"tags"`
	Authors   []string `yaml:"authors"`
	Journal   string   `yaml:"journal"`
	Volume    string   `yaml:"volume"`
	Page      string   `yaml:"page"`
	Issue     string   `yaml:"issue"`
	Published string   `yaml:"published"`
	DOI       string   `yaml:"doi"`
	Type      string   `yaml:"type"`
	URL       string   `yaml:"url"`
	ISBN      string   `yaml:"isbn"`
	Accessed  string   `yaml:"accessed"`
}

// MetadataBlock renders the metadata block for rec, delimiters included.
// Keys are always written in the same order and absent fields are left out.
func MetadataBlock(rec types.Record) string {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	b.WriteString("tags: [" + Tag + "]\n")

	if names := authorNames(rec.Authors); len(names) > 0 {
		b.WriteString("authors: " + jsonList(names) + "\n")
	}
	field(&b, "journal", rec.Journal())
	field(&b, "volume", rec.Volume)
	field(&b, "page", rec.Page)
	field(&b, "issue", rec.Issue)
	field(&b, "published", rec.Issued.String())
	field(&b, "doi", rec.DOI)
	field(&b, "type", rec.WorkType)
	field(&b, "url", rec.URL)
	field(&b, "isbn", rec.FirstISBN())
	field(&b, "accessed", rec.DateAccessed)

	b.WriteString(delimiter + "\n")
	return b.String()
}

func authorNames(authors []types.Author) []string {
	var names []string
	for _, a := range authors {
		if n := a.FullName(); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// jsonList encodes names as a JSON array without HTML escaping.
func jsonList(names []string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(names); err != nil {
		return "[]"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// field writes one key. Invalid UTF-8 is replaced so the block stays
// parseable.
func field(b *strings.Builder, key, value string) {
	value = strings.TrimSpace(strings.ToValidUTF8(value, "\uFFFD"))
	if value == "" {
		return
	}
	b.WriteString(key + ": " + scalar(value) + "\n")
}

// scalar writes value as a plain YAML scalar, or double-quoted when a plain
// scalar would be misread.
func scalar(value string) string {
	if needsQuoting(value) {
		return strconv.Quote(value)
	}
	return value
}

func needsQuoting(s string) bool {
	if strings.ContainsAny(s[:1], "-?:,[]{}#&*!|>'\"%@`") {
		return true
	}
	if strings.ContainsAny(s, "\n\r\t") || strings.Contains(s, ": ") || strings.Contains(s, " #") || strings.HasSuffix(s, ":") {
		return true
	}
	switch strings.ToLower(s) {
	case "~", "null", "true", "false", "yes", "no", "on", "off":
		return true
	}
	return false
}

// splitDocument separates the metadata block from the body. block is the
// text between the delimiters; body is everything after the closing
// delimiter line.
func splitDocument(doc string) (block, body string, err error) {
	first, rest, ok := strings.Cut(doc, "\n")
	if !ok || strings.TrimRight(first, "\r") != delimiter {
		return "", "", ErrMissingMetadataBlock
	}
	offset := 0
	for {
		line, tail, more := strings.Cut(rest[offset:], "\n")
		if strings.TrimRight(line, "\r") == delimiter {
			return rest[:offset], tail, nil
		}
		if !more {
			return "", "", ErrMissingMetadataBlock
		}
		offset += len(line) + 1
	}
}

func parseMetadata(block string) (metadata, error) {
	var m metadata
	if err := yaml.Unmarshal([]byte(block), &m); err != nil {
		return metadata{}, fmt.Errorf("parsing metadata block: %w", err)
	}
	return m, nil
}

// RecordFromDocument recovers the bibliographic record stored in a note:
// metadata block fields plus the title heading. A heading of "Untitled"
// is treated as a missing title.
func RecordFromDocument(doc string) (types.Record, error) {
	block, body, err := splitDocument(doc)
	if err != nil {
		return types.Record{}, err
	}
	m, err := parseMetadata(block)
	if err != nil {
		return types.Record{}, err
	}

	rec := types.Record{
		Volume:       m.Volume,
		Issue:        m.Issue,
		Page:         m.Page,
		DOI:          m.DOI,
		WorkType:     m.Type,
		URL:          m.URL,
		DateAccessed: m.Accessed,
		Issued:       parseDate(m.Published),
	}
	for _, name := range m.Authors {
		if a := parseAuthorName(name); a != (types.Author{}) {
			rec.Authors = append(rec.Authors, a)
		}
	}
	if m.Journal != "" {
		rec.ContainerTitle = []string{m.Journal}
	}
	if m.ISBN != "" {
		rec.ISBN = []string{m.ISBN}
	}
	if title := heading(body); title != "" && title != filename.Untitled {
		rec.Title = []string{title}
	}
	return rec, nil
}

// parseAuthorName splits "Given Family" on the last space. A single token
// is taken as the family name.
func parseAuthorName(name string) types.Author {
	name = strings.TrimSpace(name)
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return types.Author{Family: name}
	}
	return types.Author{Given: name[:idx], Family: name[idx+1:]}
}

// parseDate reads YYYY[-MM[-DD]]. Unparsable parts are dropped.
func parseDate(s string) *types.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var d types.Date
	for i, part := range strings.SplitN(s, "-", 3) {
		n, err := strconv.Atoi(part)
		if err != nil {
			break
		}
		switch i {
		case 0:
			d.Year = n
		case 1:
			d.Month = n
		case 2:
			d.Day = n
		}
	}
	return &d
}

// heading returns the text of the first "# " line in body.
func heading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if t, ok := strings.CutPrefix(strings.TrimRight(line, "\r"), "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return ""
}
