// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"strings"

	"github.com/pdiddy/happyref/pkg/types"
)

// Crossref API JSON structures.
type workResponse struct {
	Message crossrefWork `json:"message"`
}

type listResponse struct {
	Message struct {
		TotalResults int            `json:"total-results"`
		Items        []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	Title           []string         `json:"title"`
	Author          []crossrefAuthor `json:"author"`
	ContainerTitle  []string         `json:"container-title"`
	Publisher       string           `json:"publisher"`
	Issued          *crossrefDate    `json:"issued"`
	PublishedPrint  *crossrefDate    `json:"published-print"`
	PublishedOnline *crossrefDate    `json:"published-online"`
	Created         *crossrefDate    `json:"created"`
	DOI             string           `json:"DOI"`
	URL             string           `json:"URL"`
	Volume          string           `json:"volume"`
	Issue           string           `json:"issue"`
	Page            string           `json:"page"`
	Type            string           `json:"type"`
	ISBN            []string         `json:"ISBN"`
	Abstract        string           `json:"abstract"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	// Name is set instead of Given/Family for organisations.
	Name string `json:"name"`
}

// crossrefDate holds date-parts such as [[2015, 5, 27]]. Parts may be null.
type crossrefDate struct {
	DateParts [][]*int `json:"date-parts"`
}

// date converts the first date-parts entry. A present date with no usable
// parts yields a Date with Year 0.
func (d *crossrefDate) date() *types.Date {
	if d == nil {
		return nil
	}
	out := &types.Date{}
	if len(d.DateParts) == 0 {
		return out
	}
	for i, p := range d.DateParts[0] {
		if p == nil {
			break
		}
		switch i {
		case 0:
			out.Year = *p
		case 1:
			out.Month = *p
		case 2:
			out.Day = *p
		}
	}
	return out
}

func (w crossrefWork) record() types.Record {
	rec := types.Record{
		Title:           collapseAll(w.Title),
		ContainerTitle:  collapseAll(w.ContainerTitle),
		Publisher:       collapseSpace(w.Publisher),
		Issued:          w.Issued.date(),
		PublishedPrint:  w.PublishedPrint.date(),
		PublishedOnline: w.PublishedOnline.date(),
		Created:         w.Created.date(),
		DOI:             strings.TrimSpace(w.DOI),
		URL:             strings.TrimSpace(w.URL),
		Volume:          strings.TrimSpace(w.Volume),
		Issue:           strings.TrimSpace(w.Issue),
		Page:            strings.TrimSpace(w.Page),
		WorkType:        w.Type,
		ISBN:            trimAll(w.ISBN),
		Abstract:        w.Abstract,
	}
	for _, a := range w.Author {
		author := types.Author{Given: collapseSpace(a.Given), Family: collapseSpace(a.Family)}
		if author.Family == "" && author.Given == "" {
			author.Family = collapseSpace(a.Name)
		}
		if author != (types.Author{}) {
			rec.Authors = append(rec.Authors, author)
		}
	}
	return rec
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// collapseAll is trimAll with runs of whitespace inside each entry,
// newlines included, folded into a single space.
func collapseAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = collapseSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi.org/",
	"doi:",
}

// NormalizeDOI trims whitespace and strips resolver URL and "doi:"
// prefixes. The DOI itself is not validated.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	lower := strings.ToLower(doi)
	for _, p := range doiPrefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(doi[len(p):])
		}
	}
	return doi
}

// NormalizeISBN strips an "ISBN" or "ISBN:" prefix, hyphens and spaces.
// The checksum is not validated.
func NormalizeISBN(isbn string) string {
	isbn = strings.TrimSpace(isbn)
	if len(isbn) >= 4 && strings.EqualFold(isbn[:4], "isbn") {
		isbn = strings.TrimPrefix(isbn[4:], ":")
	}
	return strings.NewReplacer("-", "", " ", "").Replace(isbn)
}

// Normalize applies the normaliser for kind.
func Normalize(kind IdentifierKind, value string) string {
	if kind == KindISBN {
		return NormalizeISBN(value)
	}
	return NormalizeDOI(value)
}
