// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/happyref/internal/citation"
	"github.com/pdiddy/happyref/internal/vault"
	"github.com/pdiddy/happyref/pkg/types"
)

var (
	// ErrMissingDOI is returned when a note lacks citation fields and has
	// no DOI to fetch them with.
	ErrMissingDOI = errors.New("note is missing citation fields and has no doi")
	// ErrRefetchFailed is returned when the registry lookup for a note's
	// DOI fails or comes back empty.
	ErrRefetchFailed = errors.New("refetching metadata failed")
)

// RestyleState is a step of the restyle flow.
type RestyleState int

const (
	Loaded RestyleState = iota
	MetadataChecked
	ReFetchNeeded
	ReFetched
	Rewritten
)

func (s RestyleState) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case MetadataChecked:
		return "metadata-checked"
	case ReFetchNeeded:
		return "refetch-needed"
	case ReFetched:
		return "refetched"
	case Rewritten:
		return "rewritten"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// RefetchFunc looks up a record by DOI.
type RefetchFunc func(ctx context.Context, doi string) (types.Record, error)

// LookupFunc returns the record the note at p was created from, when one
// was kept.
type LookupFunc func(ctx context.Context, p string) (types.Record, bool)

// RestyleResult reports what Restyle did.
type RestyleResult struct {
	Path     string
	Style    types.CitationStyle
	Citation string
	Record   types.Record
	// Stored is true when the record came from lookup rather than from the
	// note's metadata block.
	Stored bool
	// States lists every state the flow passed through, in order.
	States []RestyleState
}

// Refetched reports whether the registry was consulted.
func (r RestyleResult) Refetched() bool {
	for _, s := range r.States {
		if s == ReFetched {
			return true
		}
	}
	return false
}

// Restyle rewrites the note at p with a citation in style. The record kept
// by lookup is preferred over the metadata block, whose author names cannot
// always be split back into given and family parts. When neither carries
// the citation fields the record is fetched again by DOI. The file is
// written only once every earlier step has succeeded; on any error it is
// left untouched. lookup and refetch may be nil.
func Restyle(ctx context.Context, store vault.Store, p string, style types.CitationStyle, lookup LookupFunc, refetch RefetchFunc) (RestyleResult, error) {
	res := RestyleResult{Path: p, Style: style}

	doc, err := store.Read(p)
	if err != nil {
		return res, err
	}
	res.States = append(res.States, Loaded)

	rec, err := RecordFromDocument(doc)
	if err != nil {
		return res, fmt.Errorf("restyling %s: %w", p, err)
	}
	if lookup != nil {
		if stored, ok := lookup(ctx, p); ok && sameWork(stored, rec) {
			if rec.DateAccessed != "" {
				stored.DateAccessed = rec.DateAccessed
			}
			rec = stored
			res.Stored = true
		}
	}
	res.States = append(res.States, MetadataChecked)

	if style != types.StyleNone && !rec.HasCitationFields() {
		res.States = append(res.States, ReFetchNeeded)
		if rec.DOI == "" {
			return res, fmt.Errorf("restyling %s: %w", p, ErrMissingDOI)
		}
		if refetch == nil {
			return res, fmt.Errorf("restyling %s: %w: no registry", p, ErrRefetchFailed)
		}
		fetched, err := refetch(ctx, rec.DOI)
		if err != nil {
			return res, fmt.Errorf("restyling %s: %w: %v", p, ErrRefetchFailed, err)
		}
		if isEmpty(fetched) {
			return res, fmt.Errorf("restyling %s: %w: empty record for %s", p, ErrRefetchFailed, rec.DOI)
		}
		fetched.DateAccessed = rec.DateAccessed
		rec = fetched
		res.States = append(res.States, ReFetched)
	}

	cit := citation.Format(rec, style)
	updated, err := Rewrite(doc, rec)
	if err != nil {
		return res, fmt.Errorf("restyling %s: %w", p, err)
	}
	updated = ReplaceCitationSection(updated, cit)
	if err := store.Modify(p, updated); err != nil {
		return res, err
	}

	res.Citation = cit
	res.Record = rec
	res.States = append(res.States, Rewritten)
	return res, nil
}

// sameWork reports whether a kept record still describes the note. A note
// whose DOI was edited since creation is read from its metadata block.
func sameWork(stored, doc types.Record) bool {
	return strings.EqualFold(stored.DOI, doc.DOI)
}

func isEmpty(rec types.Record) bool {
	return rec.FirstTitle() == "" && len(rec.Authors) == 0 && rec.Journal() == "" && rec.AnyYear() == 0
}
