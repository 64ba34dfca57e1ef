// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package note renders bibliographic records into markdown notes and
// rewrites the metadata and citation of existing notes.
// Implements: Note Renderer, Metadata Rewriter, Citation Section Rewriter,
// and the restyle flow.
package note

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/happyref/internal/citation"
	"github.com/pdiddy/happyref/internal/filename"
	"github.com/pdiddy/happyref/internal/logger"
	"github.com/pdiddy/happyref/internal/vault"
	"github.com/pdiddy/happyref/pkg/types"
)

// AccessedLayout is the layout of the stored access date.
const AccessedLayout = "2006-01-02"

const citationHeading = "## Citation"

// Note is a rendered note ready to be written to the vault.
type Note struct {
	Path     string
	Content  string
	Citation string
	Record   types.Record
}

// Renderer turns records into notes placed in a vault.
type Renderer struct {
	Config types.NoteConfig
	Store  vault.Store
	Log    logger.Logger
	// Now supplies the access date; time.Now when nil.
	Now func() time.Time
}

// Render builds the note for rec and picks a free path for it. The default
// folder is created when missing. Nothing else is written.
func (r *Renderer) Render(rec types.Record) (Note, error) {
	if rec.DateAccessed == "" {
		rec.DateAccessed = r.now().Format(AccessedLayout)
	}
	log := r.Log
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	base := filename.Derive(rec, r.Config.FilenameStyle)
	folder := vault.PrepareFolder(r.Store, r.Config.DefaultFolder, log)
	p, err := vault.ResolvePath(folder, base, r.Store.Exists)
	if err != nil {
		return Note{}, err
	}

	cit := citation.Format(rec, r.Config.CitationStyle)
	log.Debug("rendering %s as %s", rec.DOI, p)
	return Note{
		Path:     p,
		Content:  Content(rec, cit),
		Citation: cit,
		Record:   rec,
	}, nil
}

// Create renders rec and writes the new note.
func (r *Renderer) Create(rec types.Record) (Note, error) {
	n, err := r.Render(rec)
	if err != nil {
		return Note{}, err
	}
	if err := r.Store.Create(n.Path, n.Content); err != nil {
		return Note{}, fmt.Errorf("writing note: %w", err)
	}
	return n, nil
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Content assembles a full note: metadata block, title heading, optional
// citation section, and abstract. An empty cit omits the citation section.
func Content(rec types.Record, cit string) string {
	title := strings.TrimSpace(rec.FirstTitle())
	if title == "" {
		title = filename.Untitled
	}
	abstract := SanitizeAbstract(rec.Abstract)
	if abstract == "" {
		abstract = NoAbstract
	}

	var b strings.Builder
	b.WriteString(MetadataBlock(rec))
	b.WriteString("\n# " + title + "\n\n")
	if cit != "" {
		b.WriteString(citationSection(cit))
		b.WriteString("\n")
	}
	b.WriteString("## Abstract\n" + abstract + "\n")
	return b.String()
}

// citationSection is the heading, the citation text, and the closing rule.
func citationSection(cit string) string {
	return citationHeading + "\n" + cit + "\n\n" + delimiter + "\n"
}
