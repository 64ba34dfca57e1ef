// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/happyref/internal/index"
	"github.com/pdiddy/happyref/internal/note"
	"github.com/pdiddy/happyref/internal/registry"
	"github.com/pdiddy/happyref/internal/vault"
	"github.com/pdiddy/happyref/pkg/types"
)

// fakeRegistry answers from a fixed table; unknown values are not found.
type fakeRegistry map[string]types.Record

func (f fakeRegistry) FetchAll(_ context.Context, _ registry.IdentifierKind, values []string, fn func(string, types.Record, error)) error {
	for _, v := range values {
		rec, ok := f[v]
		if !ok {
			fn(v, types.Record{}, fmt.Errorf("fetching %s: %w", v, registry.ErrNotFound))
			continue
		}
		fn(v, rec, nil)
	}
	return nil
}

func TestCreateNotes(t *testing.T) {
	root := t.TempDir()
	store, err := vault.NewDir(root)
	require.NoError(t, err)
	ledger, err := index.Open(filepath.Join(root, ".happyref", "notes.db"))
	require.NoError(t, err)
	defer ledger.Close()

	reg := fakeRegistry{
		"10.1038/nature14539": {
			Title:          []string{"Deep Learning"},
			Authors:        []types.Author{{Given: "Yann", Family: "LeCun"}},
			ContainerTitle: []string{"Nature"},
			Issued:         &types.Date{Year: 2015},
			DOI:            "10.1038/nature14539",
		},
	}
	renderer := &note.Renderer{
		Config: types.NoteConfig{DefaultFolder: "refs", CitationStyle: types.StyleAPA, FilenameStyle: types.FilenameAuthorYear},
		Store:  store,
		Now:    func() time.Time { return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) },
	}

	var out bytes.Buffer
	res, err := createNotes(context.Background(), reg, renderer, ledger, registry.KindDOI,
		[]string{"10.1038/nature14539", "10.1/missing"}, &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"refs/LeCun (2015).md"}, res.Created)
	assert.Equal(t, 1, res.Failed)
	assert.Contains(t, out.String(), "Created refs/LeCun (2015).md")
	assert.Contains(t, out.String(), "10.1/missing: no DOI record found")

	content, err := store.Read("refs/LeCun (2015).md")
	require.NoError(t, err)
	assert.Contains(t, content, "## Citation\nLeCun, Y. (2015). Deep Learning.")

	entries, err := ledger.List(context.Background(), index.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doi", entries[0].Kind)
	assert.Equal(t, types.StyleAPA, entries[0].Style)
}

func TestCreateNotesWithoutLedger(t *testing.T) {
	store, err := vault.NewDir(t.TempDir())
	require.NoError(t, err)
	reg := fakeRegistry{"9780262035613": {Title: []string{"Deep Learning"}}}
	renderer := &note.Renderer{Config: types.NoteConfig{CitationStyle: types.StyleNone}, Store: store}

	var out bytes.Buffer
	res, err := createNotes(context.Background(), reg, renderer, nil, registry.KindISBN, []string{"9780262035613"}, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Deep Learning.md"}, res.Created)
	assert.Zero(t, res.Failed)
}

func TestPromptIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.1038/nature14539\n", "10.1038/nature14539"},
		{"  10.1/x  \r\n", "10.1/x"},
		{"no newline", "no newline"},
		{"\n", ""},
		{"", ""},
	}
	for _, tt := range tests {
		var prompt bytes.Buffer
		got, err := promptIdentifier(strings.NewReader(tt.in), &prompt, registry.KindDOI)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, "Enter DOI: ", prompt.String())
	}
}

func TestVaultPath(t *testing.T) {
	root := t.TempDir()

	got, err := vaultPath(root, "refs/../refs/Deep Learning.md")
	require.NoError(t, err)
	assert.Equal(t, "refs/Deep Learning.md", got)

	got, err = vaultPath(root, filepath.Join(root, "refs", "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "refs/a.md", got)

	_, err = vaultPath(root, filepath.Join(filepath.Dir(root), "elsewhere.md"))
	assert.Error(t, err)
}
