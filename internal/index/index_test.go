// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/happyref/pkg/types"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), ".happyref", "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func deepLearning() types.Record {
	return types.Record{
		Title: []string{"Deep Learning"},
		Authors: []types.Author{
			{Given: "Yann", Family: "LeCun"},
			{Given: "Yoshua", Family: "Bengio"},
		},
		ContainerTitle: []string{"Nature"},
		Issued:         &types.Date{Year: 2015, Month: 5, Day: 27},
		Volume:         "521",
		Issue:          "7553",
		Page:           "436-444",
		DOI:            "10.1038/nature14539",
		WorkType:       "journal-article",
		Abstract:       "long text",
		DateAccessed:   "2026-10-18",
	}
}

func goodfellow() types.Record {
	return types.Record{
		Title:     []string{"Deep Learning"},
		Authors:   []types.Author{{Given: "Ian", Family: "Goodfellow"}, {Family: "MIT"}},
		Publisher: "MIT Press",
		Created:   &types.Date{Year: 2016},
		WorkType:  "book",
		ISBN:      []string{"9780262035613"},
	}
}

func seed(t *testing.T, l *Ledger) {
	t.Helper()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	_, err := l.Record(context.Background(), NewEntry("refs/Deep Learning.md", "doi", "10.1038/nature14539", deepLearning(), types.StyleHarvard, base))
	require.NoError(t, err)
	_, err = l.Record(context.Background(), NewEntry("refs/Deep Learning (1).md", "isbn", "9780262035613", goodfellow(), types.StyleAPA, base.Add(time.Minute)))
	require.NoError(t, err)
}

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "notes.db")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()
	_, err = os.Stat(path)
	assert.NoError(t, err)

	entries, err := l.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewEntry(t *testing.T) {
	created := time.Date(2026, 10, 18, 9, 0, 0, 500, time.FixedZone("X", 3600))
	e := NewEntry("a.md", "doi", "10.1038/nature14539", deepLearning(), types.StyleAMA, created)
	assert.Equal(t, "Deep Learning", e.Title)
	assert.Equal(t, []string{"Yann LeCun", "Yoshua Bengio"}, e.Authors)
	assert.Equal(t, 2015, e.Year)
	assert.Equal(t, "Nature", e.Journal)
	assert.Equal(t, time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC), e.CreatedAt)
	assert.Empty(t, e.Record.Abstract)
}

func TestRecordAndList(t *testing.T) {
	l := testLedger(t)
	seed(t, l)

	entries, err := l.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "refs/Deep Learning (1).md", entries[0].Path, "newest first")
	assert.Equal(t, "refs/Deep Learning.md", entries[1].Path)

	got := entries[1]
	assert.Equal(t, "doi", got.Kind)
	assert.Equal(t, types.StyleHarvard, got.Style)
	assert.Equal(t, []string{"Yann LeCun", "Yoshua Bengio"}, got.Authors)
	assert.Equal(t, &types.Date{Year: 2015, Month: 5, Day: 27}, got.Record.Issued)
	assert.Equal(t, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), got.CreatedAt)
}

func TestListFilters(t *testing.T) {
	l := testLedger(t)
	seed(t, l)

	tests := []struct {
		name  string
		opts  ListOptions
		paths []string
	}{
		{"by author", ListOptions{Query: "lecun"}, []string{"refs/Deep Learning.md"}},
		{"by journal", ListOptions{Query: "Nature"}, []string{"refs/Deep Learning.md"}},
		{"by isbn", ListOptions{Query: "978026"}, []string{"refs/Deep Learning (1).md"}},
		{"by title", ListOptions{Query: "deep"}, []string{"refs/Deep Learning (1).md", "refs/Deep Learning.md"}},
		{"limit", ListOptions{Query: "deep", Limit: 1}, []string{"refs/Deep Learning (1).md"}},
		{"wildcards are literal", ListOptions{Query: "%"}, nil},
		{"no match", ListOptions{Query: "transformer"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := l.List(context.Background(), tt.opts)
			require.NoError(t, err)
			var paths []string
			for _, e := range entries {
				paths = append(paths, e.Path)
			}
			assert.Equal(t, tt.paths, paths)
		})
	}
}

func TestUpdateStyle(t *testing.T) {
	l := testLedger(t)
	seed(t, l)

	ok, err := l.UpdateStyle(context.Background(), "refs/Deep Learning.md", types.StyleNone)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.UpdateStyle(context.Background(), "elsewhere.md", types.StyleAPA)
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := l.List(context.Background(), ListOptions{Query: "lecun"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.StyleNone, entries[0].Style)
}

func TestLookup(t *testing.T) {
	l := testLedger(t)
	seed(t, l)
	ctx := context.Background()

	rec, ok, err := l.Lookup(ctx, "refs/Deep Learning (1).md")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, goodfellow(), rec)

	rec, ok, err = l.Lookup(ctx, "refs/Deep Learning.md")
	require.NoError(t, err)
	require.True(t, ok)
	want := deepLearning()
	want.Abstract = ""
	assert.Equal(t, want, rec)

	_, ok, err = l.Lookup(ctx, "elsewhere.md")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupNewestEntryWins(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()
	older := deepLearning()
	older.Volume = "1"
	_, err := l.Record(ctx, NewEntry("a.md", "doi", older.DOI, older, types.StyleAPA, time.Now()))
	require.NoError(t, err)
	_, err = l.Record(ctx, NewEntry("a.md", "doi", older.DOI, deepLearning(), types.StyleAPA, time.Now()))
	require.NoError(t, err)

	rec, ok, err := l.Lookup(ctx, "a.md")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "521", rec.Volume)
}

func TestExportJSON(t *testing.T) {
	l := testLedger(t)

	var empty bytes.Buffer
	require.NoError(t, l.ExportJSON(context.Background(), &empty))
	assert.Equal(t, "[]\n", empty.String())

	seed(t, l)
	var buf bytes.Buffer
	require.NoError(t, l.ExportJSON(context.Background(), &buf))

	var entries []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "refs/Deep Learning.md", entries[0].Path, "oldest first")
	assert.Equal(t, "9780262035613", entries[1].Identifier)
}

func TestExportCSL(t *testing.T) {
	l := testLedger(t)
	seed(t, l)

	var buf bytes.Buffer
	require.NoError(t, l.ExportCSL(context.Background(), &buf))

	var items []CSLItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 2)

	article := items[0]
	assert.Equal(t, "10.1038/nature14539", article.ID)
	assert.Equal(t, "article-journal", article.Type)
	assert.Equal(t, "Nature", article.ContainerTitle)
	assert.Equal(t, [][]int{{2015, 5, 27}}, article.Issued.DateParts)
	assert.Equal(t, []CSLName{{Family: "LeCun", Given: "Yann"}, {Family: "Bengio", Given: "Yoshua"}}, article.Author)
	assert.Equal(t, "2026-10-18", article.Accessed)

	book := items[1]
	assert.Equal(t, "book", book.Type)
	assert.Equal(t, "9780262035613", book.ISBN)
	assert.Equal(t, [][]int{{2016}}, book.Issued.DateParts)
	assert.Equal(t, CSLName{Literal: "MIT"}, book.Author[1])
	assert.Contains(t, buf.String(), "container-title: Nature")
}
