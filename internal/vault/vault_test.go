// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/happyref/internal/logger"
)

func TestResolvePath(t *testing.T) {
	taken := map[string]bool{
		"X.md":     true,
		"X (1).md": true,
		"X (2).md": true,
	}
	var probes []string
	got, err := ResolvePath("", "X", func(p string) bool {
		probes = append(probes, p)
		return taken[p]
	})
	require.NoError(t, err)
	assert.Equal(t, "X (3).md", got)
	assert.Equal(t, []string{"X.md", "X (1).md", "X (2).md", "X (3).md"}, probes)
}

func TestResolvePathFolders(t *testing.T) {
	none := func(string) bool { return false }
	tests := []struct {
		folder string
		want   string
	}{
		{"", "Deep Learning.md"},
		{"refs", "refs/Deep Learning.md"},
		{"refs/", "refs/Deep Learning.md"},
		{"refs///", "refs/Deep Learning.md"},
		{"/", "Deep Learning.md"},
		{" papers/2015 ", "papers/2015/Deep Learning.md"},
	}
	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			got, err := ResolvePath(tt.folder, "Deep Learning", none)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePathExhausted(t *testing.T) {
	_, err := ResolvePath("refs", "X", func(string) bool { return true })
	assert.ErrorIs(t, err, ErrNoFreePath)
}

func TestDirLifecycle(t *testing.T) {
	root := t.TempDir()
	d, err := NewDir(root)
	require.NoError(t, err)

	require.NoError(t, d.CreateFolder("refs/2015"))
	assert.True(t, d.Exists("refs/2015"))
	assert.False(t, d.Exists("refs/2015/a.md"))

	require.NoError(t, d.Create("refs/2015/a.md", "hello"))
	assert.True(t, d.Exists("refs/2015/a.md"))

	err = d.Create("refs/2015/a.md", "again")
	assert.ErrorIs(t, err, os.ErrExist)

	got, err := d.Read("refs/2015/a.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	require.NoError(t, d.Modify("refs/2015/a.md", "changed"))
	got, err = d.Read("refs/2015/a.md")
	require.NoError(t, err)
	assert.Equal(t, "changed", got)

	err = d.Modify("refs/2015/missing.md", "x")
	assert.ErrorIs(t, err, os.ErrNotExist)

	entries, err := os.ReadDir(filepath.Join(root, "refs", "2015"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestDirStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	d, err := NewDir(root)
	require.NoError(t, err)

	require.NoError(t, d.Create("../../escape.md", "x"))
	_, err = os.Stat(filepath.Join(root, "escape.md"))
	assert.NoError(t, err)
}

func TestNewDirRejectsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	_, err := NewDir(f)
	assert.Error(t, err)
	_, err = NewDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

// brokenStore fails every folder creation.
type brokenStore struct {
	Dir
	created []string
}

func (b *brokenStore) CreateFolder(p string) error {
	b.created = append(b.created, p)
	return errors.New("read-only vault")
}

func TestPrepareFolder(t *testing.T) {
	log := logger.NewNoOpLogger()

	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", PrepareFolder(d, "  ", log))
	assert.Equal(t, "refs/new", PrepareFolder(d, "refs/new/", log))
	assert.True(t, d.Exists("refs/new"))

	b := &brokenStore{Dir: Dir{Root: t.TempDir()}}
	assert.Equal(t, "", PrepareFolder(b, "refs", log))
	assert.Equal(t, []string{"refs"}, b.created)
}
