// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vault is the file store notes are written to: a directory tree
// addressed by slash-separated, vault-relative paths.
// Implements: File Store capability (exists, create, read, modify,
// create folder) and the Collision-Avoiding Path Resolver.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store is the file-store capability the note pipeline consumes. Paths are
// vault-relative and slash-separated.
type Store interface {
	Exists(p string) bool
	Create(p, content string) error
	Read(p string) (string, error)
	Modify(p, content string) error
	CreateFolder(p string) error
}

// Dir is a Store backed by a directory on the local filesystem.
type Dir struct {
	Root string
}

// NewDir returns a Dir rooted at root. The directory must already exist.
func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("opening vault %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening vault %s: not a directory", root)
	}
	return &Dir{Root: root}, nil
}

// abs maps a vault path to a filesystem path. Leading slashes and ".."
// segments cannot climb out of the root.
func (d *Dir) abs(p string) string {
	clean := path.Clean("/" + filepath.ToSlash(p))
	return filepath.Join(d.Root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
}

// Exists reports whether a file or folder exists at p.
func (d *Dir) Exists(p string) bool {
	_, err := os.Stat(d.abs(p))
	return err == nil
}

// Create writes a new file. It fails with an error wrapping os.ErrExist
// when p is already taken.
func (d *Dir) Create(p, content string) error {
	if d.Exists(p) {
		return fmt.Errorf("creating %s: %w", p, os.ErrExist)
	}
	if err := writeFile(d.abs(p), content); err != nil {
		return fmt.Errorf("creating %s: %w", p, err)
	}
	return nil
}

// Read returns the file's contents.
func (d *Dir) Read(p string) (string, error) {
	data, err := os.ReadFile(d.abs(p))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	return string(data), nil
}

// Modify replaces the contents of an existing file.
func (d *Dir) Modify(p, content string) error {
	info, err := os.Stat(d.abs(p))
	if err != nil {
		return fmt.Errorf("modifying %s: %w", p, err)
	}
	if info.IsDir() {
		return fmt.Errorf("modifying %s: is a folder", p)
	}
	if err := writeFile(d.abs(p), content); err != nil {
		return fmt.Errorf("modifying %s: %w", p, err)
	}
	return nil
}

// CreateFolder creates p and any missing parents.
func (d *Dir) CreateFolder(p string) error {
	if err := os.MkdirAll(d.abs(p), 0o755); err != nil {
		return fmt.Errorf("creating folder %s: %w", p, err)
	}
	return nil
}

// writeFile writes content through a temporary file in the destination
// directory and renames it into place.
func writeFile(dest, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".happyref-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.WriteString(content)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
