// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/happyref/internal/logger"
)

// MaxSuffix bounds the numeric suffix tried by ResolvePath.
const MaxSuffix = 9999

// ErrNoFreePath is returned when every candidate up to MaxSuffix exists.
var ErrNoFreePath = errors.New("no free note path")

const noteExt = ".md"

// NormalizeFolder trims whitespace and surrounding slashes. The empty
// string denotes the vault root.
func NormalizeFolder(folder string) string {
	return strings.Trim(strings.TrimSpace(folder), "/")
}

// Join places name inside folder; a root folder yields name unchanged.
func Join(folder, name string) string {
	folder = NormalizeFolder(folder)
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// ResolvePath returns the first of "folder/base.md", "folder/base (1).md",
// "folder/base (2).md", ... for which exists reports false. Candidates are
// probed one at a time.
func ResolvePath(folder, base string, exists func(string) bool) (string, error) {
	candidate := Join(folder, base+noteExt)
	for n := 1; exists(candidate); n++ {
		if n > MaxSuffix {
			return "", fmt.Errorf("%w for %q in %q", ErrNoFreePath, base, NormalizeFolder(folder))
		}
		candidate = Join(folder, fmt.Sprintf("%s (%d)%s", base, n, noteExt))
	}
	return candidate, nil
}

// PrepareFolder makes sure folder exists in store and returns it
// normalized. When the folder cannot be created it logs a warning and
// returns the vault root ("") so note creation can continue there.
func PrepareFolder(store Store, folder string, log logger.Logger) string {
	folder = NormalizeFolder(folder)
	if folder == "" || store.Exists(folder) {
		return folder
	}
	if err := store.CreateFolder(folder); err != nil {
		log.Warn("could not create folder %q, using vault root: %v", folder, err)
		return ""
	}
	return folder
}
