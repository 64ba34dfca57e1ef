// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// openNote launches the platform's default opener on a vault note.
func openNote(root, p string) error {
	full, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(p)))
	if err != nil {
		return err
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", full)
	case "linux":
		cmd = exec.Command("xdg-open", full)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", full)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
