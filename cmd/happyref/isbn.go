// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/happyref/internal/registry"
)

var isbnCmd = &cobra.Command{
	Use:   "isbn [ISBN...]",
	Short: "Create notes from ISBNs",
	Long: `Isbn looks up each ISBN in Crossref and writes a note for the first
matching work. Hyphens, spaces and an "ISBN" prefix are ignored. Without
arguments one ISBN is read from stdin; an empty line cancels.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, registry.KindISBN, args)
	},
}

func init() {
	addCreateFlags(isbnCmd)
	rootCmd.AddCommand(isbnCmd)
}
