// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/happyref/internal/registry"
)

var doiCmd = &cobra.Command{
	Use:   "doi [DOI...]",
	Short: "Create notes from DOIs",
	Long: `Doi looks up each DOI in Crossref and writes a note for it into the
vault. DOIs may be given bare or as doi.org links. Without arguments one DOI
is read from stdin; an empty line cancels.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, registry.KindDOI, args)
	},
}

func init() {
	addCreateFlags(doiCmd)
	rootCmd.AddCommand(doiCmd)
}
