// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/happyref/internal/index"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Inspect the ledger of created notes",
	Long: `Notes reads the local ledger of notes happyref has created. The ledger
records what was created; it is not consulted when creating notes.`,
}

// --- list subcommand ---

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List created notes, newest first",
	RunE:  runNotesList,
}

func runNotesList(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	ledger, err := requireLedger()
	if err != nil {
		return err
	}
	defer ledger.Close()

	entries, err := ledger.List(cmd.Context(), index.ListOptions{Query: query, Limit: limit})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		if entries == nil {
			entries = []index.Entry{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No notes found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tSTYLE\tIDENTIFIER\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Style.DisplayName(), e.Identifier, e.Path)
	}
	return tw.Flush()
}

// --- export subcommand ---

var notesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as JSON or CSL-YAML",
	Long: `Export writes every ledger entry, oldest first. The csl format emits
CSL-YAML consumable by Pandoc and reference managers.`,
	RunE: runNotesExport,
}

func runNotesExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	ledger, err := requireLedger()
	if err != nil {
		return err
	}
	defer ledger.Close()

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	switch strings.ToLower(format) {
	case "json":
		return ledger.ExportJSON(cmd.Context(), w)
	case "csl":
		return ledger.ExportCSL(cmd.Context(), w)
	default:
		return fmt.Errorf("unknown export format %q (want json or csl)", format)
	}
}

func init() {
	notesListCmd.Flags().String("query", "", "filter by title, author, journal, identifier or path")
	notesListCmd.Flags().Int("limit", 50, "maximum number of notes (negative for all)")
	notesListCmd.Flags().Bool("json", false, "print entries as JSON")

	notesExportCmd.Flags().String("format", "json", "export format: json or csl")
	notesExportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesExportCmd)
	rootCmd.AddCommand(notesCmd)
}
