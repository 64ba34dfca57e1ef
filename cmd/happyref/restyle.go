// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/happyref/internal/index"
	"github.com/pdiddy/happyref/internal/note"
	"github.com/pdiddy/happyref/pkg/types"
)

var restyleCmd = &cobra.Command{
	Use:   "restyle <note> --style <style>",
	Short: "Re-render a note's citation in another style",
	Long: `Restyle rewrites the metadata block and the citation section of an
existing note in the chosen style. The record kept in the notes ledger is
used when the ledger knows the note. When the stored metadata is missing
fields a citation needs, the record is fetched again by the note's DOI.
Style "none" removes the citation section. The note is left untouched when
any step fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestyle,
}

func init() {
	restyleCmd.Flags().String("style", "", "citation style: harvard, vancouver, apa, chicago, ama, ap, canadian, oxford, none")
	restyleCmd.MarkFlagRequired("style")
	rootCmd.AddCommand(restyleCmd)
}

func runRestyle(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("style")
	style, err := types.ParseCitationStyle(raw)
	if err != nil {
		return err
	}

	store, err := openVault()
	if err != nil {
		return err
	}
	p, err := vaultPath(store.Root, args[0])
	if err != nil {
		return err
	}

	ledger := openLedger(store.Root)
	if ledger != nil {
		defer ledger.Close()
	}

	client := newRegistryClient()
	res, err := note.Restyle(cmd.Context(), store, p, style, ledgerLookup(ledger), client.FetchDOI)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Refetched() {
		fmt.Fprintf(out, "  refetched metadata for %s\n", res.Record.DOI)
	}
	fmt.Fprintf(out, "Restyled %s (%s)\n", p, style.DisplayName())

	if ledger != nil {
		known, err := ledger.UpdateStyle(cmd.Context(), p, style)
		if err != nil {
			log.Warn("could not update ledger: %v", err)
		} else if !known {
			log.Debug("%s is not in the ledger", p)
		}
	}
	return nil
}

// ledgerLookup serves the records kept in ledger to note.Restyle. A nil
// ledger yields a nil lookup.
func ledgerLookup(ledger *index.Ledger) note.LookupFunc {
	if ledger == nil {
		return nil
	}
	return func(ctx context.Context, p string) (types.Record, bool) {
		rec, ok, err := ledger.Lookup(ctx, p)
		if err != nil {
			log.Warn("could not read %s from ledger: %v", p, err)
			return types.Record{}, false
		}
		return rec, ok
	}
}

// vaultPath turns a note argument into a vault-relative, slash-separated
// path. Absolute paths must lie inside the vault.
func vaultPath(root, arg string) (string, error) {
	if !filepath.IsAbs(arg) {
		return filepath.ToSlash(filepath.Clean(arg)), nil
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, arg)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the vault %s", arg, absRoot)
	}
	return filepath.ToSlash(rel), nil
}
