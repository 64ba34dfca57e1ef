// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/happyref/internal/index"
	"github.com/pdiddy/happyref/internal/note"
	"github.com/pdiddy/happyref/internal/registry"
	"github.com/pdiddy/happyref/pkg/types"
)

// addCreateFlags registers the flags shared by the doi and isbn commands.
func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().String("folder", "", "vault folder for new notes (default: configured default_folder)")
	cmd.Flags().String("style", "", "citation style: harvard, vancouver, apa, chicago, ama, ap, canadian, oxford, none")
	cmd.Flags().String("filename-style", "", "filename style: title, author, author_year")
	cmd.Flags().Bool("open", false, "open each created note with the system opener")
}

// createResult holds counts from a note creation run.
type createResult struct {
	Created []string
	Failed  int
}

// runCreate fetches each identifier and writes one note per record. With
// no arguments a single identifier is read from stdin; empty input cancels.
func runCreate(cmd *cobra.Command, kind registry.IdentifierKind, args []string) error {
	out := cmd.OutOrStdout()

	ids := args
	if len(ids) == 0 {
		id, err := promptIdentifier(cmd.InOrStdin(), cmd.ErrOrStderr(), kind)
		if err != nil {
			return err
		}
		if id == "" {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		ids = []string{id}
	}

	cfg, err := noteConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openVault()
	if err != nil {
		return err
	}
	ledger := openLedger(store.Root)
	if ledger != nil {
		defer ledger.Close()
	}
	openAfter, _ := cmd.Flags().GetBool("open")

	renderer := &note.Renderer{Config: cfg, Store: store, Log: log}
	res, err := createNotes(cmd.Context(), newRegistryClient(), renderer, ledger, kind, ids, out)
	if err != nil {
		return err
	}

	if openAfter {
		for _, p := range res.Created {
			if err := openNote(store.Root, p); err != nil {
				log.Warn("could not open %s: %v", p, err)
			}
		}
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d identifier(s) failed", res.Failed)
	}
	return nil
}

// fetcher is the registry capability createNotes needs.
type fetcher interface {
	FetchAll(ctx context.Context, kind registry.IdentifierKind, values []string, fn func(string, types.Record, error)) error
}

// createNotes runs the fetch, render, write and record steps for ids,
// printing one status line per identifier to w. ledger may be nil.
func createNotes(ctx context.Context, client fetcher, renderer *note.Renderer, ledger *index.Ledger, kind registry.IdentifierKind, ids []string, w io.Writer) (createResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var res createResult

	err := client.FetchAll(ctx, kind, ids, func(id string, rec types.Record, err error) {
		if err != nil {
			res.Failed++
			if errors.Is(err, registry.ErrNotFound) {
				fmt.Fprintf(w, "  %s: no %s record found\n", id, strings.ToUpper(kind.String()))
				return
			}
			fmt.Fprintf(w, "  %s: lookup failed: %v\n", id, err)
			return
		}

		n, err := renderer.Create(rec)
		if err != nil {
			res.Failed++
			fmt.Fprintf(w, "  %s: %v\n", id, err)
			return
		}
		res.Created = append(res.Created, n.Path)
		fmt.Fprintf(w, "Created %s\n", n.Path)

		if ledger != nil {
			entry := index.NewEntry(n.Path, kind.String(), registry.Normalize(kind, id), n.Record, renderer.Config.CitationStyle, time.Now())
			if _, err := ledger.Record(ctx, entry); err != nil {
				log.Warn("could not record %s in ledger: %v", n.Path, err)
			}
		}
	})
	return res, err
}

// promptIdentifier asks for one identifier on in. It returns "" when the
// input is empty.
func promptIdentifier(in io.Reader, prompt io.Writer, kind registry.IdentifierKind) (string, error) {
	fmt.Fprintf(prompt, "Enter %s: ", strings.ToUpper(kind.String()))
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading identifier: %w", err)
	}
	return strings.TrimSpace(line), nil
}
