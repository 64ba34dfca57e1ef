// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/happyref/internal/index"
	"github.com/pdiddy/happyref/internal/registry"
	"github.com/pdiddy/happyref/internal/secrets"
	"github.com/pdiddy/happyref/internal/vault"
	"github.com/pdiddy/happyref/pkg/types"
)

const defaultUserAgent = "happyref/0.1"

// setting returns the command's flag value when it was given, otherwise
// the configured value for key.
func setting(cmd *cobra.Command, flag, key string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	return viper.GetString(key)
}

// noteConfig assembles the note settings for cmd.
func noteConfig(cmd *cobra.Command) (types.NoteConfig, error) {
	style, err := types.ParseCitationStyle(setting(cmd, "style", "citation_style"))
	if err != nil {
		return types.NoteConfig{}, err
	}
	fnStyle, err := types.ParseFilenameStyle(setting(cmd, "filename-style", "filename_style"))
	if err != nil {
		return types.NoteConfig{}, err
	}
	return types.NoteConfig{
		DefaultFolder: setting(cmd, "folder", "default_folder"),
		CitationStyle: style,
		FilenameStyle: fnStyle,
	}, nil
}

// registryConfig assembles the registry settings from configuration and
// secrets.
func registryConfig() types.RegistryConfig {
	return types.RegistryConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: defaultUserAgent + " (" + version + ")",
		},
		Mailto:          secretDefault(secrets.CrossrefMailto, viper.GetString("mailto")),
		PlusToken:       secretDefault(secrets.CrossrefPlusToken, viper.GetString("plus_token")),
		RequestInterval: viper.GetDuration("request_interval"),
		MaxRetries:      viper.GetInt("max_retries"),
	}
}

func newRegistryClient() *registry.Client {
	c := registry.NewClient(nil, registryConfig())
	c.Log = log
	return c
}

func openVault() (*vault.Dir, error) {
	root := viper.GetString("vault")
	if root == "" {
		root = "."
	}
	return vault.NewDir(root)
}

// openLedger opens the notes ledger. The ledger is bookkeeping only, so a
// failure is logged and nil returned.
func openLedger(root string) *index.Ledger {
	path := viper.GetString("index")
	if path == "" {
		path = filepath.Join(root, ".happyref", "notes.db")
	}
	l, err := index.Open(path)
	if err != nil {
		log.Warn("notes ledger unavailable: %v", err)
		return nil
	}
	return l
}

// requireLedger opens the ledger for commands that cannot work without it.
func requireLedger() (*index.Ledger, error) {
	d, err := openVault()
	if err != nil {
		return nil, err
	}
	l := openLedger(d.Root)
	if l == nil {
		return nil, fmt.Errorf("notes ledger unavailable")
	}
	return l, nil
}
