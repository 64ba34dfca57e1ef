// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the happyref CLI.
// Implements: host integration for note creation by DOI and ISBN, citation
// restyling, and the created-notes ledger.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/happyref/internal/logger"
	"github.com/pdiddy/happyref/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// log is configured from log_level before any command runs.
var log = logger.NewNoOpLogger()

// secretDefault returns fallback when set, otherwise the secret for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

// rootCmd is the base command for the happyref CLI.
var rootCmd = &cobra.Command{
	Use:   "happyref",
	Short: "Create reference notes from DOIs and ISBNs",
	Long: `happyref looks up bibliographic records by DOI or ISBN and writes one
markdown note per record into a vault directory. Each note carries a
metadata block, the title, a formatted citation, and the abstract.

Citations can be re-rendered later in another style with "restyle"; every
created note is recorded in a local ledger listed by "notes".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		log = logger.New(os.Stderr, logger.ParseLevel(viper.GetString("log_level")))

		s, err := secrets.Load(".secrets/", log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug("loaded secrets: %v", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./happyref.yaml or ~/.config/happyref/happyref.yaml)")
	pf.String("vault", "", "vault root directory (default: current directory)")
	pf.String("index", "", "ledger database path (default: <vault>/.happyref/notes.db)")
	pf.String("log-level", "", "log level: debug, info, warn, error (default: info)")

	viper.BindPFlag("vault", pf.Lookup("vault"))
	viper.BindPFlag("index", pf.Lookup("index"))
	viper.BindPFlag("log_level", pf.Lookup("log-level"))

	viper.SetDefault("vault", ".")
	viper.SetDefault("citation_style", "harvard")
	viper.SetDefault("filename_style", "title")
	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("request_interval", time.Second)
	viper.SetDefault("max_retries", 3)
	viper.SetDefault("log_level", "info")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("happyref")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "happyref"))
		}
	}

	viper.SetEnvPrefix("HAPPYREF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
