// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the extract-geometry CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/extract-geometry/internal/logging"
	"github.com/pdiddy/extract-geometry/internal/secrets"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the merged configuration: defaults, config file, environment, flags.
	cfg types.Config

	logger = logging.Discard()

	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Store
)

var rootCmd = &cobra.Command{
	Use:   "extract-geometry",
	Short: "Extract element edge/vertex graphs from a building model into SQL",
	Long: `extract-geometry reads walls, floors, structural columns and structural
framing from a building model, strips openings, hosted doors and windows and
element joins inside a transaction that is always rolled back, and exports each
element's deduplicated edge/vertex graph plus creation metadata into a
relational schema.

Use "schema create" once per sink, then "export" to write categories.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		l, err := logging.New(os.Stderr, cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(logger)

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if keys := s.Keys(); len(keys) > 0 {
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./extract-geometry.yaml or ~/.config/extract-geometry/extract-geometry.yaml)")
	pf.String("model", "", "building model file (YAML)")
	pf.String("dialect", "", "database dialect: sqlite3, sqlite, postgres, mysql")
	pf.String("dsn", "", "database data source name (default: .secrets/database-dsn)")
	pf.Bool("creation-info", true, "include the ModelCreationInfo table and rows")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text or json")

	for key, flag := range map[string]string{
		"model.path":             "model",
		"database.dialect":       "dialect",
		"database.dsn":           "dsn",
		"database.creation_info": "creation-info",
		"log.level":              "log-level",
		"log.format":             "log-format",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}

	viper.SetDefault("database.dialect", "sqlite3")
	viper.SetDefault("database.creation_info", true)
	// No default: the model file's own display block applies unless these
	// are set explicitly.
	_ = viper.BindEnv("model.length_unit")
	_ = viper.BindEnv("model.precision")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("extract-geometry")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "extract-geometry"))
		}
	}

	viper.SetEnvPrefix("EXTRACT_GEOMETRY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
