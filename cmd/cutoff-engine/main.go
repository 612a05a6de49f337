// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cutoff-engine CLI. It converts
// CAP cutoff-list PDFs to text, parses them into college records, seeds a
// SQLite database, and answers eligibility queries over it.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cutoff-engine/internal/export"
	"github.com/pdiddy/cutoff-engine/internal/logging"
	"github.com/pdiddy/cutoff-engine/internal/store"
	"github.com/pdiddy/cutoff-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cutoff-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "cutoff-engine",
	Short: "Parse CAP cutoff lists and query admission eligibility",
	Long: `cutoff-engine turns published CAP cutoff-list PDFs into structured
records. Each stage is a subcommand: convert extracts text from the PDFs,
parse recognizes colleges, courses, stages, and category cutoffs and writes
them as JSON, store seeds a SQLite database and queries it, and report
renders query results as a PDF table.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(viper.GetString("log.level"), viper.GetString("log.format"), os.Stderr)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cutoff-engine.yaml or ~/.config/cutoff-engine/cutoff-engine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", logging.FormatConsole, "log format: console or json")
	rootCmd.PersistentFlags().String("db", store.DefaultDBPath, "SQLite database path")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("store.db_path", rootCmd.PersistentFlags().Lookup("db"))

	viper.SetDefault("convert.backend", string(types.BackendNative))
	viper.SetDefault("convert.text_dir", "text")
	viper.SetDefault("parse.output", export.DefaultFile)
	viper.SetDefault("parse.format", string(types.FormatJSON))
	viper.SetDefault("store.page_size", 10)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cutoff-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cutoff-engine"))
		}
	}

	viper.SetEnvPrefix("CUTOFF_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the pipeline configuration from viper and validates it.
func loadConfig() (types.PipelineConfig, error) {
	cfg := types.PipelineConfig{
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
		Conversion: types.ConversionConfig{
			Backend: types.ConversionBackend(viper.GetString("convert.backend")),
			TextDir: viper.GetString("convert.text_dir"),
			Runtime: viper.GetString("convert.runtime"),
			Image:   viper.GetString("convert.image"),
		},
		Parse: types.ParseConfig{
			Output: viper.GetString("parse.output"),
			Format: types.OutputFormat(viper.GetString("parse.format")),
		},
		Store: types.StoreConfig{
			DBPath:   viper.GetString("store.db_path"),
			PageSize: viper.GetInt("store.page_size"),
		},
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	log.Debug().
		Str("backend", string(cfg.Conversion.Backend)).
		Str("db", cfg.Store.DBPath).
		Str("output", cfg.Parse.Output).
		Msg("loaded configuration")
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
