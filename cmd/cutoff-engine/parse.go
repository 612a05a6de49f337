// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cutoff-engine/internal/cutoff"
	"github.com/pdiddy/cutoff-engine/internal/export"
	"github.com/pdiddy/cutoff-engine/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [text files...]",
	Short: "Parse cutoff-list text into college records",
	Long: `Parse reads the text of one or more cutoff lists (stdin when no file is
given), recognizes colleges, courses, stages, and category cutoffs, and
writes the records to --output as JSON or YAML. Multiple files are joined
with newlines and parsed as one document.`,
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	toStdout, _ := cmd.Flags().GetBool("stdout")

	text, err := readInputs(args, os.Stdin)
	if err != nil {
		return err
	}
	colleges := cutoff.Parse(text)

	courses, cutoffs := countRecords(colleges)
	log.Info().
		Int("colleges", len(colleges)).
		Int("courses", courses).
		Int("cutoffs", cutoffs).
		Msg("parsed cutoff list")

	if toStdout {
		return export.Write(os.Stdout, cfg.Parse.Format, colleges)
	}
	if err := export.SaveFile(cfg.Parse.Output, cfg.Parse.Format, colleges); err != nil {
		return err
	}
	fmt.Printf("Parsed %d colleges, %d courses, %d cutoffs into %s\n",
		len(colleges), courses, cutoffs, cfg.Parse.Output)
	return nil
}

// readInputs concatenates the named files with newlines, or reads stdin
// when none are named.
func readInputs(paths []string, stdin io.Reader) (string, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", p, err)
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n"), nil
}

func countRecords(colleges []types.College) (courses, cutoffs int) {
	for _, c := range colleges {
		courses += len(c.Courses)
		for _, course := range c.Courses {
			for _, s := range course.Stages {
				cutoffs += len(s.Categories)
			}
		}
	}
	return courses, cutoffs
}

func init() {
	parseCmd.Flags().StringP("output", "o", export.DefaultFile, "output file")
	parseCmd.Flags().String("format", string(types.FormatJSON), "output format: json or yaml")
	parseCmd.Flags().Bool("stdout", false, "write records to stdout instead of --output")

	viper.BindPFlag("parse.output", parseCmd.Flags().Lookup("output"))
	viper.BindPFlag("parse.format", parseCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(parseCmd)
}
