// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cutoff-engine/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <output.pdf> [college]",
	Short: "Render query results as a PDF table",
	Long: `Report runs the same query as "store query" and writes the results to a
PDF with columns College Name, Course, Category, and Required %.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	out := args[0]
	opts, err := queryOptsFromFlags(cmd, args[1:])
	if err != nil {
		return err
	}
	title, _ := cmd.Flags().GetString("title")

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	page, err := s.QueryCutoffs(context.Background(), opts)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := report.Render(f, title, page.Results); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %d rows to %s\n", len(page.Results), out)
	return nil
}

func init() {
	addQueryFlags(reportCmd)
	reportCmd.Flags().String("title", report.DefaultTitle, "report title")

	rootCmd.AddCommand(reportCmd)
}
