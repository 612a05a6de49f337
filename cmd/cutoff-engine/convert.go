// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cutoff-engine/internal/container"
	"github.com/pdiddy/cutoff-engine/internal/convert"
	"github.com/pdiddy/cutoff-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdfs or directories...]",
	Short: "Extract text from cutoff-list PDFs",
	Long: `Convert extracts the text of each cutoff-list PDF into <text-dir>/<name>.txt,
one PDF text line per output line. Directories are expanded to the PDFs they
contain. Existing text files are skipped unless --overwrite is set.

The native backend reads the PDF in-process. The pdftotext backend pipes it
through poppler's pdftotext in a docker or podman container.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	paths, err := expandPDFs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found")
	}

	conv, err := newConverter(cfg.Conversion)
	if err != nil {
		return err
	}

	opts := convert.Options{TextDir: cfg.Conversion.TextDir, Overwrite: overwrite}
	result, err := convert.ConvertBatch(context.Background(), conv, paths, opts, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d PDF(s) failed conversion", result.Failed)
	}
	return nil
}

func newConverter(cfg types.ConversionConfig) (convert.Converter, error) {
	switch cfg.Backend {
	case types.BackendNative, "":
		return convert.NewNativeConverter(), nil
	case types.BackendPdftotext:
		rt, err := container.DetectRuntime(cfg.Runtime)
		if err != nil {
			return nil, err
		}
		return convert.NewPdftotextConverter(rt, cfg.Image)
	default:
		return nil, fmt.Errorf("unsupported backend %q: use native or pdftotext", cfg.Backend)
	}
}

// expandPDFs replaces each directory argument with the sorted .pdf files it
// contains.
func expandPDFs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

func init() {
	convertCmd.Flags().String("backend", string(types.BackendNative), "conversion backend: native or pdftotext")
	convertCmd.Flags().String("text-dir", "text", "directory for converted text files")
	convertCmd.Flags().String("runtime", "", "container runtime for pdftotext: docker or podman (default: detect)")
	convertCmd.Flags().String("image", "", "pdftotext container image (default: "+convert.DefaultPdftotextImage+")")
	convertCmd.Flags().Bool("overwrite", false, "replace existing text files")

	viper.BindPFlag("convert.backend", convertCmd.Flags().Lookup("backend"))
	viper.BindPFlag("convert.text_dir", convertCmd.Flags().Lookup("text-dir"))
	viper.BindPFlag("convert.runtime", convertCmd.Flags().Lookup("runtime"))
	viper.BindPFlag("convert.image", convertCmd.Flags().Lookup("image"))

	rootCmd.AddCommand(convertCmd)
}
