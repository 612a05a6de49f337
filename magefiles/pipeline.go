//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Working directories of the pipeline, relative to the project root.
const (
	pdfDir    = "pdf"
	textDir   = "text"
	dataDir   = "data"
	reportDir = "reports"
)

var (
	parsedFile = filepath.Join(dataDir, "cutoff_data.json")
	dbFile     = filepath.Join(dataDir, "cutoffs.db")
)

// Pipeline runs the cutoff-engine stages over the working directories.
type Pipeline mg.Namespace

func cli(args ...string) error {
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Convert extracts text from every PDF in pdf/ into text/.
func (Pipeline) Convert() error {
	mg.Deps(Init, Build)
	return cli("convert", "--text-dir", textDir, pdfDir)
}

// Parse parses every text file in text/ into data/cutoff_data.json.
func (Pipeline) Parse() error {
	mg.Deps(Build)
	files, err := filepath.Glob(filepath.Join(textDir, "*.txt"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no text files in %s: run pipeline:convert first", textDir)
	}
	return cli(append([]string{"parse", "--output", parsedFile}, files...)...)
}

// Seed loads data/cutoff_data.json into data/cutoffs.db.
func (Pipeline) Seed() error {
	mg.Deps(Build)
	if _, err := os.Stat(parsedFile); err != nil {
		return fmt.Errorf("%s missing: run pipeline:parse first", parsedFile)
	}
	return cli("store", "seed", "--db", dbFile, parsedFile)
}

// All converts, parses, and seeds in order.
func (Pipeline) All() {
	mg.SerialDeps(Pipeline.Convert, Pipeline.Parse, Pipeline.Seed)
}

// Clean removes the built binary and generated pipeline data.
func Clean() error {
	for _, p := range []string{binDir, textDir, parsedFile, dbFile} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}
