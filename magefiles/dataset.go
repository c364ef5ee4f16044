//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Dataset runs the full pipeline: convert, aggregate, and index.
// See prd003-dataset for full requirements.
func Dataset() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "dataset", "build", "--force")
}

// Index re-indexes converted scripts into the dataset database.
// See prd003-dataset R4 for full requirements.
func Index() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "dataset", "index")
}
