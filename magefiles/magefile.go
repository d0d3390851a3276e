//go:build mage

// Package main provides build targets for the cyclic project using Mage.
//
// Usage:
//
//	mage build      Compile the cyclic binary to bin/
//	mage test       Run all tests
//	mage golden     Regenerate golden files under internal/scenario
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install cyclic to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "cyclic"
	binaryDir  = "bin"
	cmdDir     = "./cmd/cyclic"
)

// Build compiles the cyclic binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Golden regenerates the golden trace files. Review the diff before
// committing - golden files are the source of truth for the numerics.
func Golden() error {
	return sh.RunV("go", "test", "./internal/scenario", "-run", "TestGolden", "-update")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
