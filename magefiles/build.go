//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for owloop using Mage.
//
// Usage:
//
//	mage build        Compile every package
//	mage test:all     Run all tests
//	mage test:race    Run all tests with the race detector
//	mage test:cover   Run all tests and write coverage.out
//	mage lint         Run golangci-lint
//	mage vet          Run go vet
//	mage tidy         Tidy go.mod and go.sum
//	mage clean        Remove build artifacts
package main

import (
	"os"

	"github.com/magefile/mage/sh"
)

const (
	binGo        = "go"
	coverProfile = "coverage.out"
)

// Build compiles every package of the module.
func Build() error {
	return sh.RunV(binGo, "build", "./...")
}

// Tidy tidies go.mod and go.sum.
func Tidy() error {
	return sh.RunV(binGo, "mod", "tidy")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(coverProfile); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean", "./...")
}
