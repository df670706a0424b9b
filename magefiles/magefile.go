// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the msfixture project using Mage.
//
// Usage:
//
//	mage build          Compile msfixture binary to bin/
//	mage test           Run all tests
//	mage testShort      Run tests with -short
//	mage lint           Run golangci-lint
//	mage fixtures       Generate one fixture of each kind under bin/fixtures
//	mage clean          Remove build artifacts
//	mage install        Install msfixture to GOPATH/bin
//	mage stats          Print Go lines of code
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestShort runs tests with -short.
func TestShort() error {
	return sh.RunV(binGo, "test", "-short", "./...")
}

// Fixtures builds the binary and generates a scaffold, a real-data harness,
// and a quant bundle (with library) under bin/fixtures.
func Fixtures() error {
	mg.Deps(Build)
	bin := filepath.Join(binaryDir, binaryName)
	out := filepath.Join(binaryDir, "fixtures")
	for _, args := range [][]string{
		{"scaffold"},
		{"realdata"},
		{"quant", "--library"},
	} {
		full := append([]string{"--out", out}, args...)
		if err := sh.RunV(bin, full...); err != nil {
			return err
		}
	}
	return nil
}

// Stats prints Go lines of code.
func Stats() error {
	var prodLines, testLines int

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path == "vendor" || path == ".git" || path == binaryDir || path == "_examples" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasPrefix(path, "magefiles") {
			return nil
		}
		count, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") {
			testLines += count
		} else {
			prodLines += count
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Lines of code (Go, total):      %d\n", prodLines+testLines)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
