//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
)

// Default target
//
//nolint:gochecknoglobals // Required by mage for default target
var Default = Build

// Build compiles both CLI binaries into bin/.
func Build() error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	for _, cmd := range []string{"percent", "filter"} {
		if err := run("go", "build", "-o", "bin/"+cmd, "./cmd/"+cmd); err != nil {
			return err
		}
	}
	return nil
}

// Test runs the unit test suite.
func Test() error {
	return run("go", "test", "./...")
}

// TestVerbose runs the unit test suite with verbose output.
func TestVerbose() error {
	return run("go", "test", "-v", "./...")
}

// Lint runs go vet across the module.
func Lint() error {
	return run("go", "vet", "./...")
}

// Bench runs the benchmark suite.
func Bench() error {
	return run("go", "test", "-run", "^$", "-bench", ".", "./...")
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v: %w", name, args, err)
	}
	return nil
}
