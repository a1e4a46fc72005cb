//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "poai"

// Default target to run when none is specified
var Default = Build

// Build compiles the poai binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/poai")
}

// Install installs poai into $GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/poai")
}

// Test runs the unit tests. Integration tests run when provider API keys are set.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs the tests with the race detector
func Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the race-enabled tests
func Check() {
	mg.SerialDeps(Vet, Race)
}

// Clean removes the built binary
func Clean() error {
	return os.RemoveAll(binary)
}
