//go:build mage

package main

import "github.com/magefile/mage/mg"

// CI builds the binary and runs the test suite, as the CI pipeline does.
func CI() error {
	mg.SerialDeps(Build)
	return Test()
}
