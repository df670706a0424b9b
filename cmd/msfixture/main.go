// Package main provides the msfixture CLI.
package main

import "github.com/mesh-intelligence/msfixture/internal/cli"

func main() {
	cli.Execute()
}
