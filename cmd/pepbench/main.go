// pepbench - ground truth generation for benchmarking peptide identification
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/pepbench/cmd/pepbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
