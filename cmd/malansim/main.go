// Command malansim is a small demonstrator binary for the malan
// package: a host scripting environment that drives argument parsing and
// result presentation around the library core, wired here with Cobra.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
