// Package main is the promptdeck entry point.
package main

import (
	"fmt"
	"os"

	"github.com/thebtf/promptdeck/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
