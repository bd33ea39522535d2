package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/agentsmd/cmd/agents"
	"github.com/arthur-debert/agentsmd/pkg/output/styles"
)

func main() {
	rootCmd := agents.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, styles.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
