// Package main provides the entry point for the resume-guard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_guard",
	Short: "Guarded AI resume generation",
	Long:  "resume-guard turns a candidate profile and a job description into a validated, ATS-optimized resume. Every AI output is validated before use, and a terminal integrity audit reports what the guards could not fix.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
