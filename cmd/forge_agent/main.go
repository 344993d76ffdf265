// Package main provides the entry point for the resume-forge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "forge_agent",
	Short: "Resume Forge content selection and generation pipeline",
	Long:  "Resume Forge scores a library of resume content against extracted job requirements and drives an ordered, validated LLM pipeline to assemble a tailored resume.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
