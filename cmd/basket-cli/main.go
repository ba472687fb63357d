// Package main is the entry point for the basket-cli application.
// It initializes the root command and registers the pipeline, newsletter and
// API user sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/bensternthal/basket/cmd/basket-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "basket-cli",
		Short: "Newsletter service operations CLI tool",
		Long: `basket-cli is a command-line tool for operating the basket newsletter service.
It runs the CI pipeline (validate the pipeline file, execute the build, report
coverage) and manages the newsletter catalog and API users.

Database access is read from the config file referenced by CONFIG_PATH
(configs/rest-app.yaml by default).`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitCICommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize CI commands: %w", err)
	}

	if err := commands.InitNewsletterCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize newsletter commands: %w", err)
	}

	if err := commands.InitAPIUserCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize API user commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
