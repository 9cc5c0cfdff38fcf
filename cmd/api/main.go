package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/studysync/core/cmd/api/commands"
)

// @title StudySync API
// @version 1.0
// @description Calendar feed import and synchronization service for academic scheduling

// @contact.name StudySync Support
// @contact.url https://github.com/studysync/core

// @license.name MIT
// @license.url https://github.com/studysync/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "studysync",
		Short: "StudySync API Server",
		Long:  `StudySync imports academic calendar feeds, extracts classes and assignments, and synchronizes them into Google Calendar.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
