// Package cli provides command-line interface setup and configuration
// for poai. It handles flag parsing, command creation, configuration
// and credential lookup using cobra, viper and godotenv, and renders
// progress and run reports.
package cli
