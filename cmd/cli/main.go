package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host string
)

var rootCmd = &cobra.Command{
	Use:   "teesheet-cli",
	Short: "Front-desk CLI for the teesheet server",
	Long: `Drive the booking lifecycle from the command line: create and confirm
bookings, check parties in, inspect folios and settle them. Every command is a
thin wrapper over the server's HTTP endpoints.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command failed: %s\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
