package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host string
	pin  string
)

var rootCmd = &cobra.Command{
	Use:   "stumped-cli",
	Short: "A CLI to interact with the stumped server",
	Long: `A command-line interface for making requests to the various endpoints
of the stumped prediction pool.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&pin, "pin", "", "The admin PIN, required for mutating commands when the room has one")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
