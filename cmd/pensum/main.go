// pensum answers questions about a university curriculum.
//
// Usage:
//
//	pensum serve [--config <path>]
//	pensum ask [--stream] [--config <path>] <question...>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/pensum/internal/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "pensum",
	Short: "Curriculum question answering service",
	Long: "pensum answers questions about a university curriculum, combining\n" +
		"deterministic lookups with retrieval-grounded generation.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file path (default config/<ENV>.yaml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.Version = version.String()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
