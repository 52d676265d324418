package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/beam-cloud/cup/pkg/commands"
	"github.com/beam-cloud/cup/pkg/cup"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "cup",
	Short: "cup - pack, list and unpack .cup archives",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cup.SetLogLevel(logLevel)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log verbosity (debug, info, warn, error, disabled)")
	rootCmd.AddCommand(commands.PackCmd)
	rootCmd.AddCommand(commands.UnpackCmd)
	rootCmd.AddCommand(commands.ListCmd)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
