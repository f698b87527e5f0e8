package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagNetwork string
	flagAddr    string
	flagVerbose bool

	// Shared state set during PersistentPreRun
	cfg    config
	logger zerolog.Logger
)

// rootCmd is the base command for oscline.
var rootCmd = &cobra.Command{
	Use:           "oscline",
	Short:         "Send, receive, and beacon OpenSoundControl packets over UDP and TCP",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(flagConfig)
		if err != nil {
			return err
		}

		// Flags override the config file.
		if flagNetwork != "" {
			cfg.Network = flagNetwork
		}
		if flagAddr != "" {
			cfg.Addr = flagAddr
		}
		if cfg.Network != "udp" && cfg.Network != "tcp" {
			return fmt.Errorf("unsupported network %q (expected udp or tcp)", cfg.Network)
		}

		level := zerolog.InfoLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().Level(level)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagNetwork, "network", "", "transport network: udp or tcp")
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "remote (send, beacon) or listen address, host:port")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
