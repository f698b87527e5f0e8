package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tovlin/oscline/osc"
)

var beaconCmd = &cobra.Command{
	Use:   "beacon ADDRESS [ARG...]",
	Short: "Transmit one OSC message periodically over UDP",
	Long: `Transmit the given message to the configured address at the configured
interval until interrupted. Arguments use the same typed literals as send.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := buildMessage(args[0], args[1:])
		if err != nil {
			return err
		}

		b := &osc.Beacon{
			Addr:      cfg.Addr,
			LocalAddr: cfg.LocalAddr,
			Interval:  cfg.Interval,
			Log:       &logger,
			OnError: func(err error) {
				logger.Error().Err(err).Msg("beacon transmit failed")
			},
		}

		if err := b.Start(msg); err != nil {
			return err
		}
		logger.Info().
			Str("to", cfg.Addr).
			Dur("interval", cfg.Interval).
			Str("message", msg.String()).
			Msg("beacon running, press Ctrl-C to stop")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		b.Stop()
		logger.Info().Uint64("transmitted", b.Count()).Msg("beacon stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(beaconCmd)
}
