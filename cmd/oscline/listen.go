package main

import (
	"github.com/spf13/cobra"
	"github.com/tovlin/oscline/osc"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receive OSC packets and print every message",
	Long: `Listen on the configured address and log every incoming OSC message.
Bundles are unpacked recursively, messages arrive in bundle order.

When filter_methods is set in the config file, only messages whose address
matches a registered method are reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := dispatcherFromConfig(cfg)

		d.OnMessage(func(m *osc.Message) {
			tags, _ := m.TypeTags()
			logger.Info().
				Str("address", m.Address).
				Str("typetags", tags).
				Str("message", m.String()).
				Msg("message")
		})
		d.OnBundle(func(b *osc.Bundle) {
			logger.Debug().
				Time("timetag", b.Timetag.Time()).
				Int("elements", len(b.Elements)).
				Msg("bundle")
		})
		d.OnError(func(err error) {
			logger.Warn().Err(err).Msg("dispatch error")
		})

		s := &osc.Server{
			Addr:       cfg.Addr,
			Dispatcher: d,
			ByteOrder:  cfg.ByteOrder,
			Log:        &logger,
		}

		logger.Info().Str("network", cfg.Network).Str("addr", cfg.Addr).Msg("listening")
		if cfg.Network == "tcp" {
			return s.ListenAndServeTCP()
		}
		return s.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

// dispatcherFromConfig builds a Dispatcher with the configured methods and
// filtering behavior.
func dispatcherFromConfig(cfg config) *osc.Dispatcher {
	d := osc.NewDispatcher()
	d.FilterMethods = cfg.FilterMethods
	d.ConsumeParseErrors = cfg.ConsumeParseErrors
	d.Log = &logger
	for _, m := range cfg.Methods {
		if err := d.RegisterMethod(m); err != nil {
			logger.Warn().Err(err).Str("method", m).Msg("skipping method")
		}
	}
	return d
}
