package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tovlin/oscline/osc"
)

var sendCmd = &cobra.Command{
	Use:   "send ADDRESS [ARG...]",
	Short: "Send one OSC message to the configured endpoint",
	Long: `Send one OSC message. Arguments are typed by prefix:

  i:42      int32           h:42      int64
  f:1.5     float32         d:1.5     float64
  s:text    string          b:00ff    blob (hex)
  true      bool            false     bool
  nil       nil

An argument without a prefix is sent as a string.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := buildMessage(args[0], args[1:])
		if err != nil {
			return err
		}

		client := osc.NewClient(nil)
		client.ByteOrder = cfg.ByteOrder
		client.Log = &logger
		if err := client.Connect(cfg.Network, cfg.Addr); err != nil {
			return err
		}
		defer client.Close()

		if err := client.Send(msg); err != nil {
			return err
		}
		logger.Info().Str("to", cfg.Addr).Str("message", msg.String()).Msg("sent")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

// buildMessage assembles a Message from the command line address and typed
// argument literals.
func buildMessage(addr string, args []string) (*osc.Message, error) {
	if !strings.HasPrefix(addr, "/") {
		return nil, fmt.Errorf("OSC address must begin with '/': %q", addr)
	}

	msg := osc.NewMessage(addr)
	for _, a := range args {
		v, err := parseArgument(a)
		if err != nil {
			return nil, err
		}
		if err := msg.Append(v); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

func parseArgument(s string) (interface{}, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "nil":
		return nil, nil
	}

	prefix, rest, found := strings.Cut(s, ":")
	if !found {
		return s, nil
	}

	switch prefix {
	case "i":
		n, err := strconv.ParseInt(rest, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return int32(n), nil
	case "h":
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return n, nil
	case "f":
		f, err := strconv.ParseFloat(rest, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return float32(f), nil
	case "d":
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return f, nil
	case "s":
		return rest, nil
	case "b":
		b, err := hex.DecodeString(rest)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return b, nil
	default:
		// Unknown prefix, treat the whole literal as a string.
		return s, nil
	}
}
