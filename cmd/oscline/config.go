package main

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// config holds the resolved runtime settings for every subcommand.
type config struct {
	Network            string
	Addr               string
	ByteOrder          binary.ByteOrder
	FilterMethods      bool
	ConsumeParseErrors bool
	Methods            []string
	Interval           time.Duration
	LocalAddr          string
}

func defaultConfig() config {
	return config{
		Network:   "udp",
		Addr:      "127.0.0.1:8765",
		ByteOrder: binary.BigEndian,
		Interval:  time.Second,
	}
}

// fileConfig is the oscline config.toml key mapping.
type fileConfig struct {
	Network            string   `toml:"network"`
	Addr               string   `toml:"addr"`
	ByteOrder          string   `toml:"byte_order"`
	FilterMethods      bool     `toml:"filter_methods"`
	ConsumeParseErrors bool     `toml:"consume_parse_errors"`
	Methods            []string `toml:"methods"`
	IntervalMS         int      `toml:"interval_ms"`
	LocalAddr          string   `toml:"local_addr"`
}

// loadConfig overlays the TOML file at path, when given, onto the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("network") {
		cfg.Network = strings.TrimSpace(raw.Network)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("byte_order") {
		switch strings.TrimSpace(raw.ByteOrder) {
		case "big":
			cfg.ByteOrder = binary.BigEndian
		case "little":
			cfg.ByteOrder = binary.LittleEndian
		default:
			return config{}, fmt.Errorf("load config: unsupported byte_order %q (expected big or little)", raw.ByteOrder)
		}
	}
	if meta.IsDefined("filter_methods") {
		cfg.FilterMethods = raw.FilterMethods
	}
	if meta.IsDefined("consume_parse_errors") {
		cfg.ConsumeParseErrors = raw.ConsumeParseErrors
	}
	if meta.IsDefined("methods") {
		cfg.Methods = raw.Methods
	}
	if meta.IsDefined("interval_ms") {
		if raw.IntervalMS <= 0 {
			return config{}, fmt.Errorf("load config: interval_ms must be positive, got %d", raw.IntervalMS)
		}
		cfg.Interval = time.Duration(raw.IntervalMS) * time.Millisecond
	}
	if meta.IsDefined("local_addr") {
		cfg.LocalAddr = strings.TrimSpace(raw.LocalAddr)
	}

	return cfg, nil
}
