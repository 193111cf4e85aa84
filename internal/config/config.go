// Package config loads the PTZ monitor configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/arloliu/go-ptz/logger"
	"github.com/arloliu/go-ptz/port"
	"github.com/pelletier/go-toml/v2"
)

const DefaultMetricsAddr = ":9105"

// MonitorConfig is the top-level monitor configuration.
type MonitorConfig struct {
	LogLevel    string       `toml:"log_level"`
	MetricsAddr string       `toml:"metrics_addr"`
	Ports       []PortConfig `toml:"ports"`
}

// PortConfig describes one serial input. Zero values select the port package defaults.
type PortConfig struct {
	Name         string `toml:"name"`
	BaudRate     int    `toml:"baud_rate"`
	DataBits     int    `toml:"data_bits"`
	Parity       string `toml:"parity"`
	StopBits     string `toml:"stop_bits"`
	ReadTimeout  string `toml:"read_timeout"`
	IdleTimeout  string `toml:"idle_timeout"`
	StrictPelcoP bool   `toml:"strict_pelco_p"`
	Addresses    []int  `toml:"addresses"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (MonitorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MonitorConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return MonitorConfig{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	return cfg, nil
}

// Parse decodes and validates a TOML document, filling in defaults.
func Parse(data []byte) (MonitorConfig, error) {
	var cfg MonitorConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return MonitorConfig{}, err
	}

	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = DefaultMetricsAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := Validate(cfg); err != nil {
		return MonitorConfig{}, err
	}

	return cfg, nil
}

// Validate checks the configuration without opening any port.
func Validate(cfg MonitorConfig) error {
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if len(cfg.Ports) == 0 {
		return errors.New("config: at least one port is required")
	}

	seen := make(map[string]bool, len(cfg.Ports))
	for i, p := range cfg.Ports {
		if p.Name == "" {
			return fmt.Errorf("config: ports[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("config: ports[%d]: duplicate port %q", i, p.Name)
		}
		seen[p.Name] = true

		if _, err := p.Options(); err != nil {
			return fmt.Errorf("config: ports[%d]: %w", i, err)
		}
	}

	return nil
}

// Level returns the parsed log level.
func (cfg MonitorConfig) Level() logger.Level {
	lv, _ := logger.ParseLevel(cfg.LogLevel)
	return lv
}

// Options converts the port settings to port options.
func (p PortConfig) Options() ([]port.Option, error) {
	var opts []port.Option

	if p.BaudRate != 0 {
		opts = append(opts, port.WithBaudRate(p.BaudRate))
	}
	if p.DataBits != 0 {
		opts = append(opts, port.WithDataBits(p.DataBits))
	}

	parity, err := port.ParseParity(p.Parity)
	if err != nil {
		return nil, err
	}
	stopBits, err := port.ParseStopBits(p.StopBits)
	if err != nil {
		return nil, err
	}
	opts = append(opts, port.WithParity(parity), port.WithStopBits(stopBits))

	if p.ReadTimeout != "" {
		d, err := time.ParseDuration(p.ReadTimeout)
		if err != nil {
			return nil, fmt.Errorf("read_timeout: %w", err)
		}
		opts = append(opts, port.WithReadTimeout(d))
	}
	if p.IdleTimeout != "" {
		d, err := time.ParseDuration(p.IdleTimeout)
		if err != nil {
			return nil, fmt.Errorf("idle_timeout: %w", err)
		}
		opts = append(opts, port.WithIdleTimeout(d))
	}
	if p.StrictPelcoP {
		opts = append(opts, port.WithStrictPelcoP(true))
	}

	if len(p.Addresses) > 0 {
		addrs := make([]byte, 0, len(p.Addresses))
		for _, a := range p.Addresses {
			if a < 0 || a > 0xFF {
				return nil, fmt.Errorf("address %d out of range [0, 255]", a)
			}
			addrs = append(addrs, byte(a))
		}
		opts = append(opts, port.WithAddresses(addrs...))
	}

	// Apply the options once so that range errors surface at load time.
	if _, err := port.NewConfig(p.Name, opts...); err != nil {
		return nil, err
	}

	return opts, nil
}
