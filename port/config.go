package port

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/arloliu/go-ptz/logger"
	"github.com/arloliu/go-ptz/ptz"
	"go.bug.st/serial"
)

// Default serial settings. Most PTZ cameras ship configured for 9600 8N1.
const (
	DefaultBaudRate       = 9600
	DefaultDataBits       = 8
	DefaultReadTimeout    = 50 * time.Millisecond
	DefaultReadBufferSize = 64
	DefaultCloseTimeout   = 3 * time.Second
)

const (
	MinReadTimeout = 1 * time.Millisecond
	MaxReadTimeout = 1 * time.Second

	MaxReadBufferSize = 4096
)

// SupportedBaudRates lists the baud rates accepted by WithBaudRate.
var SupportedBaudRates = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200}

// Config holds the settings of one PTZ serial input.
type Config struct {
	portName string

	baudRate int
	dataBits int
	parity   serial.Parity
	stopBits serial.StopBits

	readTimeout    time.Duration
	readBufferSize int
	closeTimeout   time.Duration

	detectorOpts []ptz.Option

	// addresses is nil when every device address is accepted.
	addresses *[256]bool

	logger logger.Logger
}

// NewConfig creates the configuration for the serial port portName, e.g. "/dev/ttyUSB0" or
// "COM3". opts are applied in order.
func NewConfig(portName string, opts ...Option) (*Config, error) {
	portName = strings.TrimSpace(portName)
	if portName == "" {
		return nil, errors.New("port: port name must not be empty")
	}

	cfg := &Config{
		portName:       portName,
		baudRate:       DefaultBaudRate,
		dataBits:       DefaultDataBits,
		parity:         serial.NoParity,
		stopBits:       serial.OneStopBit,
		readTimeout:    DefaultReadTimeout,
		readBufferSize: DefaultReadBufferSize,
		closeTimeout:   DefaultCloseTimeout,
		logger:         logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	// Surface detector option errors here rather than when the reader starts.
	if _, err := ptz.NewDetector(cfg.detectorOpts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// --- Getters ---

// PortName returns the serial port name.
func (cfg *Config) PortName() string { return cfg.portName }

// BaudRate returns the configured baud rate.
func (cfg *Config) BaudRate() int { return cfg.baudRate }

// DataBits returns the number of data bits per character.
func (cfg *Config) DataBits() int { return cfg.dataBits }

// Parity returns the parity mode.
func (cfg *Config) Parity() serial.Parity { return cfg.parity }

// StopBits returns the stop bit setting.
func (cfg *Config) StopBits() serial.StopBits { return cfg.stopBits }

// ReadTimeout returns the serial read timeout.
func (cfg *Config) ReadTimeout() time.Duration { return cfg.readTimeout }

// ReadBufferSize returns the size of the buffer passed to each Read call.
func (cfg *Config) ReadBufferSize() int { return cfg.readBufferSize }

// CloseTimeout returns how long Reader.Close waits for the read loop to stop.
func (cfg *Config) CloseTimeout() time.Duration { return cfg.closeTimeout }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// Accepts reports whether commands for device address addr pass the address filter.
func (cfg *Config) Accepts(addr byte) bool {
	return cfg.addresses == nil || cfg.addresses[addr]
}

// Addresses returns the accepted device addresses in ascending order, or nil when every
// address is accepted.
func (cfg *Config) Addresses() []byte {
	if cfg.addresses == nil {
		return nil
	}

	var out []byte
	for i, ok := range cfg.addresses {
		if ok {
			out = append(out, byte(i))
		}
	}

	return out
}

// Mode returns the serial mode for opening the port.
func (cfg *Config) Mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: cfg.baudRate,
		DataBits: cfg.dataBits,
		Parity:   cfg.parity,
		StopBits: cfg.stopBits,
	}
}

// --- Option ---

// Option is a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithBaudRate sets the baud rate. Must be one of SupportedBaudRates.
func WithBaudRate(rate int) Option {
	return optFunc(func(cfg *Config) error {
		if !slices.Contains(SupportedBaudRates, rate) {
			return fmt.Errorf("port: unsupported baud rate %d", rate)
		}
		cfg.baudRate = rate

		return nil
	})
}

// WithDataBits sets the number of data bits, 5 to 8.
func WithDataBits(bits int) Option {
	return optFunc(func(cfg *Config) error {
		if bits < 5 || bits > 8 {
			return fmt.Errorf("port: data bits %d out of range [5, 8]", bits)
		}
		cfg.dataBits = bits

		return nil
	})
}

// WithParity sets the parity mode.
func WithParity(p serial.Parity) Option {
	return optFunc(func(cfg *Config) error {
		if p < serial.NoParity || p > serial.SpaceParity {
			return fmt.Errorf("port: invalid parity %d", p)
		}
		cfg.parity = p

		return nil
	})
}

// WithStopBits sets the stop bit setting.
func WithStopBits(s serial.StopBits) Option {
	return optFunc(func(cfg *Config) error {
		if s < serial.OneStopBit || s > serial.TwoStopBits {
			return fmt.Errorf("port: invalid stop bits %d", s)
		}
		cfg.stopBits = s

		return nil
	})
}

// WithReadTimeout sets the serial read timeout, which bounds how long the read loop takes
// to notice cancellation.
func WithReadTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinReadTimeout || d > MaxReadTimeout {
			return fmt.Errorf("port: read timeout %v out of range [%v, %v]", d, MinReadTimeout, MaxReadTimeout)
		}
		cfg.readTimeout = d

		return nil
	})
}

// WithReadBufferSize sets the size of the buffer passed to each Read call.
func WithReadBufferSize(size int) Option {
	return optFunc(func(cfg *Config) error {
		if size < 1 || size > MaxReadBufferSize {
			return fmt.Errorf("port: read buffer size %d out of range [1, %d]", size, MaxReadBufferSize)
		}
		cfg.readBufferSize = size

		return nil
	})
}

// WithCloseTimeout sets how long Reader.Close waits for the read loop to stop.
func WithCloseTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("port: close timeout must be positive")
		}
		cfg.closeTimeout = d

		return nil
	})
}

// WithIdleTimeout sets the detector idle timeout; see ptz.WithIdleTimeout.
func WithIdleTimeout(d time.Duration) Option {
	return WithDetectorOptions(ptz.WithIdleTimeout(d))
}

// WithStrictPelcoP requires the Pelco-P end byte; see ptz.WithStrictPelcoP.
func WithStrictPelcoP(enabled bool) Option {
	return WithDetectorOptions(ptz.WithStrictPelcoP(enabled))
}

// WithDetectorOptions appends options used when creating the reader's detector.
func WithDetectorOptions(opts ...ptz.Option) Option {
	return optFunc(func(cfg *Config) error {
		cfg.detectorOpts = append(cfg.detectorOpts, opts...)

		return nil
	})
}

// WithAddresses restricts delivered commands to the given device addresses.
// Calling it again adds to the set. Without it every address is accepted.
func WithAddresses(addrs ...byte) Option {
	return optFunc(func(cfg *Config) error {
		if len(addrs) == 0 {
			return errors.New("port: address list must not be empty")
		}
		if cfg.addresses == nil {
			cfg.addresses = new([256]bool)
		}
		for _, a := range addrs {
			cfg.addresses[a] = true
		}

		return nil
	})
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("port: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}

// ParseParity converts "none", "odd", "even", "mark" or "space" to a serial.Parity.
func ParseParity(s string) (serial.Parity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "n":
		return serial.NoParity, nil
	case "odd", "o":
		return serial.OddParity, nil
	case "even", "e":
		return serial.EvenParity, nil
	case "mark", "m":
		return serial.MarkParity, nil
	case "space", "s":
		return serial.SpaceParity, nil
	default:
		return serial.NoParity, fmt.Errorf("port: unknown parity %q", s)
	}
}

// ParseStopBits converts "1", "1.5" or "2" to a serial.StopBits.
func ParseStopBits(s string) (serial.StopBits, error) {
	switch strings.TrimSpace(s) {
	case "", "1":
		return serial.OneStopBit, nil
	case "1.5":
		return serial.OnePointFiveStopBits, nil
	case "2":
		return serial.TwoStopBits, nil
	default:
		return serial.OneStopBit, fmt.Errorf("port: unknown stop bits %q", s)
	}
}
