package ptz

import (
	"errors"
	"fmt"
	"time"
)

// DefaultIdleTimeout is the inter-byte gap after which a partial frame is discarded.
const DefaultIdleTimeout = 10 * time.Millisecond

// MaxIdleTimeout bounds WithIdleTimeout; longer gaps would let unrelated bursts merge.
const MaxIdleTimeout = 10 * time.Second

type detectorConfig struct {
	idleTimeout  time.Duration
	strictPelcoP bool
	headerFilter bool
	now          func() time.Time
}

func defaultDetectorConfig() detectorConfig {
	return detectorConfig{
		idleTimeout:  DefaultIdleTimeout,
		headerFilter: true,
		now:          time.Now,
	}
}

// Option is a functional option for configuring a Detector.
type Option interface {
	apply(*detectorConfig) error
}

type optFunc func(*detectorConfig) error

func (f optFunc) apply(cfg *detectorConfig) error { return f(cfg) }

// WithIdleTimeout sets the idle gap after which a partial frame is discarded.
// Zero disables idle reset.
func WithIdleTimeout(d time.Duration) Option {
	return optFunc(func(cfg *detectorConfig) error {
		if d < 0 || d > MaxIdleTimeout {
			return fmt.Errorf("ptz: idle timeout %v out of range [0, %v]", d, MaxIdleTimeout)
		}
		cfg.idleTimeout = d

		return nil
	})
}

// WithStrictPelcoP requires the Pelco-P end byte 0xAF at offset 6. Disabled by default.
func WithStrictPelcoP(enabled bool) Option {
	return optFunc(func(cfg *detectorConfig) error {
		cfg.strictPelcoP = enabled

		return nil
	})
}

// WithHeaderFilter enables or disables header based resynchronization. Enabled by default.
//
// When disabled, the window only slides when it overflows, so noise bytes occupy window
// slots until they are evicted, and a match clears the whole window. When enabled, a match
// removes only the frame's bytes and keeps any bytes behind it as the start of the next frame.
func WithHeaderFilter(enabled bool) Option {
	return optFunc(func(cfg *detectorConfig) error {
		cfg.headerFilter = enabled

		return nil
	})
}

// WithClock sets the time source used for idle detection.
func WithClock(now func() time.Time) Option {
	return optFunc(func(cfg *detectorConfig) error {
		if now == nil {
			return errors.New("ptz: clock must not be nil")
		}
		cfg.now = now

		return nil
	})
}
