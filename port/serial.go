package port

import (
	"fmt"

	"go.bug.st/serial"
)

// OpenSerial opens the serial port described by cfg and applies its read timeout.
func OpenSerial(cfg *Config) (serial.Port, error) {
	p, err := serial.Open(cfg.portName, cfg.Mode())
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOpenPort, cfg.portName, err)
	}

	if err := p.SetReadTimeout(cfg.readTimeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("%w %q: set read timeout: %w", ErrOpenPort, cfg.portName, err)
	}

	return p, nil
}

// Open opens the serial port described by cfg and returns a Reader that owns it.
// Closing the Reader closes the port.
func Open(cfg *Config, handler CommandHandler) (*Reader, error) {
	p, err := OpenSerial(cfg)
	if err != nil {
		return nil, err
	}

	r, err := newReader(p, p, cfg, handler)
	if err != nil {
		_ = p.Close()
		return nil, err
	}

	return r, nil
}

// ListSerialPorts returns the serial ports present on the system.
func ListSerialPorts() ([]string, error) {
	return serial.GetPortsList()
}
