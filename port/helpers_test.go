package port

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/arloliu/go-ptz/logger"
	"github.com/arloliu/go-ptz/ptz"
)

func newTestConfig(t *testing.T, name string, opts ...Option) *Config {
	t.Helper()

	defaults := []Option{
		WithLogger(logger.NewSlogWriter(io.Discard, logger.DebugLevel, false)),
		WithIdleTimeout(0),
		WithCloseTimeout(time.Second),
	}

	cfg, err := NewConfig(name, append(defaults, opts...)...)
	if err != nil {
		t.Fatalf("newTestConfig: %v", err)
	}

	return cfg
}

// collector is a CommandHandler that records commands.
type collector struct {
	mu   sync.Mutex
	cmds []ptz.Command
}

func (c *collector) handle(cmd ptz.Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cmds = append(c.cmds, cmd)
}

func (c *collector) commands() []ptz.Command {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]ptz.Command(nil), c.cmds...)
}

// chanSource is a byte source fed through a channel. It returns (0, nil) when no chunk
// arrives within wait, like a serial port with a read timeout, and io.EOF once the channel
// is closed.
type chanSource struct {
	ch   chan []byte
	wait time.Duration
}

func newChanSource() *chanSource {
	return &chanSource{ch: make(chan []byte, 16), wait: 5 * time.Millisecond}
}

func (s *chanSource) Read(p []byte) (int, error) {
	select {
	case b, ok := <-s.ch:
		if !ok {
			return 0, io.EOF
		}
		return copy(p, b), nil
	case <-time.After(s.wait):
		return 0, nil
	}
}

// scriptSource returns the scripted results in order, then io.EOF.
type scriptSource struct {
	steps []readStep
}

type readStep struct {
	data []byte
	err  error
}

func (s *scriptSource) Read(p []byte) (int, error) {
	if len(s.steps) == 0 {
		return 0, io.EOF
	}
	step := s.steps[0]
	s.steps = s.steps[1:]

	return copy(p, step.data), step.err
}

type closeCounter struct {
	closed int
	err    error
}

func (c *closeCounter) Close() error {
	c.closed++
	return c.err
}

func pelcoDFrame(addr, cmd1, cmd2, data1, data2 byte) []byte {
	f := []byte{ptz.PelcoDHeader, addr, cmd1, cmd2, data1, data2, 0}
	f[6] = addr + cmd1 + cmd2 + data1 + data2

	return f
}

func dahuaFrame(addr, cmd, action, data1, data2 byte) []byte {
	f := []byte{ptz.DahuaHeader, addr, cmd, action, data1, data2, 0x00, 0}
	for _, b := range f[:7] {
		f[7] += b
	}

	return f
}
