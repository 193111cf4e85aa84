package ptz

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced time source for idle timeout tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestDetector(t *testing.T, opts ...Option) *Detector {
	t.Helper()

	d, err := NewDetector(opts...)
	if err != nil {
		t.Fatalf("newTestDetector: %v", err)
	}

	return d
}

// feedAll feeds every byte of p and collects the decoded commands.
func feedAll(d *Detector, p []byte) []Command {
	var cmds []Command
	for _, b := range p {
		if cmd, ok := d.Feed(b); ok {
			cmds = append(cmds, cmd)
		}
	}

	return cmds
}

func sum8(p []byte) byte {
	var v byte
	for _, b := range p {
		v += b
	}

	return v
}

func xorAll(p []byte) byte {
	var v byte
	for _, b := range p {
		v ^= b
	}

	return v
}

// dahuaFrame builds a Dahua frame: 0x90 addr cmd action data1 data2 0x00 sum(0..6).
func dahuaFrame(addr, cmd, action, data1, data2 byte) []byte {
	f := []byte{DahuaHeader, addr, cmd, action, data1, data2, 0x00, 0}
	f[7] = sum8(f[:7])

	return f
}

// pelcoDFrame builds a Pelco-D frame: 0xFF addr cmd1 cmd2 data1 data2 sum(1..5).
func pelcoDFrame(addr, cmd1, cmd2, data1, data2 byte) []byte {
	f := []byte{PelcoDHeader, addr, cmd1, cmd2, data1, data2, 0}
	f[6] = sum8(f[1:6])

	return f
}

// pelcoPFrame builds a Pelco-P frame: 0xA0 addr d1 d2 d3 d4 0xAF xor(0..6).
func pelcoPFrame(addr, d1, d2, d3, d4 byte) []byte {
	f := []byte{PelcoPHeader, addr, d1, d2, d3, d4, PelcoPEnd, 0}
	f[7] = xorAll(f[:7])

	return f
}

// hikvisionFrame builds a Hikvision frame: 0xE1 addr cmd data1 action xor(0..4).
func hikvisionFrame(addr, cmd, data1, action byte) []byte {
	f := []byte{HikvisionHeader, addr, cmd, data1, action, 0}
	f[5] = xorAll(f[:5])

	return f
}

// hanbangFrame builds a Hanbang frame: 0xF6 cmd addr action data1 data2 sum(1..5)&0x7F.
func hanbangFrame(cmd, addr, action, data1, data2 byte) []byte {
	f := []byte{HanbangHeader, cmd, addr, action, data1, data2, 0}
	f[6] = sum8(f[1:6]) & 0x7F

	return f
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}

// noiseBytes returns n bytes that are not a header of any protocol.
func noiseBytes(n int) []byte {
	out := make([]byte, 0, n)
	for v := 0; len(out) < n; v = (v + 37) % 256 {
		if !IsHeader(byte(v)) {
			out = append(out, byte(v))
		}
	}

	return out
}
