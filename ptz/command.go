package ptz

import "fmt"

// Command is a normalized PTZ command decoded from a single frame.
//
// The meaning of Code, Action, Data1 and Data2 is protocol specific; for Pelco-D they are
// command 1, command 2, pan speed and tilt speed.
type Command struct {
	Protocol Protocol
	Addr     byte
	Code     byte
	Action   byte
	Data1    byte
	Data2    byte
	Valid    bool

	// Len is the frame length; Packet holds the frame zero-padded to WindowSize.
	Len    uint8
	Packet [WindowSize]byte
}

// Frame returns the raw frame bytes without padding.
func (c *Command) Frame() []byte {
	return c.Packet[:c.Len]
}

// String returns a compact human readable form of the command.
func (c *Command) String() string {
	return fmt.Sprintf("%s addr=0x%02X cmd=0x%02X action=0x%02X data=[0x%02X 0x%02X] frame=% X",
		c.Protocol, c.Addr, c.Code, c.Action, c.Data1, c.Data2, c.Frame())
}
