// Package ptz detects pan-tilt-zoom camera control frames in an unstructured serial byte stream.
//
// Five wire protocols share the same RS-485 transport: Dahua, Pelco-D, Pelco-P, Hikvision and
// Hanbang. None of them use an explicit delimiter, so a frame is recognized by its header byte,
// its fixed length and its checksum. [Detector] keeps a fixed 8-byte window of the most recent
// bytes and, after every appended byte, tests the window against each protocol in a fixed
// priority order. The first match is returned as a [Command] and the frame bytes are consumed.
//
// # Wire formats
//
//	Protocol   Header  Length  Checksum      Range  Offset
//	Dahua      0x90    8       sum mod 256   0-6    7
//	Pelco-D    0xFF    7       sum mod 256   1-5    6
//	Pelco-P    0xA0    8       XOR           0-6    7     (0xAF end byte at 6, optional)
//	Hikvision  0xE1    6       XOR           0-4    5
//	Hanbang    0xF6    7       sum mod 128   1-5    6
//
// # Resynchronization
//
// The window is a shift-left buffer, not a ring buffer: bytes leave it only from the front, so
// an older candidate is never revisited out of order. With header filtering enabled (the
// default), bytes that cannot start a frame are discarded as soon as they reach the front, and
// a candidate that reached its full length without a valid checksum is dropped immediately so
// that a frame hidden behind it is found without waiting for more input. When no byte arrives
// for longer than the idle timeout (10ms by default) a partial candidate is discarded before
// the next byte is processed.
//
// Malformed input never produces an error; it simply never matches.
//
// # Concurrency
//
// A Detector is not safe for concurrent use. Each byte source owns its own Detector. Only
// [DetectorMetrics] may be read from other goroutines.
package ptz
