package ptz

type checksumKind uint8

const (
	sumMod256 checksumKind = iota
	xor8
	sumMod128
)

// checksum computes the frame check value over p.
func (k checksumKind) checksum(p []byte) byte {
	var v byte
	switch k {
	case xor8:
		for _, b := range p {
			v ^= b
		}
	case sumMod128:
		for _, b := range p {
			v += b
		}
		v &= 0x7F
	default:
		for _, b := range p {
			v += b
		}
	}

	return v
}

// noField marks a Command field that a protocol does not carry.
const noField = -1

// frameSpec describes one protocol's frame layout.
//
// The checksum covers frame[sumFrom:sumTo] and is stored at frame[sumAt].
// fields holds the frame offsets of Addr, Code, Action, Data1 and Data2.
type frameSpec struct {
	protocol Protocol
	header   byte
	length   int
	kind     checksumKind
	sumFrom  int
	sumTo    int
	sumAt    int
	fields   [5]int8
}

// frameSpecs is ordered by detection priority.
var frameSpecs = [NumProtocols]frameSpec{
	{
		protocol: Dahua, header: DahuaHeader, length: DahuaFrameLen,
		kind: sumMod256, sumFrom: 0, sumTo: 7, sumAt: 7,
		fields: [5]int8{1, 2, 3, 4, 5},
	},
	{
		protocol: PelcoD, header: PelcoDHeader, length: PelcoDFrameLen,
		kind: sumMod256, sumFrom: 1, sumTo: 6, sumAt: 6,
		fields: [5]int8{1, 2, 3, 4, 5},
	},
	{
		protocol: PelcoP, header: PelcoPHeader, length: PelcoPFrameLen,
		kind: xor8, sumFrom: 0, sumTo: 7, sumAt: 7,
		fields: [5]int8{1, 2, 3, 4, 5},
	},
	{
		protocol: Hikvision, header: HikvisionHeader, length: HikvisionFrameLen,
		kind: xor8, sumFrom: 0, sumTo: 5, sumAt: 5,
		fields: [5]int8{1, 2, 4, 3, noField},
	},
	{
		protocol: Hanbang, header: HanbangHeader, length: HanbangFrameLen,
		kind: sumMod128, sumFrom: 1, sumTo: 6, sumAt: 6,
		fields: [5]int8{2, 1, 3, 4, 5},
	},
}

// match reports whether window starts with a complete, valid frame of this protocol.
func (fs *frameSpec) match(window []byte, strictPelcoP bool) bool {
	if len(window) < fs.length || window[0] != fs.header {
		return false
	}
	if strictPelcoP && fs.protocol == PelcoP && window[6] != PelcoPEnd {
		return false
	}

	return fs.kind.checksum(window[fs.sumFrom:fs.sumTo]) == window[fs.sumAt]
}

func (fs *frameSpec) extract(frame []byte) Command {
	cmd := Command{
		Protocol: fs.protocol,
		Valid:    true,
		Len:      uint8(fs.length), //nolint:gosec // frame lengths are at most WindowSize
	}
	copy(cmd.Packet[:], frame[:fs.length])

	cmd.Addr = fieldAt(frame, fs.fields[0])
	cmd.Code = fieldAt(frame, fs.fields[1])
	cmd.Action = fieldAt(frame, fs.fields[2])
	cmd.Data1 = fieldAt(frame, fs.fields[3])
	cmd.Data2 = fieldAt(frame, fs.fields[4])

	return cmd
}

func fieldAt(frame []byte, off int8) byte {
	if off == noField {
		return 0
	}

	return frame[off]
}
