package ptz

// Protocol identifies the wire protocol a Command was decoded from.
type Protocol uint8

const (
	// ProtocolUnknown is the zero value; it is never reported for a decoded Command.
	ProtocolUnknown Protocol = iota
	Dahua
	PelcoD
	PelcoP
	Hikvision
	Hanbang
)

// NumProtocols is the number of supported protocols.
const NumProtocols = 5

// Header bytes.
const (
	DahuaHeader     byte = 0x90
	PelcoDHeader    byte = 0xFF
	PelcoPHeader    byte = 0xA0
	PelcoPEnd       byte = 0xAF // ETX at offset 6, checked only in strict mode
	HikvisionHeader byte = 0xE1
	HanbangHeader   byte = 0xF6
)

// Frame lengths in bytes.
const (
	DahuaFrameLen     = 8
	PelcoDFrameLen    = 7
	PelcoPFrameLen    = 8
	HikvisionFrameLen = 6
	HanbangFrameLen   = 7
)

// WindowSize is the capacity of the detector window, the longest frame of all protocols.
const WindowSize = 8

var protocolNames = [...]string{
	ProtocolUnknown: "Unknown",
	Dahua:           "Dahua",
	PelcoD:          "Pelco-D",
	PelcoP:          "Pelco-P",
	Hikvision:       "Hikvision",
	Hanbang:         "Hanbang",
}

// String returns the protocol name as printed on camera documentation, e.g. "Pelco-D".
func (p Protocol) String() string {
	if int(p) < len(protocolNames) {
		return protocolNames[p]
	}

	return protocolNames[ProtocolUnknown]
}

// Protocols returns all supported protocols in detection priority order.
func Protocols() [NumProtocols]Protocol {
	return [NumProtocols]Protocol{Dahua, PelcoD, PelcoP, Hikvision, Hanbang}
}

// IsHeader reports whether b is the header byte of any supported protocol.
func IsHeader(b byte) bool {
	switch b {
	case DahuaHeader, PelcoDHeader, PelcoPHeader, HikvisionHeader, HanbangHeader:
		return true
	default:
		return false
	}
}

// index maps a valid protocol to [0, NumProtocols).
func (p Protocol) index() int {
	return int(p) - 1
}

func (p Protocol) valid() bool {
	return p >= Dahua && p <= Hanbang
}
