package ptz

import "sync/atomic"

// DetectorMetrics contains atomic counters for a Detector.
// Metrics can be used as the value of a prometheus CounterFunc.
type DetectorMetrics struct {
	// ByteCount indicates the number of bytes fed to the detector.
	ByteCount atomic.Uint64
	// FrameCount indicates the number of decoded frames, indexed by protocol priority.
	FrameCount [NumProtocols]atomic.Uint64
	// DiscardCount indicates the number of bytes dropped because they cannot start a frame.
	DiscardCount atomic.Uint64
	// EvictCount indicates the number of candidate frame starts evicted from the window.
	EvictCount atomic.Uint64
	// IdleResetCount indicates the number of partial frames dropped after an idle gap.
	IdleResetCount atomic.Uint64
}

// Frames returns the number of decoded frames for protocol p.
func (m *DetectorMetrics) Frames(p Protocol) uint64 {
	if !p.valid() {
		return 0
	}

	return m.FrameCount[p.index()].Load()
}

// TotalFrames returns the number of decoded frames across all protocols.
func (m *DetectorMetrics) TotalFrames() uint64 {
	var total uint64
	for i := range m.FrameCount {
		total += m.FrameCount[i].Load()
	}

	return total
}

func (m *DetectorMetrics) incByteCount() {
	m.ByteCount.Add(1)
}

func (m *DetectorMetrics) incFrameCount(p Protocol) {
	m.FrameCount[p.index()].Add(1)
}

func (m *DetectorMetrics) addDiscardCount(n int) {
	m.DiscardCount.Add(uint64(n)) //nolint:gosec // n is bounded by WindowSize
}

func (m *DetectorMetrics) incEvictCount() {
	m.EvictCount.Add(1)
}

func (m *DetectorMetrics) incIdleResetCount() {
	m.IdleResetCount.Add(1)
}
