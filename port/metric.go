package port

import "sync/atomic"

// ReaderMetrics contains atomic metrics for a Reader.
// Metrics can be used as the value of a prometheus CounterFunc.
type ReaderMetrics struct {
	// ReadCount indicates the number of Read calls that returned data.
	ReadCount atomic.Uint64
	// ReadErrCount indicates the number of failed Read calls, timeouts included.
	ReadErrCount atomic.Uint64
	// CommandCount indicates the number of commands delivered to the handler.
	CommandCount atomic.Uint64
	// FilteredCount indicates the number of commands dropped by the address filter.
	FilteredCount atomic.Uint64
}

func (m *ReaderMetrics) incReadCount() {
	m.ReadCount.Add(1)
}

func (m *ReaderMetrics) incReadErrCount() {
	m.ReadErrCount.Add(1)
}

func (m *ReaderMetrics) incCommandCount() {
	m.CommandCount.Add(1)
}

func (m *ReaderMetrics) incFilteredCount() {
	m.FilteredCount.Add(1)
}
