// Package metrics exposes detector and reader counters as Prometheus metrics.
//
// The counters themselves live in ptz.DetectorMetrics and port.ReaderMetrics as atomics;
// this package only registers CounterFuncs reading them, so the decode loop never touches
// Prometheus types.
package metrics

import (
	"errors"

	"github.com/arloliu/go-ptz/port"
	"github.com/arloliu/go-ptz/ptz"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "ptz"

// RegisterDetector registers the counters of m labeled with the port name.
func RegisterDetector(reg prometheus.Registerer, portName string, m *ptz.DetectorMetrics) error {
	labels := prometheus.Labels{"port": portName}

	collectors := []prometheus.Collector{
		counterFunc("detector_bytes_total", "Bytes fed to the frame detector.", labels, m.ByteCount.Load),
		counterFunc("detector_discarded_bytes_total", "Bytes dropped because they cannot start a frame.", labels, m.DiscardCount.Load),
		counterFunc("detector_evictions_total", "Candidate frame starts evicted from the window.", labels, m.EvictCount.Load),
		counterFunc("detector_idle_resets_total", "Partial frames dropped after an idle gap.", labels, m.IdleResetCount.Load),
	}

	for _, p := range ptz.Protocols() {
		frameLabels := prometheus.Labels{"port": portName, "protocol": p.String()}
		collectors = append(collectors,
			counterFunc("detector_frames_total", "Frames decoded per protocol.", frameLabels, func() uint64 { return m.Frames(p) }),
		)
	}

	return register(reg, collectors)
}

// RegisterReader registers the reader counters and the counters of its detector.
func RegisterReader(reg prometheus.Registerer, r *port.Reader) error {
	m := r.GetMetrics()
	labels := prometheus.Labels{"port": r.Name()}

	collectors := []prometheus.Collector{
		counterFunc("reader_reads_total", "Read calls that returned data.", labels, m.ReadCount.Load),
		counterFunc("reader_read_errors_total", "Failed read calls, timeouts included.", labels, m.ReadErrCount.Load),
		counterFunc("reader_commands_total", "Commands delivered to the handler.", labels, m.CommandCount.Load),
		counterFunc("reader_filtered_total", "Commands dropped by the address filter.", labels, m.FilteredCount.Load),
	}

	if err := register(reg, collectors); err != nil {
		return err
	}

	return RegisterDetector(reg, r.Name(), r.DetectorMetrics())
}

// RegisterHub registers every reader of h.
func RegisterHub(reg prometheus.Registerer, h *port.Hub) error {
	var errs []error
	h.Range(func(_ string, r *port.Reader) bool {
		if err := RegisterReader(reg, r); err != nil {
			errs = append(errs, err)
		}

		return true
	})

	return errors.Join(errs...)
}

func counterFunc(name, help string, labels prometheus.Labels, load func() uint64) prometheus.CounterFunc {
	return prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   Namespace,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	}, func() float64 { return float64(load()) })
}

func register(reg prometheus.Registerer, collectors []prometheus.Collector) error {
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}
