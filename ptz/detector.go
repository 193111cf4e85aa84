package ptz

import "time"

// Detector recognizes PTZ frames in a byte stream, one byte at a time.
//
// The zero value is not usable; create one with NewDetector.
type Detector struct {
	buf  [WindowSize]byte
	n    int
	last time.Time

	cfg     detectorConfig
	metrics DetectorMetrics
}

// NewDetector creates a Detector with the given options applied in order.
func NewDetector(opts ...Option) (*Detector, error) {
	d := &Detector{cfg: defaultDetectorConfig()}

	for _, opt := range opts {
		if err := opt.apply(&d.cfg); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Feed appends b to the window and returns the decoded command if the window now starts with
// a valid frame. It never blocks and never allocates.
func (d *Detector) Feed(b byte) (Command, bool) {
	d.metrics.incByteCount()

	if d.cfg.idleTimeout > 0 {
		now := d.cfg.now()
		if d.n > 0 && now.Sub(d.last) > d.cfg.idleTimeout {
			d.n = 0
			d.metrics.incIdleResetCount()
		}
		d.last = now
	}

	if d.n == WindowSize {
		d.shift(1)
		d.metrics.incEvictCount()
	}
	d.buf[d.n] = b
	d.n++

	return d.scan()
}

// Decode feeds bytes from p until a command is decoded. It returns the command, the number
// of bytes consumed from p and whether a command was found. Bytes after the returned count
// have not been seen by the detector.
func (d *Detector) Decode(p []byte) (Command, int, bool) {
	for i, b := range p {
		if cmd, ok := d.Feed(b); ok {
			return cmd, i + 1, true
		}
	}

	return Command{}, len(p), false
}

// Reset discards the window contents.
func (d *Detector) Reset() {
	d.n = 0
}

// Len returns the number of bytes currently held in the window.
func (d *Detector) Len() int {
	return d.n
}

// Window returns the current window contents. The slice aliases internal state and is only
// valid until the next call on d.
func (d *Detector) Window() []byte {
	return d.buf[:d.n]
}

// Metrics returns the detector counters.
func (d *Detector) Metrics() *DetectorMetrics {
	return &d.metrics
}

// scan tests the window against every protocol in priority order. With header filtering
// enabled it also drops leading noise and exhausted candidates until the window either
// matches, holds a viable partial frame, or is empty.
func (d *Detector) scan() (Command, bool) {
	for {
		if d.cfg.headerFilter {
			d.trimNoise()
		}
		if d.n == 0 {
			return Command{}, false
		}

		window := d.buf[:d.n]
		for i := range frameSpecs {
			fs := &frameSpecs[i]
			if !fs.match(window, d.cfg.strictPelcoP) {
				continue
			}

			cmd := fs.extract(window)
			d.metrics.incFrameCount(fs.protocol)
			if d.cfg.headerFilter {
				d.shift(fs.length)
				d.trimNoise()
			} else {
				d.n = 0
			}

			return cmd, true
		}

		if !d.cfg.headerFilter || !d.exhausted() {
			return Command{}, false
		}
		d.shift(1)
		d.metrics.incEvictCount()
	}
}

// exhausted reports whether every protocol that could start with the front byte has
// already seen its full frame length and failed.
func (d *Detector) exhausted() bool {
	for i := range frameSpecs {
		fs := &frameSpecs[i]
		if fs.header == d.buf[0] && d.n < fs.length {
			return false
		}
	}

	return true
}

// trimNoise drops leading bytes that are not a header of any protocol.
func (d *Detector) trimNoise() {
	k := 0
	for k < d.n && !IsHeader(d.buf[k]) {
		k++
	}
	if k > 0 {
		d.shift(k)
		d.metrics.addDiscardCount(k)
	}
}

// shift removes the first k bytes of the window.
func (d *Detector) shift(k int) {
	if k >= d.n {
		d.n = 0
		return
	}
	copy(d.buf[:], d.buf[k:d.n])
	d.n -= k
}
