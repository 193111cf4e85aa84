package port

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/arloliu/go-ptz/internal/pool"
	"github.com/arloliu/go-ptz/logger"
	"github.com/arloliu/go-ptz/ptz"
)

// Sentinel errors of the port package.
var (
	ErrOpenPort      = errors.New("port: failed to open serial port")
	ErrReadFailed    = errors.New("port: read failed")
	ErrReaderClosed  = errors.New("port: reader closed")
	ErrReaderStarted = errors.New("port: reader already started")
	ErrCloseTimeout  = errors.New("port: close timeout")
	ErrDuplicatePort = errors.New("port: duplicate port name")
	ErrHandlerNil    = errors.New("port: command handler is nil")
)

// CommandHandler receives decoded commands. It is called on the reader goroutine, so a slow
// handler delays reading; queue the command if handling takes longer than a few bytes'
// transmission time.
type CommandHandler func(cmd ptz.Command)

// Reader polls a byte source and delivers the PTZ commands decoded from it.
type Reader struct {
	src     io.Reader
	closer  io.Closer
	cfg     *Config
	det     *ptz.Detector
	handler CommandHandler
	logger  logger.Logger

	started atomic.Bool
	closed  atomic.Bool
	stopped chan struct{}

	metrics ReaderMetrics
}

// NewReader creates a Reader over src, which is not closed by the Reader. src should return
// (0, nil) or a timeout error when no data is available so that Run can observe context
// cancellation.
func NewReader(src io.Reader, cfg *Config, handler CommandHandler) (*Reader, error) {
	return newReader(src, nil, cfg, handler)
}

func newReader(src io.Reader, closer io.Closer, cfg *Config, handler CommandHandler) (*Reader, error) {
	if cfg == nil {
		return nil, errors.New("port: config is nil")
	}
	if handler == nil {
		return nil, ErrHandlerNil
	}

	det, err := ptz.NewDetector(cfg.detectorOpts...)
	if err != nil {
		return nil, err
	}

	return &Reader{
		src:     src,
		closer:  closer,
		cfg:     cfg,
		det:     det,
		handler: handler,
		logger:  cfg.logger.With("port", cfg.portName),
		stopped: make(chan struct{}),
	}, nil
}

// Name returns the port name.
func (r *Reader) Name() string {
	return r.cfg.portName
}

// Config returns the reader configuration.
func (r *Reader) Config() *Config {
	return r.cfg
}

// GetMetrics returns the reader metrics.
func (r *Reader) GetMetrics() *ReaderMetrics {
	return &r.metrics
}

// DetectorMetrics returns the metrics of the reader's detector.
func (r *Reader) DetectorMetrics() *ptz.DetectorMetrics {
	return r.det.Metrics()
}

// Run reads from the source until ctx is done, the source reports io.EOF, the reader is
// closed, or a read fails. Only the last case returns an error. Run may be called once.
func (r *Reader) Run(ctx context.Context) error {
	if r.closed.Load() {
		return ErrReaderClosed
	}
	if !r.started.CompareAndSwap(false, true) {
		return ErrReaderStarted
	}
	defer close(r.stopped)

	r.logger.Info("port: reader started", "baudRate", r.cfg.baudRate)
	defer r.logger.Info("port: reader stopped")

	buf := make([]byte, r.cfg.readBufferSize)
	for {
		if ctx.Err() != nil || r.closed.Load() {
			return nil
		}

		n, err := r.src.Read(buf)
		if n > 0 {
			r.metrics.incReadCount()
			r.process(buf[:n])
		}

		if err == nil {
			continue
		}

		switch {
		case errors.Is(err, io.EOF):
			r.logger.Info("port: source reached EOF")
			return nil

		case isTimeout(err):
			r.metrics.incReadErrCount()
			continue

		case r.closed.Load() || ctx.Err() != nil:
			return nil

		default:
			r.metrics.incReadErrCount()
			r.logger.Error("port: read failed", "error", err)

			return fmt.Errorf("%w: %s: %w", ErrReadFailed, r.cfg.portName, err)
		}
	}
}

// Close closes the underlying port if the Reader owns one and waits for Run to return.
func (r *Reader) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if r.closer != nil {
		err = r.closer.Close()
	}

	if !r.started.Load() {
		return err
	}

	timer := pool.GetTimer(r.cfg.closeTimeout)
	defer pool.PutTimer(timer)

	select {
	case <-r.stopped:
		return err
	case <-timer.C:
		r.logger.Error("port: close reader timeout", "timeout", r.cfg.closeTimeout)

		return errors.Join(err, ErrCloseTimeout)
	}
}

func (r *Reader) process(p []byte) {
	for len(p) > 0 {
		cmd, n, ok := r.det.Decode(p)
		p = p[n:]

		if ok {
			r.dispatch(cmd)
		}
	}
}

func (r *Reader) dispatch(cmd ptz.Command) {
	if !r.cfg.Accepts(cmd.Addr) {
		r.metrics.incFilteredCount()
		r.logger.Debug("port: command filtered", "protocol", cmd.Protocol.String(), "addr", cmd.Addr)

		return
	}

	r.metrics.incCommandCount()
	r.logger.Debug("port: command decoded",
		"protocol", cmd.Protocol.String(),
		"addr", cmd.Addr,
		"command", cmd.Code,
		"action", cmd.Action,
		"data1", cmd.Data1,
		"data2", cmd.Data2,
	)

	r.handler(cmd)
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var te interface{ Timeout() bool }

	return errors.As(err, &te) && te.Timeout()
}
