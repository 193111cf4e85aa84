package port

import (
	"context"
	"errors"
	"fmt"

	"github.com/arloliu/go-ptz/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"
)

// Hub runs a set of Readers, one goroutine and one detector per port.
//
// Readers must be added before Run. Get and Range are safe to call from any goroutine, for
// example from a metrics endpoint while the hub is running.
type Hub struct {
	readers *xsync.MapOf[string, *Reader]
	logger  logger.Logger
}

// NewHub creates an empty Hub. A nil logger selects the package default.
func NewHub(l logger.Logger) *Hub {
	if l == nil {
		l = logger.GetLogger()
	}

	return &Hub{
		readers: xsync.NewMapOf[string, *Reader](),
		logger:  l,
	}
}

// Add registers r under its port name.
func (h *Hub) Add(r *Reader) error {
	if _, loaded := h.readers.LoadOrStore(r.Name(), r); loaded {
		return fmt.Errorf("%w: %s", ErrDuplicatePort, r.Name())
	}

	return nil
}

// Get returns the reader registered for the port name.
func (h *Hub) Get(name string) (*Reader, bool) {
	return h.readers.Load(name)
}

// Len returns the number of registered readers.
func (h *Hub) Len() int {
	return h.readers.Size()
}

// Range calls f for each reader until f returns false.
func (h *Hub) Range(f func(name string, r *Reader) bool) {
	h.readers.Range(f)
}

// Run runs every registered reader and blocks until all of them return. The first reader
// error cancels the others and is returned.
func (h *Hub) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	h.readers.Range(func(name string, r *Reader) bool {
		g.Go(func() error {
			if err := r.Run(gctx); err != nil {
				h.logger.Error("port: reader failed", "port", name, "error", err)
				return err
			}

			return nil
		})

		return true
	})

	return g.Wait()
}

// Close closes every registered reader and returns the joined errors.
func (h *Hub) Close() error {
	var errs []error
	h.readers.Range(func(_ string, r *Reader) bool {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}

		return true
	})

	return errors.Join(errs...)
}
