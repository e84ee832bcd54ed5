package cart

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/infrastructure/telemetry"
)

const defaultSweepInterval = time.Minute

// Registry keeps one ViewModel per session credential. Entries idle longer
// than the TTL are evicted; the next request mounts a fresh one.
type Registry struct {
	newViewModel func() *ViewModel
	idleTTL      time.Duration
	logger       *zap.Logger
	metrics      *telemetry.Metrics
	now          func() time.Time

	mu      sync.Mutex
	entries map[identity.Credential]*registryEntry

	stopCh  chan struct{}
	stopped int32
}

type registryEntry struct {
	vm       *ViewModel
	lastUsed time.Time

	// ready is closed once the first mount finished; mountErr is set before
	ready    chan struct{}
	mountErr error
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger
func WithRegistryLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRegistryMetrics reports the number of live view-models
func WithRegistryMetrics(m *telemetry.Metrics) RegistryOption {
	return func(r *Registry) {
		r.metrics = m
	}
}

// withClock replaces time.Now in tests
func withClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry creates a registry. newViewModel builds the view-model for a
// credential seen for the first time.
func NewRegistry(newViewModel func() *ViewModel, idleTTL time.Duration, opts ...RegistryOption) *Registry {
	r := &Registry{
		newViewModel: newViewModel,
		idleTTL:      idleTTL,
		logger:       zap.NewNop(),
		now:          time.Now,
		entries:      make(map[identity.Credential]*registryEntry),
		stopCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the live view-model for the credential. A view-model whose
// first mount has not finished is not returned.
func (r *Registry) Get(cred identity.Credential) (*ViewModel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[cred]
	if !ok || r.expiredLocked(e) {
		return nil, false
	}
	select {
	case <-e.ready:
	default:
		return nil, false
	}
	if e.mountErr != nil {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.vm, true
}

// Acquire returns the mounted view-model for the credential. A credential
// seen for the first time is mounted from the remote API before it is handed
// out; concurrent callers for the same credential wait for that mount and
// share its result. mounted is true for the caller that performed it. A
// failed mount is evicted so the next request retries.
func (r *Registry) Acquire(ctx context.Context, cred identity.Credential) (vm *ViewModel, mounted bool, err error) {
	r.mu.Lock()
	if e, ok := r.entries[cred]; ok && !r.expiredLocked(e) {
		e.lastUsed = r.now()
		r.mu.Unlock()

		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
		if e.mountErr != nil {
			return nil, false, e.mountErr
		}
		return e.vm, false, nil
	}

	e := &registryEntry{vm: r.newViewModel(), lastUsed: r.now(), ready: make(chan struct{})}
	r.entries[cred] = e
	r.metrics.SetActiveCarts(len(r.entries))
	r.mu.Unlock()

	_, err = e.vm.Mount(ctx)
	if err != nil {
		e.mountErr = err
		r.evictEntry(cred, e)
	}
	close(e.ready)

	if err != nil {
		return nil, true, err
	}
	return e.vm, true, nil
}

// Evict drops the credential's view-model
func (r *Registry) Evict(cred identity.Credential) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, cred)
	r.metrics.SetActiveCarts(len(r.entries))
}

// evictEntry drops e unless it was already replaced
func (r *Registry) evictEntry(cred identity.Credential, e *registryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries[cred] == e {
		delete(r.entries, cred)
		r.metrics.SetActiveCarts(len(r.entries))
	}
}

// Len returns the number of held view-models
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Start runs the idle sweep until Close
func (r *Registry) Start() {
	interval := defaultSweepInterval
	if r.idleTTL > 0 && r.idleTTL < interval {
		interval = r.idleTTL
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stopCh:
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
}

// Close stops the idle sweep
func (r *Registry) Close() {
	if atomic.CompareAndSwapInt32(&r.stopped, 0, 1) {
		close(r.stopCh)
	}
}

func (r *Registry) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for cred, e := range r.entries {
		if r.expiredLocked(e) {
			delete(r.entries, cred)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Debug("evicted idle carts", zap.Int("count", evicted))
	}
	r.metrics.SetActiveCarts(len(r.entries))
}

func (r *Registry) expiredLocked(e *registryEntry) bool {
	return r.idleTTL > 0 && r.now().Sub(e.lastUsed) > r.idleTTL
}
