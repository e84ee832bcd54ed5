// Package cart drives the shopper's visible cart. Quantity changes and
// removals are applied locally first and rolled back when the remote API
// refuses them.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/medistore/storefront/internal/domain/cart"
	"github.com/medistore/storefront/internal/domain/shared"
	"github.com/medistore/storefront/internal/infrastructure/medistore"
	"github.com/medistore/storefront/internal/infrastructure/telemetry"
)

// Notice texts
const (
	TextUpdating       = "Updating quantity..."
	TextUpdated        = "Quantity updated"
	TextUpdateFailed   = "Failed to update"
	TextRemoving       = "Removing item..."
	TextRemoved        = "Removed from cart"
	TextRemoveFailed   = "Failed to remove"
	TextLoadCartFailed = "Failed to load cart"
)

// Gateway is the part of the remote API the view-model drives. Quantity
// changes are keyed by line id while removal is keyed by the catalog id.
type Gateway interface {
	FetchCart(ctx context.Context) ([]cart.RawLineItem, error)
	ChangeQuantity(ctx context.Context, lineID string, dir medistore.Direction) (medistore.QuantityChange, error)
	RemoveLine(ctx context.Context, productID string) error
}

var _ Gateway = (*medistore.Client)(nil)

// IntentKind names a shopper action on a line
type IntentKind string

const (
	IntentIncrement IntentKind = "increment"
	IntentDecrement IntentKind = "decrement"
	IntentRemove    IntentKind = "remove"
)

// ParseIntentKind parses an action name
func ParseIntentKind(s string) (IntentKind, error) {
	switch k := IntentKind(strings.ToLower(strings.TrimSpace(s))); k {
	case IntentIncrement, IntentDecrement, IntentRemove:
		return k, nil
	default:
		return "", fmt.Errorf("unknown cart action %q: %w", s, shared.ErrInvalidInput)
	}
}

// Intent is a shopper action addressed to one line
type Intent struct {
	Kind   IntentKind
	LineID string
}

// Outcome is how a mutation ended
type Outcome string

const (
	// OutcomeCommitted means the remote API accepted the change
	OutcomeCommitted Outcome = "committed"
	// OutcomeRolledBack means the remote API refused and the set was restored
	OutcomeRolledBack Outcome = "rolled_back"
	// OutcomeRejected means a precondition failed before any remote call
	OutcomeRejected Outcome = "rejected"
	// OutcomeIgnored means the line was unknown or already pending
	OutcomeIgnored Outcome = "ignored"
)

// View is what the presentation layer renders
type View struct {
	Items   []cart.LineItem `json:"items"`
	Summary cart.Summary    `json:"summary"`
	Pending []string        `json:"pending"`
}

// Result reports the outcome of one intent. Err is nil only for committed
// mutations.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message,omitempty"`
	View    View    `json:"cart"`
	Err     error   `json:"-"`
}

// ViewModel holds one shopper's visible line set. A line is Idle or Pending;
// a Pending line rejects further mutations until its remote call resolves.
// The lock is never held across a remote call, so different lines may have
// calls in flight at the same time.
type ViewModel struct {
	gateway  Gateway
	pricing  cart.Pricing
	notifier Notifier
	logger   *zap.Logger
	metrics  *telemetry.Metrics

	mu      sync.Mutex
	lines   cart.LineSet
	pending map[string]struct{}
	// generation counts hydrations; a rollback never restores a snapshot
	// taken before a newer server snapshot arrived
	generation uint64
}

// Option configures a ViewModel
type Option func(*ViewModel)

// WithPricing sets the currency and shipping fee
func WithPricing(p cart.Pricing) Option {
	return func(vm *ViewModel) {
		vm.pricing = p
	}
}

// WithNotifier sets the notice sink
func WithNotifier(n Notifier) Option {
	return func(vm *ViewModel) {
		if n != nil {
			vm.notifier = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(vm *ViewModel) {
		if logger != nil {
			vm.logger = logger
		}
	}
}

// WithMetrics records mutation outcomes
func WithMetrics(m *telemetry.Metrics) Option {
	return func(vm *ViewModel) {
		vm.metrics = m
	}
}

// NewViewModel creates an empty view-model. Call Mount or Hydrate to load lines.
func NewViewModel(gateway Gateway, opts ...Option) *ViewModel {
	vm := &ViewModel{
		gateway:  gateway,
		pricing:  cart.DefaultPricing(),
		notifier: nopNotifier{},
		logger:   zap.NewNop(),
		pending:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Mount replaces the visible set with a fresh server snapshot
func (vm *ViewModel) Mount(ctx context.Context) (View, error) {
	raw, err := vm.gateway.FetchCart(ctx)
	if err != nil {
		vm.notifier.Notify(Notice{Level: NoticeError, Text: failureMessage(err, TextLoadCartFailed)})
		return vm.View(), err
	}
	return vm.Hydrate(raw), nil
}

// Hydrate replaces the visible set with already-fetched remote lines
func (vm *ViewModel) Hydrate(raw []cart.RawLineItem) View {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.lines = cart.NewLineSet(cart.NormalizeAll(raw))
	vm.generation++
	return vm.viewLocked()
}

// View returns the current lines, totals and pending line ids
func (vm *ViewModel) View() View {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.viewLocked()
}

// Lines returns the current visible set
func (vm *ViewModel) Lines() cart.LineSet {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.lines.Clone()
}

// IsPending reports whether a remote call is in flight for the line
func (vm *ViewModel) IsPending(lineID string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	_, ok := vm.pending[lineID]
	return ok
}

// Dispatch routes an intent to the matching mutation
func (vm *ViewModel) Dispatch(ctx context.Context, in Intent) Result {
	switch in.Kind {
	case IntentIncrement:
		return vm.Increment(ctx, in.LineID)
	case IntentDecrement:
		return vm.Decrement(ctx, in.LineID)
	case IntentRemove:
		return vm.Remove(ctx, in.LineID)
	default:
		return Result{
			Outcome: OutcomeRejected,
			Message: shared.ErrInvalidInput.Message,
			View:    vm.View(),
			Err:     shared.ErrInvalidInput,
		}
	}
}

// Increment adds one unit to the line unless its stock ceiling is reached
func (vm *ViewModel) Increment(ctx context.Context, lineID string) Result {
	return vm.changeQuantity(ctx, lineID, medistore.Increment)
}

// Decrement removes one unit; a line reaching zero disappears
func (vm *ViewModel) Decrement(ctx context.Context, lineID string) Result {
	return vm.changeQuantity(ctx, lineID, medistore.Decrement)
}

func (vm *ViewModel) changeQuantity(ctx context.Context, lineID string, dir medistore.Direction) Result {
	kind := dir.String()

	vm.mu.Lock()
	line, ok := vm.lines.Find(lineID)
	if res, stop := vm.precheckLocked(lineID, ok); stop {
		vm.mu.Unlock()
		vm.metrics.CartMutation(kind, string(res.Outcome))
		return res
	}
	if dir == medistore.Increment && line.AtStockCeiling() {
		view := vm.viewLocked()
		vm.mu.Unlock()
		vm.notifier.Notify(Notice{Level: NoticeError, Text: shared.ErrStockLimit.Message, LineID: lineID})
		vm.metrics.CartMutation(kind, string(OutcomeRejected))
		return Result{Outcome: OutcomeRejected, Message: shared.ErrStockLimit.Message, View: view, Err: shared.ErrStockLimit}
	}

	delta := int64(1)
	if dir == medistore.Decrement {
		delta = -1
	}
	snapshot, gen := vm.lines, vm.generation
	vm.lines = vm.lines.WithDelta(lineID, delta)
	vm.pending[lineID] = struct{}{}
	vm.mu.Unlock()

	vm.notifier.Notify(Notice{Level: NoticeLoading, Text: TextUpdating, LineID: lineID})
	change, err := vm.gateway.ChangeQuantity(ctx, lineID, dir)

	vm.mu.Lock()
	delete(vm.pending, lineID)
	if err != nil {
		vm.restoreLocked(snapshot, gen)
		view := vm.viewLocked()
		vm.mu.Unlock()
		return vm.rolledBack(kind, lineID, err, TextUpdateFailed, view)
	}
	if change.Removed {
		vm.lines = vm.lines.Without(lineID)
	}
	view := vm.viewLocked()
	vm.mu.Unlock()

	msg := change.Message
	if msg == "" {
		msg = TextUpdated
	}
	vm.notifier.Notify(Notice{Level: NoticeSuccess, Text: msg, LineID: lineID})
	vm.metrics.CartMutation(kind, string(OutcomeCommitted))
	return Result{Outcome: OutcomeCommitted, Message: msg, View: view}
}

// Remove deletes the line. The remote call is keyed by the line's catalog id.
func (vm *ViewModel) Remove(ctx context.Context, lineID string) Result {
	const kind = "remove"

	vm.mu.Lock()
	line, ok := vm.lines.Find(lineID)
	if res, stop := vm.precheckLocked(lineID, ok && line.ProductID != ""); stop {
		vm.mu.Unlock()
		vm.metrics.CartMutation(kind, string(res.Outcome))
		return res
	}

	snapshot, gen := vm.lines, vm.generation
	vm.lines = vm.lines.Without(lineID)
	vm.pending[lineID] = struct{}{}
	vm.mu.Unlock()

	vm.notifier.Notify(Notice{Level: NoticeLoading, Text: TextRemoving, LineID: lineID})
	err := vm.gateway.RemoveLine(ctx, line.ProductID)

	vm.mu.Lock()
	delete(vm.pending, lineID)
	if err != nil {
		vm.restoreLocked(snapshot, gen)
		view := vm.viewLocked()
		vm.mu.Unlock()
		return vm.rolledBack(kind, lineID, err, TextRemoveFailed, view)
	}
	view := vm.viewLocked()
	vm.mu.Unlock()

	vm.notifier.Notify(Notice{Level: NoticeSuccess, Text: TextRemoved, LineID: lineID})
	vm.metrics.CartMutation(kind, string(OutcomeCommitted))
	return Result{Outcome: OutcomeCommitted, Message: TextRemoved, View: view}
}

// restoreLocked puts the pre-mutation snapshot back unless the set was
// re-mounted while the call was in flight
func (vm *ViewModel) restoreLocked(snapshot cart.LineSet, gen uint64) {
	if vm.generation == gen {
		vm.lines = snapshot
	}
}

// precheckLocked returns an ignored result when the line is unusable or pending
func (vm *ViewModel) precheckLocked(lineID string, usable bool) (Result, bool) {
	if !usable {
		return Result{Outcome: OutcomeIgnored, View: vm.viewLocked(), Err: shared.ErrNotFound}, true
	}
	if _, busy := vm.pending[lineID]; busy {
		return Result{Outcome: OutcomeIgnored, View: vm.viewLocked(), Err: shared.ErrLinePending}, true
	}
	return Result{}, false
}

func (vm *ViewModel) rolledBack(kind, lineID string, err error, fallback string, view View) Result {
	msg := failureMessage(err, fallback)
	vm.logger.Warn("cart mutation rolled back",
		zap.String("kind", kind),
		zap.String("line_id", lineID),
		zap.Error(err),
	)
	vm.notifier.Notify(Notice{Level: NoticeError, Text: msg, LineID: lineID})
	vm.metrics.CartMutation(kind, string(OutcomeRolledBack))
	return Result{Outcome: OutcomeRolledBack, Message: msg, View: view, Err: err}
}

func (vm *ViewModel) viewLocked() View {
	pending := make([]string, 0, len(vm.pending))
	for id := range vm.pending {
		pending = append(pending, id)
	}
	sort.Strings(pending)

	return View{
		Items:   vm.lines.Items(),
		Summary: cart.Summarize(vm.lines, vm.pricing),
		Pending: pending,
	}
}

// failureMessage picks the shopper-facing text for err
func failureMessage(err error, fallback string) string {
	if f, ok := medistore.AsFailure(err); ok && f.Message != "" {
		return f.Message
	}
	var de *shared.DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
