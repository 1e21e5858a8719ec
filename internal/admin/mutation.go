package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aquamarinepk/aqm"
)

// ErrMutationInFlight signals that the same operation for the same order is
// still outstanding. Mutations on different orders are never blocked.
var ErrMutationInFlight = errors.New("mutation already in flight for this order")

// orderMutator is the write side of the order gateway.
type orderMutator interface {
	UpdateStatus(ctx context.Context, id, newStatus string) error
	UpdatePayment(ctx context.Context, id, paymentStatus string) error
}

// refetcher lets a successful mutation refresh the result list it affects.
type refetcher interface {
	Refetch(ctx context.Context)
}

// MutationTracker issues status and payment transitions for single orders,
// keeping a per-order in-flight flag per operation so the UI can disable the
// right control without a global loading lock.
type MutationTracker struct {
	mu              sync.Mutex
	statusInFlight  map[string]bool
	paymentInFlight map[string]bool

	mutator orderMutator
	query   refetcher
	logger  aqm.Logger
}

func NewMutationTracker(mutator orderMutator, query refetcher, logger aqm.Logger) *MutationTracker {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &MutationTracker{
		statusInFlight:  make(map[string]bool),
		paymentInFlight: make(map[string]bool),
		mutator:         mutator,
		query:           query,
		logger:          logger,
	}
}

// UpdateStatus transitions one order. On success the query state is
// refreshed; on failure the previously rendered state stays untouched. The
// in-flight flag is cleared on every path.
func (t *MutationTracker) UpdateStatus(ctx context.Context, orderID, newStatus string) error {
	if !isValidStatus(newStatus) {
		return fmt.Errorf("unknown order status %q", newStatus)
	}

	if !t.begin(t.statusInFlight, orderID) {
		return ErrMutationInFlight
	}
	defer t.end(t.statusInFlight, orderID)

	if err := t.mutator.UpdateStatus(ctx, orderID, newStatus); err != nil {
		t.logger.Error("status update failed", "order_id", orderID, "status", newStatus, "error", err)
		return err
	}

	t.query.Refetch(ctx)
	return nil
}

// MarkPaid marks one order's payment state as paid.
func (t *MutationTracker) MarkPaid(ctx context.Context, orderID string) error {
	if !t.begin(t.paymentInFlight, orderID) {
		return ErrMutationInFlight
	}
	defer t.end(t.paymentInFlight, orderID)

	if err := t.mutator.UpdatePayment(ctx, orderID, PaymentPaid); err != nil {
		t.logger.Error("payment update failed", "order_id", orderID, "error", err)
		return err
	}

	t.query.Refetch(ctx)
	return nil
}

// StatusInFlight reports whether a status change is outstanding for the order.
func (t *MutationTracker) StatusInFlight(orderID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusInFlight[orderID]
}

// PaymentInFlight reports whether a payment change is outstanding for the order.
func (t *MutationTracker) PaymentInFlight(orderID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paymentInFlight[orderID]
}

func (t *MutationTracker) begin(flags map[string]bool, orderID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if flags[orderID] {
		return false
	}
	flags[orderID] = true
	return true
}

func (t *MutationTracker) end(flags map[string]bool, orderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(flags, orderID)
}
