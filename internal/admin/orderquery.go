package admin

import (
	"context"
	"sync"

	"github.com/aquamarinepk/aqm"
)

type queryMode string

const (
	modeStatus queryMode = "status"
	modeSearch queryMode = "search"
)

// orderFetcher is the read side of the order gateway the query state needs.
type orderFetcher interface {
	Filter(ctx context.Context, status *string) ([]orderResource, error)
	Search(ctx context.Context, params OrderSearchParams) ([]orderResource, error)
}

// fetchTag identifies the query parameters a fetch was dispatched with. A
// response is applied only while its tag still matches the live state, so a
// superseded fetch resolving late cannot overwrite a newer result.
type fetchTag struct {
	generation uint64
	mode       queryMode
}

// OrderQueryState owns the orders view's result list: the active filter or
// frozen search parameters, the latest fetched snapshot, and the pagination
// cursor over it. It is process-local and ephemeral; the backend remains the
// source of truth.
type OrderQueryState struct {
	mu           sync.Mutex
	mode         queryMode
	statusFilter *string // nil means all orders
	searchParams OrderSearchParams
	orders       []orderResource
	loading      bool
	fetchErr     bool
	generation   uint64
	page         int
	pageSize     int

	fetcher orderFetcher
	logger  aqm.Logger
}

// NewOrderQueryState starts in status mode filtered on pending orders, the
// view's landing state.
func NewOrderQueryState(fetcher orderFetcher, pageSize int, logger aqm.Logger) *OrderQueryState {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	pending := StatusPending
	return &OrderQueryState{
		mode:         modeStatus,
		statusFilter: &pending,
		page:         1,
		pageSize:     pageSize,
		fetcher:      fetcher,
		logger:       logger,
	}
}

const defaultPageSize = 10

// OrderQuerySnapshot is the read model handed to the view layer.
type OrderQuerySnapshot struct {
	Mode         string
	StatusFilter *string
	SearchParams OrderSearchParams
	Orders       []orderResource
	Visible      []orderResource
	PageView     pageView
	IsLoading    bool
	IsError      bool
}

// SetStatusFilter switches back to browse mode with the given status filter
// (nil for all orders) and refreshes the result list. Pagination resets.
func (s *OrderQueryState) SetStatusFilter(ctx context.Context, status *string) {
	s.mu.Lock()
	s.mode = modeStatus
	s.statusFilter = status
	s.page = 1
	tag := s.beginFetchLocked()
	filter := status
	s.mu.Unlock()

	orders, err := s.fetcher.Filter(ctx, filter)
	s.applyResult(tag, orders, err)
}

// SubmitSearch freezes the submitted parameters, switches to search mode and
// refreshes. Pagination resets.
func (s *OrderQueryState) SubmitSearch(ctx context.Context, params OrderSearchParams) {
	s.mu.Lock()
	s.mode = modeSearch
	s.searchParams = params
	s.page = 1
	tag := s.beginFetchLocked()
	s.mu.Unlock()

	orders, err := s.fetcher.Search(ctx, params)
	s.applyResult(tag, orders, err)
}

// ResetSearch clears the frozen parameters and returns to browse mode with
// the last status filter.
func (s *OrderQueryState) ResetSearch(ctx context.Context) {
	s.mu.Lock()
	filter := s.statusFilter
	s.mu.Unlock()

	s.SetStatusFilter(ctx, filter)

	s.mu.Lock()
	s.searchParams = OrderSearchParams{}
	s.mu.Unlock()
}

// Refetch re-runs whichever source is active, leaving mode and parameters
// untouched. Used after a successful mutation.
func (s *OrderQueryState) Refetch(ctx context.Context) {
	s.mu.Lock()
	mode := s.mode
	filter := s.statusFilter
	params := s.searchParams
	tag := s.beginFetchLocked()
	s.mu.Unlock()

	var orders []orderResource
	var err error
	if mode == modeSearch {
		orders, err = s.fetcher.Search(ctx, params)
	} else {
		orders, err = s.fetcher.Filter(ctx, filter)
	}

	s.applyResult(tag, orders, err)
}

// SetPage moves the pagination cursor. Out-of-range pages are ignored.
func (s *OrderQueryState) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pv := paginate(len(s.orders), s.pageSize, s.page)
	if page < 1 || page > pv.TotalPages {
		return
	}
	s.page = page
}

// Snapshot returns a consistent copy of the current view state.
func (s *OrderQueryState) Snapshot() OrderQuerySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	pv := paginate(len(s.orders), s.pageSize, s.page)
	visible := make([]orderResource, pv.End-pv.Start)
	copy(visible, s.orders[pv.Start:pv.End])

	var filter *string
	if s.statusFilter != nil {
		f := *s.statusFilter
		filter = &f
	}

	return OrderQuerySnapshot{
		Mode:         string(s.mode),
		StatusFilter: filter,
		SearchParams: s.searchParams,
		Orders:       s.orders,
		Visible:      visible,
		PageView:     pv,
		IsLoading:    s.loading,
		IsError:      s.fetchErr,
	}
}

// PendingViewActive reports whether the view is browsing pending orders,
// the only state in which the alert engine observes counts.
func (s *OrderQueryState) PendingViewActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode == modeStatus && s.statusFilter != nil && *s.statusFilter == StatusPending
}

// beginFetchLocked bumps the generation and captures the tag for the fetch
// about to be dispatched. Callers must hold s.mu.
func (s *OrderQueryState) beginFetchLocked() fetchTag {
	s.generation++
	s.loading = true
	return fetchTag{generation: s.generation, mode: s.mode}
}

// applyResult installs a fetch outcome, unless a newer fetch or a mode
// switch has superseded it.
func (s *OrderQueryState) applyResult(tag fetchTag, orders []orderResource, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tag.generation != s.generation || tag.mode != s.mode {
		s.logger.Debug("discarding stale order fetch", "mode", string(tag.mode))
		return
	}

	s.loading = false
	if err != nil {
		s.logger.Error("order fetch failed", "mode", string(tag.mode), "error", err)
		s.fetchErr = true
		return
	}

	s.fetchErr = false
	s.orders = orders
	s.page = 1
}
