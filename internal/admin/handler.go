package admin

import (
	"context"
	"net/http"
	"sync"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	aqmtemplate "github.com/aquamarinepk/aqm/template"
	"github.com/go-chi/chi/v5"
)

// notificationMarker clears the backend's unread counter.
type notificationMarker interface {
	MarkNotificationsRead(ctx context.Context) error
}

// orderGetter fetches a single order for the printable ticket.
type orderGetter interface {
	Get(ctx context.Context, id string) (*orderResource, error)
}

// badgeState is the locally mirrored unread counter, owned by the
// notification listener and only read (or consumed) here.
type badgeState interface {
	UnreadCount() int
	ResetUnread()
}

// alertControl is what the orders view needs from the alert engine.
type alertControl interface {
	Activate()
	Deactivate()
	SetSoundEnabled(enabled bool)
	SoundEnabled() bool
}

// pendingPoller runs one immediate pending-count observation, used on view
// entry so the alert baseline seeds without waiting for the next tick.
type pendingPoller interface {
	Poll(ctx context.Context)
}

// Handler serves the whole admin dashboard.
type Handler struct {
	tmplMgr *aqmtemplate.Manager

	query     *OrderQueryState
	mutations *MutationTracker
	orders    orderGetter
	marker    notificationMarker
	badge     badgeState
	alerts    alertControl
	poller    pendingPoller

	menuData  *MenuDataAccess
	packData  *PackDataAccess
	promoData *PromotionDataAccess
	dashData  *DashboardDataAccess

	sse http.Handler

	config *aqm.Config
	logger aqm.Logger
	tlm    *telemetry.HTTP

	mu             sync.Mutex
	ordersViewOpen bool
}

// HandlerDeps bundles the collaborators the dashboard handler needs.
type HandlerDeps struct {
	Query     *OrderQueryState
	Mutations *MutationTracker
	Orders    orderGetter
	Marker    notificationMarker
	Badge     badgeState
	Alerts    alertControl
	Poller    pendingPoller

	MenuData  *MenuDataAccess
	PackData  *PackDataAccess
	PromoData *PromotionDataAccess
	DashData  *DashboardDataAccess

	SSE http.Handler
}

func NewHandler(tmplMgr *aqmtemplate.Manager, deps HandlerDeps, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	return &Handler{
		tmplMgr:   tmplMgr,
		query:     deps.Query,
		mutations: deps.Mutations,
		orders:    deps.Orders,
		marker:    deps.Marker,
		badge:     deps.Badge,
		alerts:    deps.Alerts,
		poller:    deps.Poller,
		menuData:  deps.MenuData,
		packData:  deps.PackData,
		promoData: deps.PromoData,
		dashData:  deps.DashData,
		sse:       deps.SSE,
		config:    config,
		logger:    logger,
		tlm:       telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers all dashboard routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.Orders)
		r.Post("/filter", h.FilterOrders)
		r.Post("/search", h.SearchOrders)
		r.Post("/search/reset", h.ResetSearch)
		r.Post("/sound", h.ToggleSound)
		r.Post("/leave", h.LeaveOrders)
		r.Post("/{id}/status", h.UpdateOrderStatus)
		r.Post("/{id}/payment", h.MarkOrderPaid)
		r.Get("/{id}/ticket", h.OrderTicket)
	})

	r.Get("/menu", h.Menu)
	r.Post("/menu/categories", h.CreateCategory)
	r.Post("/menu/categories/{id}", h.UpdateCategory)
	r.Post("/menu/categories/{id}/delete", h.DeleteCategory)
	r.Post("/menu/dishes", h.CreateDish)
	r.Post("/menu/dishes/{id}", h.UpdateDish)
	r.Post("/menu/dishes/{id}/delete", h.DeleteDish)

	r.Get("/packs", h.Packs)
	r.Post("/packs", h.CreatePack)
	r.Post("/packs/{id}", h.UpdatePack)
	r.Post("/packs/{id}/toggle", h.TogglePack)
	r.Post("/packs/{id}/delete", h.DeletePack)

	r.Get("/promotions", h.Promotions)
	r.Post("/promotions", h.CreatePromotion)
	r.Post("/promotions/{id}", h.UpdatePromotion)
	r.Post("/promotions/{id}/delete", h.DeletePromotion)

	if h.sse != nil {
		r.Get("/events", h.sse.ServeHTTP)
	}
}

func (h *Handler) log() aqm.Logger {
	return h.logger
}

func (h *Handler) renderTemplate(w http.ResponseWriter, templateName, layout string, data map[string]interface{}) {
	tmpl, err := h.tmplMgr.Get(templateName)
	if err != nil {
		h.log().Error("error loading template", "error", err, "template", templateName)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := tmpl.ExecuteTemplate(w, layout, data); err != nil {
		h.log().Error("error rendering template", "error", err, "layout", layout)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// enterOrdersView runs the entry transition: the unread badge is consumed,
// the backend counter cleared and the alert engine armed when the pending
// filter is active. Re-rendering the already open view is not a transition.
func (h *Handler) enterOrdersView(ctx context.Context) {
	h.mu.Lock()
	alreadyOpen := h.ordersViewOpen
	h.ordersViewOpen = true
	h.mu.Unlock()

	if alreadyOpen {
		h.syncAlertEngine(ctx)
		return
	}

	h.markNotificationsRead(ctx)
	if h.badge != nil {
		h.badge.ResetUnread()
	}
	h.syncAlertEngine(ctx)
}

// leaveOrdersView runs the exit transition when the operator navigates to
// any other view: the counter is re-synced in case notifications arrived
// while the view was open, and the alert engine disarmed.
func (h *Handler) leaveOrdersView(ctx context.Context) {
	h.mu.Lock()
	wasOpen := h.ordersViewOpen
	h.ordersViewOpen = false
	h.mu.Unlock()

	if !wasOpen {
		return
	}

	h.markNotificationsRead(ctx)
	if h.badge != nil {
		h.badge.ResetUnread()
	}
	if h.alerts != nil {
		h.alerts.Deactivate()
	}
}

// syncAlertEngine arms or disarms the engine to match the active filter.
func (h *Handler) syncAlertEngine(ctx context.Context) {
	if h.alerts == nil {
		return
	}

	if h.query.PendingViewActive() {
		h.alerts.Activate()
		if h.poller != nil {
			h.poller.Poll(ctx)
		}
		return
	}

	h.alerts.Deactivate()
}

// markNotificationsRead is idempotent backend-side; a failure here must
// never block navigation.
func (h *Handler) markNotificationsRead(ctx context.Context) {
	if h.marker == nil {
		return
	}
	if err := h.marker.MarkNotificationsRead(ctx); err != nil {
		h.log().Info("cannot mark notifications read", "error", err)
	}
}

// unreadBadge is included in every page's template data.
func (h *Handler) unreadBadge() int {
	if h.badge == nil {
		return 0
	}
	return h.badge.UnreadCount()
}
