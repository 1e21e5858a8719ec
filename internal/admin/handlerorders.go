package admin

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// ordersPageState mirrors the flash handling used across the dashboard.
type ordersPageState struct {
	Error   string
	Success string
}

// orderCardView powers one order card in the orders template.
type orderCardView struct {
	ID             string
	Reference      string
	Status         string
	StatusLabel    string
	StatusClass    string
	Payment        string
	PaymentPending bool
	Amount         string
	DeliveryMethod string
	Address        string
	Customer       string
	Date           string
	Items          []orderLineView
	Printable      bool
	StatusBusy     bool
	PaymentBusy    bool
}

// orderLineView is a rendered line item inside a card or ticket.
type orderLineView struct {
	Name        string
	Quantity    int
	UnitPrice   string
	Total       string
	Ingredients string
	AddOns      []string
	Options     []string
}

// statusChipView is one entry in the filter chip row.
type statusChipView struct {
	Value  string // empty for "All Orders"
	Label  string
	Active bool
}

// Orders renders the order-management view. Visiting it is the view-entry
// transition: notifications are consumed and the alert engine armed when the
// pending filter is active.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Orders")
	defer finish()

	ctx := r.Context()
	h.enterOrdersView(ctx)

	h.query.Refetch(ctx)

	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil {
			h.query.SetPage(page)
		}
	}

	state := ordersPageState{}
	q := r.URL.Query()
	switch {
	case q.Get("status_updated") == "1":
		state.Success = "Order status updated."
	case q.Get("payment_updated") == "1":
		state.Success = "Order marked as paid."
	case q.Get("busy") == "1":
		state.Error = "That order already has a change in flight."
	case q.Get("update_failed") == "1":
		state.Error = "The change could not be applied. The order is unchanged."
	}

	h.renderOrdersPage(w, r, state)
}

// FilterOrders handles a status chip click: back to browse mode, pagination
// reset, alert engine re-synced.
func (h *Handler) FilterOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.FilterOrders")
	defer finish()

	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.log().Error("cannot parse filter form", "error", err)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	status := strings.TrimSpace(r.FormValue("status"))
	if status == "" {
		h.query.SetStatusFilter(ctx, nil)
	} else if isValidStatus(status) {
		h.query.SetStatusFilter(ctx, &status)
	} else {
		h.log().Info("ignoring unknown status filter", "status", status)
	}

	h.syncAlertEngine(ctx)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

// SearchOrders freezes the submitted fields and switches to search mode.
func (h *Handler) SearchOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SearchOrders")
	defer finish()

	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.log().Error("cannot parse search form", "error", err)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	params := OrderSearchParams{
		Reference: strings.TrimSpace(r.FormValue("reference")),
		Name:      strings.TrimSpace(r.FormValue("name")),
		Date:      strings.TrimSpace(r.FormValue("date")),
		StartDate: strings.TrimSpace(r.FormValue("start_date")),
		EndDate:   strings.TrimSpace(r.FormValue("end_date")),
	}

	h.query.SubmitSearch(ctx, params)
	h.syncAlertEngine(ctx)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

// ResetSearch clears the search and returns to the last status filter.
func (h *Handler) ResetSearch(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ResetSearch")
	defer finish()

	ctx := r.Context()
	h.query.ResetSearch(ctx)
	h.syncAlertEngine(ctx)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

// ToggleSound flips the audible half of the alert cycle.
func (h *Handler) ToggleSound(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ToggleSound")
	defer finish()

	if err := r.ParseForm(); err != nil {
		h.log().Error("cannot parse sound form", "error", err)
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	if h.alerts != nil {
		h.alerts.SetSoundEnabled(r.FormValue("enabled") == "1")
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

// UpdateOrderStatus transitions one order and refreshes the list.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateOrderStatus")
	defer finish()

	ctx := r.Context()
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "missing order id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.log().Error("cannot parse status form", "error", err)
		http.Redirect(w, r, "/orders?update_failed=1", http.StatusSeeOther)
		return
	}

	newStatus := strings.TrimSpace(r.FormValue("status"))
	switch err := h.mutations.UpdateStatus(ctx, orderID, newStatus); err {
	case nil:
		http.Redirect(w, r, "/orders?status_updated=1", http.StatusSeeOther)
	case ErrMutationInFlight:
		http.Redirect(w, r, "/orders?busy=1", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/orders?update_failed=1", http.StatusSeeOther)
	}
}

// LeaveOrders is the beacon target fired when the browser leaves the orders
// view without hitting another dashboard route (tab close, external link).
// Navigating to another view runs the same transition through that view's
// handler; the two paths are idempotent against each other.
func (h *Handler) LeaveOrders(w http.ResponseWriter, r *http.Request) {
	h.leaveOrdersView(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// MarkOrderPaid marks one order's payment as settled.
func (h *Handler) MarkOrderPaid(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MarkOrderPaid")
	defer finish()

	ctx := r.Context()
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "missing order id", http.StatusBadRequest)
		return
	}

	switch err := h.mutations.MarkPaid(ctx, orderID); err {
	case nil:
		http.Redirect(w, r, "/orders?payment_updated=1", http.StatusSeeOther)
	case ErrMutationInFlight:
		http.Redirect(w, r, "/orders?busy=1", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/orders?update_failed=1", http.StatusSeeOther)
	}
}

func (h *Handler) renderOrdersPage(w http.ResponseWriter, r *http.Request, state ordersPageState) {
	snap := h.query.Snapshot()

	cards := make([]orderCardView, 0, len(snap.Visible))
	for _, order := range snap.Visible {
		cards = append(cards, h.buildOrderCard(order))
	}

	emptyMessage := "No orders found for the selected filter."
	if snap.Mode == string(modeSearch) {
		emptyMessage = "No orders match your search."
	}

	soundEnabled := true
	if h.alerts != nil {
		soundEnabled = h.alerts.SoundEnabled()
	}

	pages := make([]int, 0, snap.PageView.TotalPages)
	for p := 1; p <= snap.PageView.TotalPages; p++ {
		pages = append(pages, p)
	}

	data := map[string]interface{}{
		"Title":        "Order Management",
		"Template":     "orders",
		"Unread":       h.unreadBadge(),
		"Chips":        h.buildStatusChips(snap),
		"Searching":    snap.Mode == string(modeSearch),
		"Search":       snap.SearchParams,
		"Orders":       cards,
		"EmptyMessage": emptyMessage,
		"IsLoading":    snap.IsLoading,
		"IsError":      snap.IsError,
		"Page":         snap.PageView.Page,
		"TotalPages":   snap.PageView.TotalPages,
		"Pages":        pages,
		"HasPrev":      snap.PageView.Page > 1,
		"HasNext":      snap.PageView.Page < snap.PageView.TotalPages,
		"PrevPage":     snap.PageView.Page - 1,
		"NextPage":     snap.PageView.Page + 1,
		"SoundEnabled": soundEnabled,
		"Error":        state.Error,
		"Success":      state.Success,
	}

	h.renderTemplate(w, "orders.html", "base.html", data)
}

func (h *Handler) buildStatusChips(snap OrderQuerySnapshot) []statusChipView {
	browsing := snap.Mode == string(modeStatus)

	chips := make([]statusChipView, 0, len(orderStatuses)+1)
	chips = append(chips, statusChipView{
		Value:  "",
		Label:  "All Orders",
		Active: browsing && snap.StatusFilter == nil,
	})

	for _, status := range orderStatuses {
		chips = append(chips, statusChipView{
			Value:  status,
			Label:  statusLabel(status),
			Active: browsing && snap.StatusFilter != nil && *snap.StatusFilter == status,
		})
	}

	return chips
}

func (h *Handler) buildOrderCard(order orderResource) orderCardView {
	items := make([]orderLineView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, buildOrderLine(item))
	}

	return orderCardView{
		ID:             order.ID,
		Reference:      order.Reference,
		Status:         order.Status,
		StatusLabel:    statusLabel(order.Status),
		StatusClass:    statusClass(order.Status),
		Payment:        order.Payment,
		PaymentPending: order.Payment == PaymentNotPaid,
		Amount:         formatEUR(order.Amount),
		DeliveryMethod: order.DeliveryMethod,
		Address:        order.Address,
		Customer:       order.CustomerName(),
		Date:           order.Date.Format("Jan 2, 2006 15:04"),
		Items:          items,
		Printable:      printableStatuses[order.Status],
		StatusBusy:     h.mutations.StatusInFlight(order.ID),
		PaymentBusy:    h.mutations.PaymentInFlight(order.ID),
	}
}

func buildOrderLine(item orderItemResource) orderLineView {
	addOns := make([]string, 0, len(item.AddOnsSelected))
	for _, a := range item.AddOnsSelected {
		addOns = append(addOns, fmt.Sprintf("%s (%s)", a.Name, formatEUR(a.Price)))
	}

	options := make([]string, 0, len(item.SelectedOptions))
	for _, opt := range item.SelectedOptions {
		names := make([]string, 0, len(opt.Choices))
		for _, c := range opt.Choices {
			names = append(names, c.Name)
		}
		options = append(options, fmt.Sprintf("%s: %s", opt.Title, strings.Join(names, ", ")))
	}

	return orderLineView{
		Name:        item.Name(),
		Quantity:    item.Quantity,
		UnitPrice:   formatEUR(item.UnitPrice()),
		Total:       formatEUR(item.LineTotal()),
		Ingredients: strings.Join(item.IngredientSelected, ", "),
		AddOns:      addOns,
		Options:     options,
	}
}

// OrderTicket renders the standalone printable ticket for one order.
func (h *Handler) OrderTicket(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.OrderTicket")
	defer finish()

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "missing order id", http.StatusBadRequest)
		return
	}

	order, err := h.orders.Get(r.Context(), orderID)
	if err != nil || order == nil {
		h.log().Error("cannot load order for ticket", "order_id", orderID, "error", err)
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	card := h.buildOrderCard(*order)

	data := map[string]interface{}{
		"Order":     card,
		"Pickup":    strings.EqualFold(order.DeliveryMethod, "pickup"),
		"Phone":     customerPhone(order),
		"PrintedAt": time.Now().Format("02/01/2006 15:04"),
		"Date":      order.Date.Format("02/01/2006 15:04"),
	}

	h.renderTemplate(w, "ticket.html", "ticket.html", data)
}

func customerPhone(order *orderResource) string {
	if order.User == nil {
		return ""
	}
	return order.User.Phone
}
