package admin

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type statCardView struct {
	Label string
	Value string
}

type recentCustomerView struct {
	Name  string
	Email string
	Since string
}

type recentOrderView struct {
	ID          string
	Reference   string
	Customer    string
	Amount      string
	StatusLabel string
	StatusClass string
	Date        string
}

// Home renders the dashboard landing page with the aggregate counters and
// recent activity. Reaching it from the orders view is the view-exit
// transition for notification consumption.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Home")
	defer finish()

	ctx := r.Context()
	h.leaveOrdersView(ctx)

	var loadError bool

	totals, err := h.dashData.Totals(ctx)
	if err != nil {
		h.log().Error("cannot load dashboard totals", "error", err)
		totals = &dashboardTotals{TotalRevenue: decimal.Zero}
		loadError = true
	}

	customers, err := h.dashData.RecentCustomers(ctx)
	if err != nil {
		h.log().Error("cannot load recent customers", "error", err)
		loadError = true
	}

	recentOrders, err := h.dashData.RecentOrders(ctx)
	if err != nil {
		h.log().Error("cannot load recent orders", "error", err)
		loadError = true
	}

	stats := []statCardView{
		{Label: "Customers", Value: formatCount(totals.TotalUsers)},
		{Label: "Orders", Value: formatCount(totals.TotalOrders)},
		{Label: "Revenue", Value: formatEUR(totals.TotalRevenue)},
		{Label: "Dishes", Value: formatCount(totals.TotalDishes)},
	}

	customerViews := make([]recentCustomerView, 0, len(customers))
	for _, c := range customers {
		name := c.FirstName + " " + c.LastName
		customerViews = append(customerViews, recentCustomerView{
			Name:  name,
			Email: c.Email,
			Since: c.CreatedAt.Format("Jan 2, 2006"),
		})
	}

	orderViews := make([]recentOrderView, 0, len(recentOrders))
	for _, o := range recentOrders {
		orderViews = append(orderViews, recentOrderView{
			ID:          o.ID,
			Reference:   o.Reference,
			Customer:    o.CustomerName(),
			Amount:      formatEUR(o.Amount),
			StatusLabel: statusLabel(o.Status),
			StatusClass: statusClass(o.Status),
			Date:        o.Date.Format("Jan 2, 2006 15:04"),
		})
	}

	data := map[string]interface{}{
		"Title":           "Dashboard",
		"Template":        "home",
		"Unread":          h.unreadBadge(),
		"Stats":           stats,
		"RecentCustomers": customerViews,
		"RecentOrders":    orderViews,
		"LoadError":       loadError,
	}

	h.renderTemplate(w, "home.html", "base.html", data)
}
