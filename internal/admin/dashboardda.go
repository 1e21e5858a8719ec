package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/shopspring/decimal"
)

// dashboardTotals mirrors the aggregate counters for the home page.
type dashboardTotals struct {
	TotalUsers   int             `json:"totalUsers"`
	TotalOrders  int             `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalDishes  int             `json:"totalPlats"`
}

// recentCustomer mirrors a recently registered customer.
type recentCustomer struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardDataAccess wraps the backend's dashboard aggregates.
type DashboardDataAccess struct {
	client *aqm.ServiceClient
}

func NewDashboardDataAccess(client *aqm.ServiceClient) *DashboardDataAccess {
	return &DashboardDataAccess{client: client}
}

func (da *DashboardDataAccess) Totals(ctx context.Context) (*dashboardTotals, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/dashboard/total", nil)
	if err != nil {
		return nil, err
	}

	var totals dashboardTotals
	if err := decodeSuccessResponse(resp, &totals); err != nil {
		return nil, err
	}

	return &totals, nil
}

func (da *DashboardDataAccess) RecentCustomers(ctx context.Context) ([]recentCustomer, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/dashboard/new-customers", nil)
	if err != nil {
		return nil, err
	}

	var customers []recentCustomer
	if err := decodeSuccessResponse(resp, &customers); err != nil {
		return nil, err
	}

	return customers, nil
}

func (da *DashboardDataAccess) RecentOrders(ctx context.Context) ([]orderResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/dashboard/new-orders", nil)
	if err != nil {
		return nil, err
	}

	var orders []orderResource
	if err := decodeSuccessResponse(resp, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}
