package admin

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aquamarinepk/aqm"
)

// OrderDataAccess centralizes decoding of the backend's order endpoints.
// The backend computes totals and owns all durable order state; this type is
// a thin request/response wrapper.
type OrderDataAccess struct {
	client *aqm.ServiceClient
}

func NewOrderDataAccess(client *aqm.ServiceClient) *OrderDataAccess {
	return &OrderDataAccess{client: client}
}

// decodeOrderList accepts both order-read envelopes the backend produces:
// the list directly in the payload, or nested under an "orders" key as the
// original order endpoints emit it.
func decodeOrderList(resp *aqm.SuccessResponse) ([]orderResource, error) {
	var orders []orderResource
	if err := decodeSuccessResponse(resp, &orders); err == nil && orders != nil {
		return orders, nil
	}

	var envelope struct {
		Orders []orderResource `json:"orders"`
	}
	if err := decodeSuccessResponse(resp, &envelope); err != nil {
		return nil, err
	}
	return envelope.Orders, nil
}

// Filter lists orders by status. A nil status lists all orders.
func (da *OrderDataAccess) Filter(ctx context.Context, status *string) ([]orderResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}

	path := "/api/order/filter"
	if status != nil && *status != "" {
		path += "?status=" + url.QueryEscape(*status)
	}

	resp, err := da.client.Request(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	return decodeOrderList(resp)
}

// Search queries orders by reference/customer name and date bounds.
func (da *OrderDataAccess) Search(ctx context.Context, params OrderSearchParams) ([]orderResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}

	q := url.Values{}
	if params.Reference != "" {
		q.Set("reference", params.Reference)
	}
	if params.Name != "" {
		q.Set("name", params.Name)
	}
	if params.Date != "" {
		q.Set("date", params.Date)
	}
	if params.StartDate != "" {
		q.Set("startDate", params.StartDate)
	}
	if params.EndDate != "" {
		q.Set("endDate", params.EndDate)
	}

	path := "/api/order/search-order?" + q.Encode()
	resp, err := da.client.Request(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	return decodeOrderList(resp)
}

// Get fetches a single order, used by the printable ticket view.
func (da *OrderDataAccess) Get(ctx context.Context, id string) (*orderResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return nil, fmt.Errorf("missing order id")
	}

	path := fmt.Sprintf("/api/order/%s", url.PathEscape(id))
	resp, err := da.client.Request(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var order orderResource
	if err := decodeSuccessResponse(resp, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateStatus transitions an order to newStatus. The backend validates the
// transition; the dashboard only relays it.
func (da *OrderDataAccess) UpdateStatus(ctx context.Context, id, newStatus string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing order id")
	}

	path := fmt.Sprintf("/api/order/update-status/%s", url.PathEscape(id))
	payload := map[string]interface{}{"status": newStatus}

	if _, err := da.client.Request(ctx, "PUT", path, payload); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

// UpdatePayment marks an order's payment state.
func (da *OrderDataAccess) UpdatePayment(ctx context.Context, id, paymentStatus string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing order id")
	}

	path := fmt.Sprintf("/api/order/payment-status/%s", url.PathEscape(id))
	payload := map[string]interface{}{"paymentStatus": paymentStatus}

	if _, err := da.client.Request(ctx, "PUT", path, payload); err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	return nil
}

// UnreadNotificationsCount reads the initial badge value.
func (da *OrderDataAccess) UnreadNotificationsCount(ctx context.Context) (int, error) {
	if da == nil || da.client == nil {
		return 0, fmt.Errorf("backend client not configured")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/order/unread-notifications-count", nil)
	if err != nil {
		return 0, err
	}

	var payload struct {
		Count int `json:"count"`
	}
	if err := decodeSuccessResponse(resp, &payload); err != nil {
		return 0, err
	}

	return payload.Count, nil
}

// MarkNotificationsRead clears the unread counter server-side. Idempotent.
func (da *OrderDataAccess) MarkNotificationsRead(ctx context.Context) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}

	if _, err := da.client.Request(ctx, "PUT", "/api/order/mark-notifications-read", nil); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}

// PendingCount feeds the new-order alert engine.
func (da *OrderDataAccess) PendingCount(ctx context.Context) (int, error) {
	status := StatusPending
	orders, err := da.Filter(ctx, &status)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}
