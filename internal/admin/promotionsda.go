package admin

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/aquamarinepk/aqm"
)

// promotionResource mirrors a time-bounded discount over a set of dishes.
type promotionResource struct {
	ID        string         `json:"_id"`
	Discount  float64        `json:"discount"`
	StartDate time.Time      `json:"startDate"`
	EndDate   time.Time      `json:"endDate"`
	Dishes    []dishResource `json:"plats"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Active reports whether the promotion window covers now.
func (p promotionResource) Active(now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// PromotionPayload is the create/update body for promotions.
type PromotionPayload struct {
	Discount  *float64 `json:"discount,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	DishIDs   []string `json:"platIds,omitempty"`
}

// PromotionDataAccess wraps the backend's promotion endpoints.
type PromotionDataAccess struct {
	client *aqm.ServiceClient
}

func NewPromotionDataAccess(client *aqm.ServiceClient) *PromotionDataAccess {
	return &PromotionDataAccess{client: client}
}

func (da *PromotionDataAccess) ListPromotions(ctx context.Context) ([]promotionResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/promotions", nil)
	if err != nil {
		return nil, err
	}

	var promos []promotionResource
	if err := decodeSuccessResponse(resp, &promos); err != nil {
		return nil, err
	}

	return promos, nil
}

func (da *PromotionDataAccess) GetPromotion(ctx context.Context, id string) (*promotionResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return nil, fmt.Errorf("missing promotion id")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/promotions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var promo promotionResource
	if err := decodeSuccessResponse(resp, &promo); err != nil {
		return nil, err
	}

	return &promo, nil
}

func (da *PromotionDataAccess) CreatePromotion(ctx context.Context, payload PromotionPayload) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}

	if _, err := da.client.Request(ctx, "POST", "/api/promotions/add", payload); err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}
	return nil
}

func (da *PromotionDataAccess) UpdatePromotion(ctx context.Context, id string, payload PromotionPayload) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing promotion id")
	}

	if _, err := da.client.Request(ctx, "PUT", "/api/promotions/"+url.PathEscape(id), payload); err != nil {
		return fmt.Errorf("failed to update promotion: %w", err)
	}
	return nil
}

func (da *PromotionDataAccess) DeletePromotion(ctx context.Context, id string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing promotion id")
	}

	if _, err := da.client.Request(ctx, "DELETE", "/api/promotions/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	return nil
}
