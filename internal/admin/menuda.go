package admin

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/shopspring/decimal"
)

// categoryResource mirrors a menu category. The backend nests the dishes
// assigned to each category under "plats".
type categoryResource struct {
	ID        string         `json:"_id"`
	Name      string         `json:"name"`
	Image     string         `json:"image"`
	Dishes    []dishResource `json:"plats"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// dishResource mirrors a dish ("plat" in the backend's vocabulary).
type dishResource struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Ingredients []string        `json:"ingredients"`
	Options     []dishOption    `json:"options"`
	IsAvailable bool            `json:"isAvailable"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type dishOption struct {
	ID         string       `json:"_id,omitempty"`
	Title      string       `json:"title"`
	Choices    []dishChoice `json:"choices"`
	Required   bool         `json:"required"`
	IsMultiple bool         `json:"isMultiple"`
}

type dishChoice struct {
	ID    string          `json:"_id,omitempty"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CategoryPayload is the create/update body for categories.
type CategoryPayload struct {
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// DishPayload is the create/update body for dishes. Zero-valued fields are
// omitted so partial updates only touch what the form submitted.
type DishPayload struct {
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Price       *float64     `json:"price,omitempty"`
	Image       string       `json:"image,omitempty"`
	CategoryID  string       `json:"categoryId,omitempty"`
	Ingredients []string     `json:"ingredients,omitempty"`
	Options     []dishOption `json:"options,omitempty"`
	IsAvailable *bool        `json:"isAvailable,omitempty"`
}

// MenuDataAccess wraps the backend's category and dish endpoints.
type MenuDataAccess struct {
	client *aqm.ServiceClient
}

func NewMenuDataAccess(client *aqm.ServiceClient) *MenuDataAccess {
	return &MenuDataAccess{client: client}
}

func (da *MenuDataAccess) ListCategories(ctx context.Context) ([]categoryResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/category", nil)
	if err != nil {
		return nil, err
	}

	var categories []categoryResource
	if err := decodeSuccessResponse(resp, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (da *MenuDataAccess) GetCategory(ctx context.Context, id string) (*categoryResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return nil, fmt.Errorf("missing category id")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/category/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var category categoryResource
	if err := decodeSuccessResponse(resp, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (da *MenuDataAccess) CreateCategory(ctx context.Context, payload CategoryPayload) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}

	if _, err := da.client.Request(ctx, "POST", "/api/category/add", payload); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (da *MenuDataAccess) UpdateCategory(ctx context.Context, id string, payload CategoryPayload) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing category id")
	}

	if _, err := da.client.Request(ctx, "PUT", "/api/category/update/"+url.PathEscape(id), payload); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (da *MenuDataAccess) DeleteCategory(ctx context.Context, id string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing category id")
	}

	if _, err := da.client.Request(ctx, "DELETE", "/api/category/delete/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (da *MenuDataAccess) ListDishes(ctx context.Context) ([]dishResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/plats", nil)
	if err != nil {
		return nil, err
	}

	var dishes []dishResource
	if err := decodeSuccessResponse(resp, &dishes); err != nil {
		return nil, err
	}

	return dishes, nil
}

func (da *MenuDataAccess) ListDishesByCategory(ctx context.Context, categoryID string) ([]dishResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}
	if categoryID == "" {
		return nil, fmt.Errorf("missing category id")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/plats/category/"+url.PathEscape(categoryID), nil)
	if err != nil {
		return nil, err
	}

	var dishes []dishResource
	if err := decodeSuccessResponse(resp, &dishes); err != nil {
		return nil, err
	}

	return dishes, nil
}

func (da *MenuDataAccess) GetDish(ctx context.Context, id string) (*dishResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return nil, fmt.Errorf("missing dish id")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/plats/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var dish dishResource
	if err := decodeSuccessResponse(resp, &dish); err != nil {
		return nil, err
	}

	return &dish, nil
}

func (da *MenuDataAccess) CreateDish(ctx context.Context, payload DishPayload) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}

	if _, err := da.client.Request(ctx, "POST", "/api/plats/add", payload); err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}
	return nil
}

func (da *MenuDataAccess) UpdateDish(ctx context.Context, id string, payload DishPayload) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing dish id")
	}

	if _, err := da.client.Request(ctx, "PUT", "/api/plats/update/"+url.PathEscape(id), payload); err != nil {
		return fmt.Errorf("failed to update dish: %w", err)
	}
	return nil
}

func (da *MenuDataAccess) DeleteDish(ctx context.Context, id string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing dish id")
	}

	if _, err := da.client.Request(ctx, "DELETE", "/api/plats/delete/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}
	return nil
}
