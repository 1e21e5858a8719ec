package admin

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/shopspring/decimal"
)

// packResource mirrors a fixed-price bundle of dishes.
type packResource struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Items       []packItem      `json:"items"`
	AddOns      []packAddOn     `json:"addOns"`
	Popularity  int             `json:"popularity"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type packItem struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type packAddOn struct {
	ID    string          `json:"_id,omitempty"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// PackPayload is the create/update body for packs.
type PackPayload struct {
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Price       *float64    `json:"price,omitempty"`
	Image       string      `json:"image,omitempty"`
	Items       []packItem  `json:"items,omitempty"`
	AddOns      []packAddOn `json:"addOns,omitempty"`
}

// PackDataAccess wraps the backend's pack endpoints.
type PackDataAccess struct {
	client *aqm.ServiceClient
}

func NewPackDataAccess(client *aqm.ServiceClient) *PackDataAccess {
	return &PackDataAccess{client: client}
}

func (da *PackDataAccess) ListPacks(ctx context.Context) ([]packResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/packs/all", nil)
	if err != nil {
		return nil, err
	}

	var packs []packResource
	if err := decodeSuccessResponse(resp, &packs); err != nil {
		return nil, err
	}

	return packs, nil
}

func (da *PackDataAccess) GetPack(ctx context.Context, id string) (*packResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return nil, fmt.Errorf("missing pack id")
	}

	resp, err := da.client.Request(ctx, "GET", "/api/packs/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var pack packResource
	if err := decodeSuccessResponse(resp, &pack); err != nil {
		return nil, err
	}

	return &pack, nil
}

func (da *PackDataAccess) CreatePack(ctx context.Context, payload PackPayload) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}

	if _, err := da.client.Request(ctx, "POST", "/api/packs/add", payload); err != nil {
		return fmt.Errorf("failed to create pack: %w", err)
	}
	return nil
}

func (da *PackDataAccess) UpdatePack(ctx context.Context, id string, payload PackPayload) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing pack id")
	}

	if _, err := da.client.Request(ctx, "PUT", "/api/packs/"+url.PathEscape(id), payload); err != nil {
		return fmt.Errorf("failed to update pack: %w", err)
	}
	return nil
}

// TogglePack flips a pack's availability without touching the rest of it.
func (da *PackDataAccess) TogglePack(ctx context.Context, id string, isActive bool) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing pack id")
	}

	payload := map[string]interface{}{"isActive": isActive}
	path := fmt.Sprintf("/api/packs/%s/toggle", url.PathEscape(id))
	if _, err := da.client.Request(ctx, "PUT", path, payload); err != nil {
		return fmt.Errorf("failed to toggle pack: %w", err)
	}
	return nil
}

func (da *PackDataAccess) DeletePack(ctx context.Context, id string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("backend client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing pack id")
	}

	if _, err := da.client.Request(ctx, "DELETE", "/api/packs/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("failed to delete pack: %w", err)
	}
	return nil
}

// popularPacks returns the active packs sorted by popularity, limited when
// limit is positive. Derived client-side; the backend has no such endpoint.
func popularPacks(packs []packResource, limit int) []packResource {
	active := make([]packResource, 0, len(packs))
	for _, p := range packs {
		if p.IsActive {
			active = append(active, p)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Popularity > active[j].Popularity
	})

	if limit > 0 && limit < len(active) {
		return active[:limit]
	}
	return active
}
