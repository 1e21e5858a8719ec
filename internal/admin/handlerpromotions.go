package admin

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type promotionView struct {
	ID        string
	Discount  string
	StartDate string
	EndDate   string
	Dishes    []string
	Active    bool
	Expired   bool
}

// Promotions renders the promotion management page.
func (h *Handler) Promotions(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Promotions")
	defer finish()

	ctx := r.Context()
	h.leaveOrdersView(ctx)

	var loadError bool

	promos, err := h.promoData.ListPromotions(ctx)
	if err != nil {
		h.log().Error("cannot load promotions", "error", err)
		loadError = true
	}

	dishes, err := h.menuData.ListDishes(ctx)
	if err != nil {
		h.log().Error("cannot load dishes for promotion form", "error", err)
		loadError = true
	}

	now := time.Now()
	promoViews := make([]promotionView, 0, len(promos))
	for _, p := range promos {
		names := make([]string, 0, len(p.Dishes))
		for _, d := range p.Dishes {
			names = append(names, d.Name)
		}
		promoViews = append(promoViews, promotionView{
			ID:        p.ID,
			Discount:  strconv.FormatFloat(p.Discount, 'f', -1, 64) + "%",
			StartDate: p.StartDate.Format("02/01/2006"),
			EndDate:   p.EndDate.Format("02/01/2006"),
			Dishes:    names,
			Active:    p.Active(now),
			Expired:   now.After(p.EndDate),
		})
	}

	dishChoices := make([]dishView, 0, len(dishes))
	for _, d := range dishes {
		dishChoices = append(dishChoices, dishView{ID: d.ID, Name: d.Name})
	}

	state := flashFromQuery(r)

	data := map[string]interface{}{
		"Title":      "Promotion Management",
		"Template":   "promotions",
		"Unread":     h.unreadBadge(),
		"Promotions": promoViews,
		"Dishes":     dishChoices,
		"LoadError":  loadError,
		"Error":      state.Error,
		"Success":    state.Success,
	}

	h.renderTemplate(w, "promotions.html", "base.html", data)
}

// CreatePromotion handles the new-promotion form.
func (h *Handler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreatePromotion")
	defer finish()

	payload, err := promotionFromForm(r)
	if err != nil {
		redirectFlash(w, r, "/promotions", "error")
		return
	}

	if err := h.promoData.CreatePromotion(r.Context(), payload); err != nil {
		h.log().Error("cannot create promotion", "error", err)
		redirectFlash(w, r, "/promotions", "error")
		return
	}
	redirectFlash(w, r, "/promotions", "created")
}

// UpdatePromotion handles the edit-promotion form.
func (h *Handler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdatePromotion")
	defer finish()

	id := chi.URLParam(r, "id")
	payload, err := promotionFromForm(r)
	if err != nil || id == "" {
		redirectFlash(w, r, "/promotions", "error")
		return
	}

	if err := h.promoData.UpdatePromotion(r.Context(), id, payload); err != nil {
		h.log().Error("cannot update promotion", "promotion_id", id, "error", err)
		redirectFlash(w, r, "/promotions", "error")
		return
	}
	redirectFlash(w, r, "/promotions", "updated")
}

// DeletePromotion removes a promotion.
func (h *Handler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeletePromotion")
	defer finish()

	id := chi.URLParam(r, "id")
	if err := h.promoData.DeletePromotion(r.Context(), id); err != nil {
		h.log().Error("cannot delete promotion", "promotion_id", id, "error", err)
		redirectFlash(w, r, "/promotions", "error")
		return
	}
	redirectFlash(w, r, "/promotions", "deleted")
}

func promotionFromForm(r *http.Request) (PromotionPayload, error) {
	if err := r.ParseForm(); err != nil {
		return PromotionPayload{}, err
	}

	payload := PromotionPayload{
		StartDate: strings.TrimSpace(r.FormValue("start_date")),
		EndDate:   strings.TrimSpace(r.FormValue("end_date")),
		DishIDs:   r.Form["dish_ids"],
	}

	if raw := strings.TrimSpace(r.FormValue("discount")); raw != "" {
		discount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return PromotionPayload{}, err
		}
		payload.Discount = &discount
	}

	return payload, nil
}
