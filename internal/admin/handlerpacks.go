package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type packView struct {
	ID          string
	Name        string
	Description string
	Price       string
	Image       string
	Items       []packItem
	AddOns      []string
	Popularity  int
	Active      bool
}

// Packs renders the pack management page, most popular packs first.
func (h *Handler) Packs(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Packs")
	defer finish()

	ctx := r.Context()
	h.leaveOrdersView(ctx)

	var loadError bool

	packs, err := h.packData.ListPacks(ctx)
	if err != nil {
		h.log().Error("cannot load packs", "error", err)
		loadError = true
	}

	packViews := make([]packView, 0, len(packs))
	for _, p := range packs {
		packViews = append(packViews, buildPackView(p))
	}

	popular := popularPacks(packs, 3)
	popularViews := make([]packView, 0, len(popular))
	for _, p := range popular {
		popularViews = append(popularViews, buildPackView(p))
	}

	state := flashFromQuery(r)

	data := map[string]interface{}{
		"Title":     "Pack Management",
		"Template":  "packs",
		"Unread":    h.unreadBadge(),
		"Packs":     packViews,
		"Popular":   popularViews,
		"LoadError": loadError,
		"Error":     state.Error,
		"Success":   state.Success,
	}

	h.renderTemplate(w, "packs.html", "base.html", data)
}

// CreatePack handles the new-pack form.
func (h *Handler) CreatePack(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreatePack")
	defer finish()

	payload, err := packFromForm(r)
	if err != nil {
		redirectFlash(w, r, "/packs", "error")
		return
	}

	if err := h.packData.CreatePack(r.Context(), payload); err != nil {
		h.log().Error("cannot create pack", "error", err)
		redirectFlash(w, r, "/packs", "error")
		return
	}
	redirectFlash(w, r, "/packs", "created")
}

// UpdatePack handles the edit-pack form.
func (h *Handler) UpdatePack(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdatePack")
	defer finish()

	id := chi.URLParam(r, "id")
	payload, err := packFromForm(r)
	if err != nil || id == "" {
		redirectFlash(w, r, "/packs", "error")
		return
	}

	if err := h.packData.UpdatePack(r.Context(), id, payload); err != nil {
		h.log().Error("cannot update pack", "pack_id", id, "error", err)
		redirectFlash(w, r, "/packs", "error")
		return
	}
	redirectFlash(w, r, "/packs", "updated")
}

// TogglePack flips a pack's availability.
func (h *Handler) TogglePack(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.TogglePack")
	defer finish()

	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil || id == "" {
		redirectFlash(w, r, "/packs", "error")
		return
	}

	isActive := r.FormValue("is_active") == "1"
	if err := h.packData.TogglePack(r.Context(), id, isActive); err != nil {
		h.log().Error("cannot toggle pack", "pack_id", id, "error", err)
		redirectFlash(w, r, "/packs", "error")
		return
	}
	redirectFlash(w, r, "/packs", "updated")
}

// DeletePack removes a pack.
func (h *Handler) DeletePack(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeletePack")
	defer finish()

	id := chi.URLParam(r, "id")
	if err := h.packData.DeletePack(r.Context(), id); err != nil {
		h.log().Error("cannot delete pack", "pack_id", id, "error", err)
		redirectFlash(w, r, "/packs", "error")
		return
	}
	redirectFlash(w, r, "/packs", "deleted")
}

func buildPackView(p packResource) packView {
	addOns := make([]string, 0, len(p.AddOns))
	for _, a := range p.AddOns {
		addOns = append(addOns, a.Name+" ("+formatEUR(a.Price)+")")
	}

	return packView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       formatEUR(p.Price),
		Image:       p.Image,
		Items:       p.Items,
		AddOns:      addOns,
		Popularity:  p.Popularity,
		Active:      p.IsActive,
	}
}

func packFromForm(r *http.Request) (PackPayload, error) {
	if err := r.ParseForm(); err != nil {
		return PackPayload{}, err
	}

	payload := PackPayload{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Image:       strings.TrimSpace(r.FormValue("image")),
	}

	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return PackPayload{}, err
		}
		payload.Price = &price
	}

	// Items arrive as "Name x Quantity" lines, one per line.
	for _, line := range strings.Split(r.FormValue("items"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		item := packItem{Name: line, Quantity: 1}
		if name, qty, ok := strings.Cut(line, " x "); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(qty)); err == nil && n > 0 {
				item.Name = strings.TrimSpace(name)
				item.Quantity = n
			}
		}
		payload.Items = append(payload.Items, item)
	}

	return payload, nil
}
