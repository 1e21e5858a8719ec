package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type categoryView struct {
	ID        string
	Name      string
	Image     string
	DishCount int
}

type dishView struct {
	ID          string
	Name        string
	Description string
	Price       string
	Image       string
	CategoryID  string
	Ingredients string
	Available   bool
}

// Menu renders the category and dish management page.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Menu")
	defer finish()

	ctx := r.Context()
	h.leaveOrdersView(ctx)

	var loadError bool

	categories, err := h.menuData.ListCategories(ctx)
	if err != nil {
		h.log().Error("cannot load categories", "error", err)
		loadError = true
	}

	dishes, err := h.menuData.ListDishes(ctx)
	if err != nil {
		h.log().Error("cannot load dishes", "error", err)
		loadError = true
	}

	categoryViews := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		categoryViews = append(categoryViews, categoryView{
			ID:        c.ID,
			Name:      c.Name,
			Image:     c.Image,
			DishCount: len(c.Dishes),
		})
	}

	dishViews := make([]dishView, 0, len(dishes))
	for _, d := range dishes {
		dishViews = append(dishViews, dishView{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Price:       formatEUR(d.Price),
			Image:       d.Image,
			CategoryID:  d.Category,
			Ingredients: strings.Join(d.Ingredients, ", "),
			Available:   d.IsAvailable,
		})
	}

	state := flashFromQuery(r)

	data := map[string]interface{}{
		"Title":      "Menu Management",
		"Template":   "menu",
		"Unread":     h.unreadBadge(),
		"Categories": categoryViews,
		"Dishes":     dishViews,
		"LoadError":  loadError,
		"Error":      state.Error,
		"Success":    state.Success,
	}

	h.renderTemplate(w, "menu.html", "base.html", data)
}

// CreateCategory handles the new-category form.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateCategory")
	defer finish()

	payload, err := categoryFromForm(r)
	if err != nil {
		redirectFlash(w, r, "/menu", "error")
		return
	}

	if err := h.menuData.CreateCategory(r.Context(), payload); err != nil {
		h.log().Error("cannot create category", "error", err)
		redirectFlash(w, r, "/menu", "error")
		return
	}
	redirectFlash(w, r, "/menu", "created")
}

// UpdateCategory handles the edit-category form.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateCategory")
	defer finish()

	id := chi.URLParam(r, "id")
	payload, err := categoryFromForm(r)
	if err != nil || id == "" {
		redirectFlash(w, r, "/menu", "error")
		return
	}

	if err := h.menuData.UpdateCategory(r.Context(), id, payload); err != nil {
		h.log().Error("cannot update category", "category_id", id, "error", err)
		redirectFlash(w, r, "/menu", "error")
		return
	}
	redirectFlash(w, r, "/menu", "updated")
}

// DeleteCategory removes a category. The backend decides what happens to its
// dishes; the dashboard only relays the request.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteCategory")
	defer finish()

	id := chi.URLParam(r, "id")
	if err := h.menuData.DeleteCategory(r.Context(), id); err != nil {
		h.log().Error("cannot delete category", "category_id", id, "error", err)
		redirectFlash(w, r, "/menu", "error")
		return
	}
	redirectFlash(w, r, "/menu", "deleted")
}

// CreateDish handles the new-dish form.
func (h *Handler) CreateDish(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateDish")
	defer finish()

	payload, err := dishFromForm(r)
	if err != nil {
		redirectFlash(w, r, "/menu", "error")
		return
	}

	if err := h.menuData.CreateDish(r.Context(), payload); err != nil {
		h.log().Error("cannot create dish", "error", err)
		redirectFlash(w, r, "/menu", "error")
		return
	}
	redirectFlash(w, r, "/menu", "created")
}

// UpdateDish handles the edit-dish form.
func (h *Handler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateDish")
	defer finish()

	id := chi.URLParam(r, "id")
	payload, err := dishFromForm(r)
	if err != nil || id == "" {
		redirectFlash(w, r, "/menu", "error")
		return
	}

	if err := h.menuData.UpdateDish(r.Context(), id, payload); err != nil {
		h.log().Error("cannot update dish", "dish_id", id, "error", err)
		redirectFlash(w, r, "/menu", "error")
		return
	}
	redirectFlash(w, r, "/menu", "updated")
}

// DeleteDish removes a dish.
func (h *Handler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteDish")
	defer finish()

	id := chi.URLParam(r, "id")
	if err := h.menuData.DeleteDish(r.Context(), id); err != nil {
		h.log().Error("cannot delete dish", "dish_id", id, "error", err)
		redirectFlash(w, r, "/menu", "error")
		return
	}
	redirectFlash(w, r, "/menu", "deleted")
}

func categoryFromForm(r *http.Request) (CategoryPayload, error) {
	if err := r.ParseForm(); err != nil {
		return CategoryPayload{}, err
	}
	return CategoryPayload{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Image: strings.TrimSpace(r.FormValue("image")),
	}, nil
}

func dishFromForm(r *http.Request) (DishPayload, error) {
	if err := r.ParseForm(); err != nil {
		return DishPayload{}, err
	}

	payload := DishPayload{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Image:       strings.TrimSpace(r.FormValue("image")),
		CategoryID:  strings.TrimSpace(r.FormValue("category")),
		Ingredients: splitList(r.FormValue("ingredients")),
	}

	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return DishPayload{}, err
		}
		payload.Price = &price
	}

	if raw := r.FormValue("is_available"); raw != "" {
		available := raw == "1"
		payload.IsAvailable = &available
	}

	return payload, nil
}

// splitList turns a comma-separated form field into a clean slice.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// flashFromQuery maps the PRG flash parameter to page state.
func flashFromQuery(r *http.Request) ordersPageState {
	state := ordersPageState{}
	switch r.URL.Query().Get("flash") {
	case "created":
		state.Success = "Created successfully."
	case "updated":
		state.Success = "Updated successfully."
	case "deleted":
		state.Success = "Deleted successfully."
	case "error":
		state.Error = "The operation failed. Nothing was changed."
	}
	return state
}

func redirectFlash(w http.ResponseWriter, r *http.Request, path, flash string) {
	http.Redirect(w, r, path+"?flash="+flash, http.StatusSeeOther)
}
