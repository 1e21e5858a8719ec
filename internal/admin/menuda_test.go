package admin

import (
	"context"
	"testing"
)

func TestMenuDataAccessNilClient(t *testing.T) {
	da := &MenuDataAccess{client: nil}
	ctx := context.Background()

	if _, err := da.ListCategories(ctx); err == nil {
		t.Error("ListCategories() with nil client should return error")
	}
	if _, err := da.ListDishes(ctx); err == nil {
		t.Error("ListDishes() with nil client should return error")
	}
	if err := da.CreateCategory(ctx, CategoryPayload{Name: "Grill"}); err == nil {
		t.Error("CreateCategory() with nil client should return error")
	}
	if err := da.CreateDish(ctx, DishPayload{Name: "Lahmacun"}); err == nil {
		t.Error("CreateDish() with nil client should return error")
	}
}

func TestMenuDataAccessEmptyIDs(t *testing.T) {
	da := &MenuDataAccess{client: nil}
	ctx := context.Background()

	if _, err := da.GetCategory(ctx, ""); err == nil {
		t.Error("GetCategory() with empty id should return error")
	}
	if err := da.UpdateCategory(ctx, "", CategoryPayload{}); err == nil {
		t.Error("UpdateCategory() with empty id should return error")
	}
	if err := da.DeleteDish(ctx, ""); err == nil {
		t.Error("DeleteDish() with empty id should return error")
	}
	if _, err := da.ListDishesByCategory(ctx, ""); err == nil {
		t.Error("ListDishesByCategory() with empty id should return error")
	}
}
