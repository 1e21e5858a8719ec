package admin

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		name   string
		status string
		want   string
	}{
		{name: "singleWord", status: "pending", want: "Pending"},
		{name: "underscores", status: "out_for_delivery", want: "Out For Delivery"},
		{name: "alreadyClean", status: "delivered", want: "Delivered"},
		{name: "empty", status: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusLabel(tc.status); got != tc.want {
				t.Errorf("statusLabel(%q) = %q, want %q", tc.status, got, tc.want)
			}
		})
	}
}

func TestStatusClassUnknownStatus(t *testing.T) {
	if got := statusClass("vanished"); got != "status-unknown" {
		t.Errorf("statusClass(vanished) = %q, want status-unknown", got)
	}
}

func TestPrintableStatuses(t *testing.T) {
	printable := []string{StatusReady, StatusOutForDelivery, StatusDelivered}
	for _, s := range printable {
		if !printableStatuses[s] {
			t.Errorf("status %q should be printable", s)
		}
	}

	notPrintable := []string{StatusPending, StatusPreparing, StatusCancelled}
	for _, s := range notPrintable {
		if printableStatuses[s] {
			t.Errorf("status %q should not be printable", s)
		}
	}
}

func TestCustomerNameDefaultsToGuest(t *testing.T) {
	cases := []struct {
		name  string
		order orderResource
		want  string
	}{
		{name: "nilUser", order: orderResource{}, want: "Guest"},
		{name: "emptyNames", order: orderResource{User: &orderUserResource{}}, want: "Guest"},
		{name: "fullName", order: orderResource{User: &orderUserResource{FirstName: "Ayse", LastName: "Demir"}}, want: "Ayse Demir"},
		{name: "firstOnly", order: orderResource{User: &orderUserResource{FirstName: "Ayse"}}, want: "Ayse"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.order.CustomerName(); got != tc.want {
				t.Errorf("CustomerName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestItemNameResolution(t *testing.T) {
	dish := orderItemResource{Dish: &productSnapshot{Name: "Lahmacun"}}
	if got := dish.Name(); got != "Lahmacun" {
		t.Errorf("Name() = %q, want Lahmacun", got)
	}

	pack := orderItemResource{Pack: &productSnapshot{Name: "Family Pack"}}
	if got := pack.Name(); got != "Family Pack" {
		t.Errorf("Name() = %q, want Family Pack", got)
	}

	neither := orderItemResource{}
	if got := neither.Name(); got != "Unknown item" {
		t.Errorf("Name() = %q, want Unknown item", got)
	}
}

func TestLineTotalPrecedence(t *testing.T) {
	item := orderItemResource{
		Quantity:   2,
		Price:      decimal.NewFromInt(10),
		TotalPrice: decimal.NewFromInt(18),
		FinalPrice: decimal.NewFromInt(15),
	}
	if got := item.LineTotal(); !got.Equal(decimal.NewFromInt(15)) {
		t.Errorf("LineTotal() = %s, want final price 15", got)
	}

	item.FinalPrice = decimal.Zero
	if got := item.LineTotal(); !got.Equal(decimal.NewFromInt(18)) {
		t.Errorf("LineTotal() = %s, want total price 18", got)
	}

	item.TotalPrice = decimal.Zero
	if got := item.LineTotal(); !got.Equal(decimal.NewFromInt(20)) {
		t.Errorf("LineTotal() = %s, want 2 x 10", got)
	}
}

func TestOrderSearchParamsIsZero(t *testing.T) {
	if !(OrderSearchParams{}).IsZero() {
		t.Error("empty params should be zero")
	}
	if (OrderSearchParams{Reference: "CMD-1"}).IsZero() {
		t.Error("params with a reference should not be zero")
	}
}
