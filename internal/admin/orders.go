package admin

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle statuses as the backend reports them. The dashboard does
// not enforce a transition graph; the backend is the authority on legality.
const (
	StatusPending        = "pending"
	StatusPreparing      = "preparing"
	StatusReady          = "ready"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// Payment states as the backend reports them.
const (
	PaymentPaid    = "Paid"
	PaymentNotPaid = "Not paid"
	PaymentFailed  = "failed"
)

// orderStatuses lists the selectable statuses in lifecycle order.
var orderStatuses = []string{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

var orderStatusClasses = map[string]string{
	StatusPending:        "status-pending",
	StatusPreparing:      "status-preparing",
	StatusReady:          "status-ready",
	StatusOutForDelivery: "status-out-for-delivery",
	StatusDelivered:      "status-delivered",
	StatusCancelled:      "status-cancelled",
}

// printableStatuses gates the ticket print action: only orders that left the
// kitchen can be printed.
var printableStatuses = map[string]bool{
	StatusReady:          true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
}

// orderResource mirrors the order aggregate returned by the backend. Field
// tags follow the backend's JSON contract, not this service's conventions.
type orderResource struct {
	ID             string              `json:"_id"`
	Reference      string              `json:"reference"`
	Status         string              `json:"status"`
	Payment        string              `json:"payment"`
	Amount         decimal.Decimal     `json:"amount"`
	Address        string              `json:"address"`
	DeliveryMethod string              `json:"deliveryMethod"`
	Date           time.Time           `json:"date"`
	User           *orderUserResource  `json:"userId"`
	Items          []orderItemResource `json:"items"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// orderUserResource is the customer snapshot embedded in an order. A nil
// value on the order means a guest checkout.
type orderUserResource struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// orderItemResource is a line item referencing either a dish ("plat") or a
// pack snapshot.
type orderItemResource struct {
	ID                 string                `json:"_id"`
	Type               string                `json:"type"`
	Pack               *productSnapshot      `json:"packId"`
	Dish               *productSnapshot      `json:"platId"`
	Quantity           int                   `json:"quantity"`
	Price              decimal.Decimal       `json:"price"`
	IngredientSelected []string              `json:"ingredientSelected"`
	AddOnsSelected     []addOnSelection      `json:"addOnsSelected"`
	SelectedOptions    []optionSelection     `json:"selectedOptions"`
	TotalPrice         decimal.Decimal       `json:"totalPrice"`
	FinalPrice         decimal.Decimal       `json:"finalPrice"`
}

type productSnapshot struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type addOnSelection struct {
	ID    string          `json:"_id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type optionSelection struct {
	ID      string         `json:"_id"`
	Title   string         `json:"title"`
	Choices []choicePicked `json:"choices"`
}

type choicePicked struct {
	ID    string          `json:"_id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Name resolves the display name of the line item regardless of whether it
// snapshots a dish or a pack.
func (i orderItemResource) Name() string {
	switch {
	case i.Dish != nil:
		return i.Dish.Name
	case i.Pack != nil:
		return i.Pack.Name
	default:
		return "Unknown item"
	}
}

// UnitPrice resolves the unit price with the same precedence as Name.
func (i orderItemResource) UnitPrice() decimal.Decimal {
	if !i.Price.IsZero() {
		return i.Price
	}
	switch {
	case i.Dish != nil:
		return i.Dish.Price
	case i.Pack != nil:
		return i.Pack.Price
	default:
		return decimal.Zero
	}
}

// LineTotal prefers the backend-computed final price, falling back to a
// display-only quantity multiplication. Never persisted.
func (i orderItemResource) LineTotal() decimal.Decimal {
	if !i.FinalPrice.IsZero() {
		return i.FinalPrice
	}
	if !i.TotalPrice.IsZero() {
		return i.TotalPrice
	}
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CustomerName renders the customer block heading, defaulting for guests.
func (o orderResource) CustomerName() string {
	if o.User == nil {
		return "Guest"
	}
	name := strings.TrimSpace(o.User.FirstName + " " + o.User.LastName)
	if name == "" {
		return "Guest"
	}
	return name
}

// statusLabel humanizes a backend status value ("out_for_delivery" becomes
// "Out For Delivery").
func statusLabel(status string) string {
	words := strings.Split(status, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func statusClass(status string) string {
	if class, ok := orderStatusClasses[status]; ok {
		return class
	}
	return "status-unknown"
}

func isValidStatus(status string) bool {
	for _, s := range orderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderSearchParams carries the free search fields exactly as submitted.
// Empty fields are omitted from the backend query.
type OrderSearchParams struct {
	Reference string
	Name      string
	Date      string
	StartDate string
	EndDate   string
}

// IsZero reports whether no search field is set.
func (p OrderSearchParams) IsZero() bool {
	return p == OrderSearchParams{}
}
