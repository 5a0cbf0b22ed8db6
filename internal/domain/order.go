package domain

// DateLayout is the calendar-date format used across orders, ad spend and the
// aggregated dashboard rows. Orders are bucketed by day, so the full ingestion
// timestamp is truncated to this layout at the edge.
const DateLayout = "2006-01-02"

// Order is a single commerce-platform order, keyed by the platform's own
// order identifier. Re-ingesting the same order overwrites, never duplicates.
type Order struct {
	OrderID       string  `json:"order_id" db:"order_id"`
	ShopURL       string  `json:"shop_url" db:"shop_url"`
	Date          string  `json:"date" db:"date"`
	Amount        float64 `json:"amount" db:"amount"`
	Currency      string  `json:"currency" db:"currency"`
	CustomerEmail string  `json:"customer_email" db:"customer_email"`
}
