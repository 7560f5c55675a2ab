package model

// Order is the immutable record of a completed purchase. It is created once
// at checkout and never mutated; re-ordering replays its lines into a fresh
// cart instead of touching the record.
type Order struct {
	ID          int64      `json:"id"` // UnixMilli at creation, unique per customer
	Reference   string     `json:"reference"`
	CreatedAt   string     `json:"created_at"` // display-formatted
	Lines       []CartLine `json:"lines"`
	Subtotal    int64      `json:"subtotal"`
	DeliveryFee int64      `json:"delivery_fee"`
	Total       int64      `json:"total"`
}

// CustomerStats are the cumulative counters behind the loyalty tier. They are
// written on exactly one path (Store.RecordOrder); the tier itself is derived
// from TotalSpent on every read and never stored.
type CustomerStats struct {
	TotalOrders int   `json:"totalOrders"`
	TotalSpent  int64 `json:"totalSpent"`
}
