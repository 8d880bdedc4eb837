// Package domain defines the wire types shared by the offer-tracker control
// API and its client.
package domain

import "time"

// TickReport is the JSON view of one catalog poll.
type TickReport struct {
	Outcome       string    `json:"outcome" example:"notified" doc:"idle, notified, suppressed, reset, inconclusive, notify_failed or error"`
	ProductID     string    `json:"product_id" example:"E457428-000"`
	Name          string    `json:"name,omitempty" example:"AIRism Cotton T-Shirt"`
	Found         bool      `json:"found" doc:"Product seen in the scanned pages"`
	Qualifies     bool      `json:"qualifies" doc:"Promotion active and a tracked size available"`
	PromoPrice    string    `json:"promo_price,omitempty" example:"29.90"`
	BasePrice     string    `json:"base_price,omitempty" example:"39.90"`
	MatchingSizes []string  `json:"matching_sizes,omitempty" example:"[\"M\",\"S\"]"`
	PagesFetched  int       `json:"pages_fetched"`
	ItemsSeen     int       `json:"items_seen"`
	StoppedAt     string    `json:"stopped_at,omitempty" example:"offer_found"`
	StartedAt     time.Time `json:"started_at"`
	DurationMs    int64     `json:"duration_ms"`
	Error         string    `json:"error,omitempty"`
}

// StateView is the JSON view of the notification record.
type StateView struct {
	ProductID string      `json:"product_id" example:"E457428-000"`
	Sizes     []string    `json:"sizes" example:"[\"S\",\"M\"]"`
	Notified  []string    `json:"notified" doc:"Product ids already announced"`
	Current   bool        `json:"current_notified" doc:"Whether the tracked product is in the record"`
	LastTick  *TickReport `json:"last_tick,omitempty"`
}

// StatusMessage is a generic status body.
type StatusMessage struct {
	Status string `json:"status" example:"ok"`
}
