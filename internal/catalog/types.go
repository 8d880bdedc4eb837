package catalog

import "github.com/shopspring/decimal"

// Item represents a single product entry from the catalog listing response.
type Item struct {
	ProductID string     `json:"productId"`
	Name      string     `json:"name"`
	Prices    ItemPrices `json:"prices"`
	Sizes     []ItemSize `json:"sizes"`
}

// ItemPrices holds the price block of an item. Promo is null when no
// promotion is running.
type ItemPrices struct {
	Base        *PriceValue `json:"base"`
	Promo       *PriceValue `json:"promo"`
	IsDualPrice bool        `json:"isDualPrice"`
}

// PriceValue holds a single price. The catalog sends numbers; quoted
// strings are accepted as well.
type PriceValue struct {
	Value decimal.Decimal `json:"value"`
}

// ItemSize holds an available size.
type ItemSize struct {
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
}

type listingResponse struct {
	Result *listingResult `json:"result"`
}

type listingResult struct {
	Items *[]Item `json:"items"`
}
