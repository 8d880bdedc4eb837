package catalog

import (
	"github.com/donaldgifford/offer-tracker/pkg/offer"
)

// ToItems converts catalog API items into offer items.
func ToItems(items []Item) []offer.Item {
	out := make([]offer.Item, 0, len(items))
	for i := range items {
		out = append(out, toItem(&items[i]))
	}
	return out
}

func toItem(item *Item) offer.Item {
	oi := offer.Item{
		ProductID: item.ProductID,
		Name:      item.Name,
		Prices: offer.Prices{
			DualPrice: item.Prices.IsDualPrice,
		},
		Sizes: make([]offer.Size, 0, len(item.Sizes)),
	}

	if item.Prices.Base != nil {
		oi.Prices.Base = item.Prices.Base.Value
	}

	if item.Prices.Promo != nil {
		promo := item.Prices.Promo.Value
		oi.Prices.Promo = &promo
	}

	for _, s := range item.Sizes {
		oi.Sizes = append(oi.Sizes, offer.Size{
			Name:        s.Name,
			DisplayCode: s.DisplayCode,
		})
	}

	return oi
}
