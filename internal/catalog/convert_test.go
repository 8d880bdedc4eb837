package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/offer-tracker/internal/catalog"
)

func TestToItems(t *testing.T) {
	t.Parallel()

	items := []catalog.Item{
		{
			ProductID: "E457428-000",
			Name:      "Shirt",
			Prices: catalog.ItemPrices{
				Base:        promo("39.90"),
				Promo:       promo("29.90"),
				IsDualPrice: true,
			},
			Sizes: []catalog.ItemSize{{Name: "S", DisplayCode: "002"}},
		},
		{
			ProductID: "E000001-000",
		},
	}

	out := catalog.ToItems(items)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, "E457428-000", first.ProductID)
	assert.Equal(t, "39.9", first.Prices.Base.String())
	require.NotNil(t, first.Prices.Promo)
	assert.Equal(t, "29.9", first.Prices.Promo.String())
	assert.True(t, first.Prices.DualPrice)
	require.Len(t, first.Sizes, 1)
	assert.Equal(t, "S", first.Sizes[0].Name)
	assert.Equal(t, "002", first.Sizes[0].DisplayCode)

	second := out[1]
	assert.True(t, second.Prices.Base.IsZero())
	assert.Nil(t, second.Prices.Promo)
	assert.Empty(t, second.Sizes)
}

func TestToItems_PromoIsCopied(t *testing.T) {
	t.Parallel()

	src := []catalog.Item{{ProductID: "X", Prices: catalog.ItemPrices{Promo: promo("10")}}}
	out := catalog.ToItems(src)

	src[0].Prices.Promo.Value = src[0].Prices.Promo.Value.Add(src[0].Prices.Promo.Value)
	assert.Equal(t, "10", out[0].Prices.Promo.String())
}
