package offer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func testItem(id string, promo *decimal.Decimal, sizes ...Size) Item {
	return Item{
		ProductID: id,
		Name:      "AIRism Cotton T-Shirt",
		Prices: Prices{
			Base:  decimal.RequireFromString("39.90"),
			Promo: promo,
		},
		Sizes: sizes,
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	target := NewTarget("E457428-000", []string{"S", "M"}, "https://example.com/p")

	tests := []struct {
		name          string
		items         []Item
		wantFound     bool
		wantQualifies bool
		wantSizes     []string
	}{
		{
			name:      "no items",
			items:     nil,
			wantFound: false,
		},
		{
			name: "other products only",
			items: []Item{
				testItem("E000001-000", price("9.90"), Size{Name: "S"}),
			},
			wantFound: false,
		},
		{
			name: "promo absent does not qualify",
			items: []Item{
				testItem("E457428-000", nil, Size{Name: "S"}),
			},
			wantFound:     true,
			wantQualifies: false,
			wantSizes:     []string{"S"},
		},
		{
			name: "promo present with target sizes qualifies",
			items: []Item{
				testItem("E457428-000", price("29.99"), Size{Name: "M"}, Size{Name: "S"}),
			},
			wantFound:     true,
			wantQualifies: true,
			wantSizes:     []string{"M", "S"},
		},
		{
			name: "promo present without target sizes does not qualify",
			items: []Item{
				testItem("E457428-000", price("29.99"), Size{Name: "XL"}, Size{Name: "XXL"}),
			},
			wantFound:     true,
			wantQualifies: false,
		},
		{
			name: "size matched by display code",
			items: []Item{
				testItem("E457428-000", price("19.90"), Size{Name: "Medium", DisplayCode: "M"}),
			},
			wantFound:     true,
			wantQualifies: true,
			wantSizes:     []string{"Medium"},
		},
		{
			name: "size with only display code reports the code",
			items: []Item{
				testItem("E457428-000", price("19.90"), Size{DisplayCode: "S"}),
			},
			wantFound:     true,
			wantQualifies: true,
			wantSizes:     []string{"S"},
		},
		{
			name: "second item of same product qualifies",
			items: []Item{
				testItem("E457428-000", nil, Size{Name: "S"}),
				testItem("E457428-000", price("24.90"), Size{Name: "M"}),
			},
			wantFound:     true,
			wantQualifies: true,
			wantSizes:     []string{"M"},
		},
		{
			name: "duplicate sizes reported once",
			items: []Item{
				testItem("E457428-000", price("24.90"), Size{Name: "S"}, Size{Name: "S", DisplayCode: "S"}),
			},
			wantFound:     true,
			wantQualifies: true,
			wantSizes:     []string{"S"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st, found := Evaluate(tt.items, target)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantQualifies, st.Qualifies())
			if tt.wantSizes != nil {
				assert.Equal(t, tt.wantSizes, st.MatchingSizes)
			}
		})
	}
}

func TestEvaluate_DualPriceIgnored(t *testing.T) {
	t.Parallel()

	target := NewTarget("E457428-000", []string{"S"}, "")
	item := testItem("E457428-000", price("29.99"), Size{Name: "S"})
	item.Prices.DualPrice = false

	st, found := Evaluate([]Item{item}, target)
	require.True(t, found)
	assert.False(t, st.DualPrice)
	assert.True(t, st.Qualifies())
}

func TestEvaluate_CarriesPrices(t *testing.T) {
	t.Parallel()

	target := NewTarget("E457428-000", []string{"S"}, "")
	st, found := Evaluate([]Item{testItem("E457428-000", price("29.99"), Size{Name: "S"})}, target)
	require.True(t, found)

	assert.Equal(t, "AIRism Cotton T-Shirt", st.Name)
	assert.Equal(t, "39.9", st.BasePrice.String())
	require.NotNil(t, st.PromoPrice)
	assert.Equal(t, "29.99", st.PromoPrice.String())
}

func TestStatus_Qualifies(t *testing.T) {
	t.Parallel()

	// Without a promotion no size set qualifies.
	for _, sizes := range [][]string{nil, {"S"}, {"S", "M", "L"}} {
		assert.False(t, Status{PromoActive: false, MatchingSizes: sizes}.Qualifies())
	}

	// Without matching sizes no promotion qualifies.
	for _, dual := range []bool{false, true} {
		assert.False(t, Status{PromoActive: true, DualPrice: dual}.Qualifies())
	}

	assert.True(t, Status{PromoActive: true, MatchingSizes: []string{"S"}}.Qualifies())
}

func TestScanner_AcrossPages(t *testing.T) {
	t.Parallel()

	target := NewTarget("E457428-000", []string{"S", "M"}, "")
	page1 := []Item{
		testItem("E000001-000", price("9.90"), Size{Name: "S"}),
		testItem("E000002-000", nil, Size{Name: "M"}),
	}
	page2 := []Item{
		testItem("E457428-000", price("29.99"), Size{Name: "M"}, Size{Name: "S"}),
	}

	sc := NewScanner(target)
	assert.False(t, sc.Observe(page1))

	_, found := sc.Result()
	assert.False(t, found)

	assert.True(t, sc.Observe(page2))

	st, found := sc.Result()
	require.True(t, found)
	assert.True(t, st.Qualifies())
	assert.Equal(t, []string{"M", "S"}, st.MatchingSizes)
}

func TestScanner_KeepsFirstNonQualifyingMatch(t *testing.T) {
	t.Parallel()

	target := NewTarget("E457428-000", []string{"S"}, "")
	first := testItem("E457428-000", nil, Size{Name: "S"})
	first.Name = "first"
	second := testItem("E457428-000", nil, Size{Name: "L"})
	second.Name = "second"

	sc := NewScanner(target)
	sc.Observe([]Item{first})
	sc.Observe([]Item{second})

	st, found := sc.Result()
	require.True(t, found)
	assert.Equal(t, "first", st.Name)
	assert.False(t, st.Qualifies())
}

func TestScanner_StopsAfterQualifying(t *testing.T) {
	t.Parallel()

	target := NewTarget("E457428-000", []string{"S"}, "")
	sc := NewScanner(target)
	require.True(t, sc.Observe([]Item{testItem("E457428-000", price("10.00"), Size{Name: "S"})}))

	later := testItem("E457428-000", price("5.00"), Size{Name: "S"})
	later.Name = "later"
	assert.True(t, sc.Observe([]Item{later}))

	st, _ := sc.Result()
	assert.NotEqual(t, "later", st.Name)
}

func TestNewTarget(t *testing.T) {
	t.Parallel()

	target := NewTarget(" E457428-000 ", []string{"M", " S ", "", "  "}, "https://example.com")
	assert.Equal(t, "E457428-000", target.ProductID)
	assert.Equal(t, []string{"M", "S"}, target.SizeLabels())

	// Blank labels must not match sizes with blank fields.
	st, found := Evaluate([]Item{testItem("E457428-000", price("1.00"), Size{Name: "XL"})}, target)
	require.True(t, found)
	assert.Empty(t, st.MatchingSizes)
}
