// Package offer evaluates whether a tracked product is currently on offer
// in one or more catalog pages. It has no I/O and no logging.
package offer

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one entry of a catalog listing page.
type Item struct {
	ProductID string
	Name      string
	Prices    Prices
	Sizes     []Size
}

// Prices is the price block of an Item. Promo is nil when no promotion runs.
type Prices struct {
	Base      decimal.Decimal
	Promo     *decimal.Decimal
	DualPrice bool
}

// Size is an available size of an Item.
type Size struct {
	Name        string
	DisplayCode string
}

// Target identifies the tracked product and the sizes worth alerting on.
// A size label matches either a size's Name or its DisplayCode.
type Target struct {
	ProductID string
	URL       string

	sizes map[string]struct{}
}

// NewTarget builds an immutable Target. Blank size labels are ignored.
func NewTarget(productID string, sizes []string, url string) Target {
	t := Target{
		ProductID: strings.TrimSpace(productID),
		URL:       url,
		sizes:     make(map[string]struct{}, len(sizes)),
	}
	for _, s := range sizes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		t.sizes[s] = struct{}{}
	}
	return t
}

// SizeLabels returns the configured size labels in sorted order.
func (t Target) SizeLabels() []string {
	labels := make([]string, 0, len(t.sizes))
	for s := range t.sizes {
		labels = append(labels, s)
	}
	slices.Sort(labels)
	return labels
}

func (t Target) wantsSize(s Size) bool {
	if _, ok := t.sizes[s.Name]; ok && s.Name != "" {
		return true
	}
	_, ok := t.sizes[s.DisplayCode]
	return ok && s.DisplayCode != ""
}

// Status is the offer state of the tracked product derived from one item.
type Status struct {
	ProductID     string
	Name          string
	BasePrice     decimal.Decimal
	PromoPrice    *decimal.Decimal
	PromoActive   bool
	DualPrice     bool
	MatchingSizes []string
}

// Qualifies reports whether the status is an offer: a promotion is active
// and at least one target size is available. The dual-price flag does not
// take part in the rule.
func (s Status) Qualifies() bool {
	return s.PromoActive && len(s.MatchingSizes) > 0
}

// Evaluate scans items for the target product. The second return value is
// false when no item carries the target's product identifier.
//
// A product may appear in several items (one per colour group). The first
// qualifying item wins; otherwise the first matching item is reported.
func Evaluate(items []Item, target Target) (Status, bool) {
	sc := NewScanner(target)
	sc.Observe(items)
	return sc.Result()
}

// Scanner accumulates an evaluation across catalog pages.
type Scanner struct {
	target    Target
	status    Status
	found     bool
	qualified bool
}

// NewScanner creates a Scanner for target.
func NewScanner(target Target) *Scanner {
	return &Scanner{target: target}
}

// Observe evaluates one page of items. It returns true once a qualifying
// item has been seen, after which further pages cannot change the result.
func (sc *Scanner) Observe(items []Item) bool {
	if sc.qualified {
		return true
	}
	for i := range items {
		if items[i].ProductID != sc.target.ProductID {
			continue
		}
		st := statusOf(&items[i], sc.target)
		if st.Qualifies() {
			sc.status = st
			sc.found = true
			sc.qualified = true
			return true
		}
		if !sc.found {
			sc.status = st
			sc.found = true
		}
	}
	return false
}

// Result returns the accumulated status and whether the product was found.
func (sc *Scanner) Result() (Status, bool) {
	return sc.status, sc.found
}

func statusOf(item *Item, target Target) Status {
	st := Status{
		ProductID:   item.ProductID,
		Name:        item.Name,
		BasePrice:   item.Prices.Base,
		PromoPrice:  item.Prices.Promo,
		PromoActive: item.Prices.Promo != nil,
		DualPrice:   item.Prices.DualPrice,
	}

	seen := make(map[string]struct{})
	for _, s := range item.Sizes {
		if !target.wantsSize(s) {
			continue
		}
		label := s.Name
		if label == "" {
			label = s.DisplayCode
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		st.MatchingSizes = append(st.MatchingSizes, label)
	}
	slices.Sort(st.MatchingSizes)

	return st
}
