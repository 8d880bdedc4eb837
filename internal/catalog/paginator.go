package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/offer-tracker/pkg/offer"
)

const (
	defaultPageSize = 36
	defaultMaxPages = 20
)

// Stop reasons reported in PaginateResult.StoppedAt.
const (
	StopOfferFound    = "offer_found"
	StopNoMoreResults = "no_more_results"
	StopMaxPages      = "max_pages"
)

// Paginator walks the listing pages looking for the tracked product.
type Paginator struct {
	client   Client
	log      *slog.Logger
	pageSize int
	maxPages int
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithPageSize overrides the default page size.
func WithPageSize(size int) PaginatorOption {
	return func(p *Paginator) {
		p.pageSize = size
	}
}

// WithMaxPages overrides the default page cap.
func WithMaxPages(n int) PaginatorOption {
	return func(p *Paginator) {
		p.maxPages = n
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.log = l
	}
}

// NewPaginator creates a new Paginator.
func NewPaginator(client Client, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		client:   client,
		log:      slog.Default(),
		pageSize: defaultPageSize,
		maxPages: defaultMaxPages,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.pageSize <= 0 {
		p.pageSize = defaultPageSize
	}
	if p.maxPages <= 0 {
		p.maxPages = defaultMaxPages
	}
	return p
}

// PaginateResult holds the outcome of a paginated scan.
type PaginateResult struct {
	Status    offer.Status
	Found     bool
	PagesUsed int
	ItemsSeen int
	StoppedAt string // "offer_found", "no_more_results", "max_pages"
}

// Paginate fetches pages starting at offset 0, advancing by the page size,
// and stops when:
// - a qualifying item for the target is found
// - a page comes back with no items
// - the page cap is reached
// Any fetch error aborts the scan.
func (p *Paginator) Paginate(ctx context.Context, target offer.Target) (*PaginateResult, error) {
	sc := offer.NewScanner(target)
	result := &PaginateResult{}

	for page := range p.maxPages {
		req := PageRequest{
			Offset: page * p.pageSize,
			Limit:  p.pageSize,
		}

		resp, err := p.client.FetchPage(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		result.PagesUsed++

		if len(resp.Items) == 0 {
			result.StoppedAt = StopNoMoreResults
			result.Status, result.Found = sc.Result()
			return result, nil
		}

		result.ItemsSeen += len(resp.Items)

		if sc.Observe(ToItems(resp.Items)) {
			result.StoppedAt = StopOfferFound
			result.Status, result.Found = sc.Result()
			return result, nil
		}

		p.log.Debug("catalog page scanned",
			"page", page,
			"offset", req.Offset,
			"items", len(resp.Items),
		)
	}

	p.log.Warn("page cap reached before end of catalog",
		"max_pages", p.maxPages,
		"page_size", p.pageSize,
	)

	result.StoppedAt = StopMaxPages
	result.Status, result.Found = sc.Result()
	return result, nil
}
