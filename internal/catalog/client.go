// Package catalog provides a client for the retailer's paginated product
// listing endpoint, abstracted behind interfaces for testability.
package catalog

import (
	"context"
	"errors"
)

var (
	// ErrUnexpectedStatus is returned when the catalog answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected catalog status")

	// ErrMalformedResponse is returned when the body lacks result.items.
	ErrMalformedResponse = errors.New("malformed catalog response")
)

// PageRequest selects one page of the listing.
type PageRequest struct {
	Offset int
	Limit  int
}

// Page holds the items of one listing page.
type Page struct {
	Items  []Item
	Offset int
	Limit  int
}

// Client defines the interface for fetching catalog pages.
type Client interface {
	FetchPage(ctx context.Context, req PageRequest) (*Page, error)
}
