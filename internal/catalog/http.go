package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/offer-tracker/internal/metrics"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultPageLimit = 36
	defaultUserAgent = "Mozilla/5.0"
)

// HTTPClient implements Client against the catalog's JSON listing endpoint.
type HTTPClient struct {
	baseURL string
	params  map[string]string
	headers map[string]string
	client  *http.Client
	limiter *rate.Limiter
}

// HTTPOption configures the HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		c.client = hc
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) {
		c.client = &http.Client{Timeout: d}
	}
}

// WithParams adds query parameters sent with every page request. They
// override parameters already present in the base URL.
func WithParams(p map[string]string) HTTPOption {
	return func(c *HTTPClient) {
		for k, v := range p {
			c.params[k] = v
		}
	}
}

// WithHeaders adds request headers sent with every page request.
func WithHeaders(h map[string]string) HTTPOption {
	return func(c *HTTPClient) {
		for k, v := range h {
			c.headers[k] = v
		}
	}
}

// WithRateLimit spaces page requests to at most perSecond, with the given
// burst. A zero rate disables limiting.
func WithRateLimit(perSecond float64, burst int) HTTPOption {
	return func(c *HTTPClient) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// NewHTTPClient creates a catalog client for the listing endpoint at baseURL.
func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		params:  map[string]string{},
		headers: map[string]string{
			"User-Agent": defaultUserAgent,
			"Accept":     "application/json",
		},
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPage implements Client.FetchPage.
func (c *HTTPClient) FetchPage(ctx context.Context, req PageRequest) (*Page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	u, err := c.buildPageURL(req)
	if err != nil {
		metrics.CatalogErrorsTotal.WithLabelValues("request").Inc()
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		metrics.CatalogErrorsTotal.WithLabelValues("request").Inc()
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	metrics.CatalogRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogErrorsTotal.WithLabelValues("transport").Inc()
		return nil, fmt.Errorf("executing catalog request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.CatalogErrorsTotal.WithLabelValues("transport").Inc()
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.CatalogErrorsTotal.WithLabelValues("status").Inc()
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, truncate(body, 300))
	}

	items, err := decodeItems(body)
	if err != nil {
		metrics.CatalogErrorsTotal.WithLabelValues("malformed").Inc()
		return nil, err
	}

	metrics.CatalogPagesTotal.Inc()

	return &Page{
		Items:  items,
		Offset: req.Offset,
		Limit:  req.Limit,
	}, nil
}

func decodeItems(body []byte) ([]Item, error) {
	var lr listingResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("%w: parsing body: %w", ErrMalformedResponse, err)
	}
	if lr.Result == nil {
		return nil, fmt.Errorf("%w: missing result", ErrMalformedResponse)
	}
	if lr.Result.Items == nil {
		return nil, fmt.Errorf("%w: missing result.items", ErrMalformedResponse)
	}
	return *lr.Result.Items, nil
}

func (c *HTTPClient) buildPageURL(req PageRequest) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing catalog URL: %w", err)
	}

	params := u.Query()
	for k, v := range c.params {
		params.Set(k, v)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	params.Set("offset", strconv.Itoa(max(req.Offset, 0)))
	params.Set("limit", strconv.Itoa(limit))

	u.RawQuery = params.Encode()
	return u.String(), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
