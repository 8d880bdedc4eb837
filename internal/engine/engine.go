package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/donaldgifford/offer-tracker/internal/catalog"
	"github.com/donaldgifford/offer-tracker/internal/metrics"
	"github.com/donaldgifford/offer-tracker/internal/notify"
	"github.com/donaldgifford/offer-tracker/internal/state"
	"github.com/donaldgifford/offer-tracker/pkg/offer"
)

// Outcome labels a finished tick.
type Outcome string

const (
	OutcomeIdle         Outcome = "idle"
	OutcomeNotified     Outcome = "notified"
	OutcomeSuppressed   Outcome = "suppressed"
	OutcomeReset        Outcome = "reset"
	// OutcomeInconclusive is a scan cut short by the page cap without a
	// qualifying match. The record is left as it was.
	OutcomeInconclusive Outcome = "inconclusive"
	OutcomeNotifyFailed Outcome = "notify_failed"
	OutcomeError        Outcome = "error"
)

// TickResult describes one poll of the catalog.
type TickResult struct {
	Outcome      Outcome
	Found        bool
	Qualifies    bool
	Status       offer.Status
	PagesFetched int
	ItemsSeen    int
	StoppedAt    string
	StartedAt    time.Time
	Duration     time.Duration
	Err          string
}

// Engine runs the poll cycle for one tracked product: scan the catalog,
// evaluate the offer, then notify, suppress or reset.
type Engine struct {
	paginator *catalog.Paginator
	store     state.Store
	notifier  notify.Notifier
	target    offer.Target
	log       *slog.Logger
	currency  string
	now       func() time.Time

	// tickMu serialises ticks and resets.
	tickMu sync.Mutex

	lastMu sync.RWMutex
	last   *TickResult
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	p *catalog.Paginator,
	s state.Store,
	n notify.Notifier,
	target offer.Target,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		paginator: p,
		store:     s,
		notifier:  n,
		target:    target,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithCurrency sets the currency suffix used in notifications.
func WithCurrency(c string) EngineOption {
	return func(e *Engine) {
		e.currency = c
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// Target returns the tracked product.
func (eng *Engine) Target() offer.Target {
	return eng.target
}

// LastResult returns the most recent tick result, or nil before the first tick.
func (eng *Engine) LastResult() *TickResult {
	eng.lastMu.RLock()
	defer eng.lastMu.RUnlock()
	if eng.last == nil {
		return nil
	}
	r := *eng.last
	r.Status.MatchingSizes = slices.Clone(r.Status.MatchingSizes)
	return &r
}

// RunTick performs one poll. The returned result is never nil; the error is
// set when the tick was aborted or the notification could not be delivered
// or recorded. A failed tick leaves the notification record unchanged.
func (eng *Engine) RunTick(ctx context.Context) (*TickResult, error) {
	eng.tickMu.Lock()
	defer eng.tickMu.Unlock()

	start := eng.now()
	res := &TickResult{StartedAt: start}

	err := eng.tick(ctx, res)
	if err != nil {
		res.Err = err.Error()
	}

	res.Duration = eng.now().Sub(start)
	metrics.TickDuration.Observe(res.Duration.Seconds())
	metrics.TicksTotal.WithLabelValues(string(res.Outcome)).Inc()
	metrics.LastTickTimestamp.Set(float64(start.Unix()))

	eng.lastMu.Lock()
	eng.last = res
	eng.lastMu.Unlock()

	return res, err
}

func (eng *Engine) tick(ctx context.Context, res *TickResult) error {
	id := eng.target.ProductID

	scan, err := eng.paginator.Paginate(ctx, eng.target)
	if err != nil {
		res.Outcome = OutcomeError
		eng.log.Error("catalog scan failed", "product_id", id, "error", err)
		return fmt.Errorf("scanning catalog: %w", err)
	}

	res.Found = scan.Found
	res.Status = scan.Status
	res.Qualifies = scan.Found && scan.Status.Qualifies()
	res.PagesFetched = scan.PagesUsed
	res.ItemsSeen = scan.ItemsSeen
	res.StoppedAt = scan.StoppedAt

	if res.Qualifies {
		metrics.OfferActive.Set(1)
	} else {
		metrics.OfferActive.Set(0)
	}

	notified, err := eng.store.IsNotified(ctx, id)
	if err != nil {
		res.Outcome = OutcomeError
		metrics.StateErrorsTotal.Inc()
		eng.log.Error("reading notification state failed", "product_id", id, "error", err)
		return fmt.Errorf("reading notification state: %w", err)
	}

	action := Decide(res.Qualifies, notified)
	if action == ActionReset && scan.StoppedAt == catalog.StopMaxPages {
		// Pages past the cap were never seen, so the offer is not
		// confirmed gone.
		res.Outcome = OutcomeInconclusive
		eng.log.Warn("page cap reached without the offer, keeping notification state",
			"product_id", id,
			"found", res.Found,
			"pages", res.PagesFetched,
		)
		return nil
	}
	eng.log.Debug("tick evaluated",
		"product_id", id,
		"found", res.Found,
		"qualifies", res.Qualifies,
		"notified", notified,
		"action", action.String(),
		"pages", res.PagesFetched,
	)

	switch action {
	case ActionNotify:
		return eng.notify(ctx, res)
	case ActionSuppress:
		res.Outcome = OutcomeSuppressed
		eng.log.Info("offer still active, already notified", "product_id", id)
	case ActionReset:
		if err := eng.store.ResetAll(ctx); err != nil {
			res.Outcome = OutcomeError
			metrics.StateErrorsTotal.Inc()
			eng.log.Error("resetting notification state failed", "product_id", id, "error", err)
			return fmt.Errorf("resetting notification state: %w", err)
		}
		res.Outcome = OutcomeReset
		metrics.StateResetsTotal.Inc()
		eng.log.Info("offer gone, notification state reset", "product_id", id, "found", res.Found)
	default:
		res.Outcome = OutcomeIdle
		eng.log.Info("no active offer", "product_id", id, "found", res.Found)
	}

	return nil
}

func (eng *Engine) notify(ctx context.Context, res *TickResult) error {
	id := eng.target.ProductID
	payload := eng.payload(&res.Status)

	start := time.Now()
	err := eng.notifier.SendOffer(ctx, payload)
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		res.Outcome = OutcomeNotifyFailed
		metrics.NotificationFailuresTotal.Inc()
		eng.log.Error("sending offer notification failed",
			"product_id", id,
			"error", err,
		)
		return fmt.Errorf("sending notification: %w", err)
	}
	metrics.NotificationsSentTotal.Inc()

	if err := eng.store.MarkNotified(ctx, id); err != nil {
		// The message is out; the next tick may announce it again.
		res.Outcome = OutcomeNotified
		metrics.StateErrorsTotal.Inc()
		eng.log.Error("recording notification failed", "product_id", id, "error", err)
		return fmt.Errorf("recording notification: %w", err)
	}

	res.Outcome = OutcomeNotified
	eng.log.Info("offer notified",
		"product_id", id,
		"name", payload.Name,
		"promo_price", payload.PromoPrice,
		"sizes", payload.Sizes,
	)
	return nil
}

func (eng *Engine) payload(st *offer.Status) *notify.OfferPayload {
	p := &notify.OfferPayload{
		ProductID: st.ProductID,
		Name:      st.Name,
		URL:       eng.target.URL,
		Currency:  eng.currency,
		Sizes:     slices.Clone(st.MatchingSizes),
	}
	if p.Name == "" {
		p.Name = st.ProductID
	}
	if st.PromoPrice != nil {
		p.PromoPrice = st.PromoPrice.StringFixed(2)
	}
	if !st.BasePrice.IsZero() {
		p.BasePrice = st.BasePrice.StringFixed(2)
	}
	return p
}

// ResetState clears the notification record, waiting for a running tick to
// finish first.
func (eng *Engine) ResetState(ctx context.Context) error {
	eng.tickMu.Lock()
	defer eng.tickMu.Unlock()

	if err := eng.store.ResetAll(ctx); err != nil {
		metrics.StateErrorsTotal.Inc()
		return fmt.Errorf("resetting notification state: %w", err)
	}
	metrics.StateResetsTotal.Inc()
	eng.log.Info("notification state reset on request")
	return nil
}

// NotifiedIDs lists the product ids currently recorded as notified.
func (eng *Engine) NotifiedIDs(ctx context.Context) ([]string, error) {
	ids, err := eng.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing notification state: %w", err)
	}
	return ids, nil
}
