package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/offer-tracker/internal/catalog"
	"github.com/donaldgifford/offer-tracker/internal/config"
	"github.com/donaldgifford/offer-tracker/internal/engine"
	"github.com/donaldgifford/offer-tracker/internal/notify"
	"github.com/donaldgifford/offer-tracker/internal/state"
	"github.com/donaldgifford/offer-tracker/pkg/logger"
	"github.com/donaldgifford/offer-tracker/pkg/offer"
)

// app holds the components every local command builds from the config.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	store    state.Store
	notifier notify.Notifier
	engine   *engine.Engine
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadEnvFiles(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	l := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(l)
	return l
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	n := newNotifier(cfg, log)

	p := catalog.NewPaginator(newCatalogClient(cfg),
		catalog.WithPageSize(cfg.Catalog.PageSize),
		catalog.WithMaxPages(cfg.Catalog.MaxPages),
		catalog.WithPaginatorLogger(log),
	)

	eng := engine.NewEngine(p, st, n, targetOf(cfg),
		engine.WithLogger(log),
		engine.WithCurrency(cfg.Target.Currency),
	)

	return &app{cfg: cfg, log: log, store: st, notifier: n, engine: eng}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing state store", "error", err)
	}
}

func targetOf(cfg *config.Config) offer.Target {
	return offer.NewTarget(cfg.Target.ProductID, cfg.Target.Sizes, cfg.Target.URL)
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (state.Store, error) {
	st, err := state.Open(ctx, state.Config{
		Driver: cfg.State.Driver,
		Path:   cfg.State.Path,
		DSN:    cfg.State.Database.DSN(),
	}, log)
	if err != nil {
		return nil, fmt.Errorf("opening state store: %w", err)
	}
	return st, nil
}

func newNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	nc := cfg.Notifications
	return notify.New(&notify.Config{
		Backend:           nc.Backend,
		TelegramToken:     nc.Telegram.Token,
		TelegramChatID:    nc.Telegram.ChatID,
		TelegramEndpoint:  nc.Telegram.Endpoint,
		TelegramNoPreview: !nc.Telegram.LinkPreviewEnabled(),
		DiscordWebhookURL: nc.Discord.WebhookURL,
	}, log)
}

func newCatalogClient(cfg *config.Config) *catalog.HTTPClient {
	c := cfg.Catalog
	opts := []catalog.HTTPOption{
		catalog.WithTimeout(c.Timeout),
		catalog.WithParams(c.Params),
		catalog.WithHeaders(c.Headers),
	}
	if c.RateLimit.PerSecond > 0 {
		opts = append(opts, catalog.WithRateLimit(c.RateLimit.PerSecond, c.RateLimit.Burst))
	}
	return catalog.NewHTTPClient(c.BaseURL, opts...)
}
