// Package main implements a mock retailer catalog and Telegram Bot API for
// local development. The catalog serves listing pages from a JSON fixture;
// the promotion on one product can be toggled at runtime to walk through
// the notify, suppress and reset cycle without waiting for a real sale.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

const (
	catalogPath  = "/api/commerce/v5/es/products"
	defaultLimit = 36
)

type listingResponse struct {
	Status string        `json:"status"`
	Result listingResult `json:"result"`
}

type listingResult struct {
	Items []json.RawMessage `json:"items"`
}

// catalog holds the fixture items and the promo switch for the toggled product.
type catalog struct {
	items     []json.RawMessage
	promoID   string
	promoOn   atomic.Bool
	promoItem json.RawMessage // fixture entry for promoID without the promo block
}

// sentMessages records Telegram messages so tests and humans can inspect them.
type sentMessages struct {
	mu   sync.Mutex
	msgs []map[string]string
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/catalog.json", "path to listing fixture")
	promoID := flag.String("promo-product", "E457428-000", "product whose promotion can be toggled")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cat, err := loadCatalog(*fixtureFile, *promoID)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "items", len(cat.items), "promo_product", *promoID)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock catalog server", "addr", addr,
		"telegram_endpoint", fmt.Sprintf("http://localhost:%d/bot%%s/%%s", *port))

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, cat, &sentMessages{})),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, cat *catalog, sent *sentMessages) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+catalogPath, listingHandler(logger, cat))
	mux.HandleFunc("POST /_mock/promo", promoHandler(logger, cat))
	mux.HandleFunc("POST /{bot}/getMe", getMeHandler())
	mux.HandleFunc("POST /{bot}/sendMessage", sendMessageHandler(logger, sent))
	mux.HandleFunc("GET /_mock/messages", messagesHandler(sent))
	return mux
}

func loadCatalog(path, promoID string) (*catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp listingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	cat := &catalog{items: resp.Result.Items, promoID: promoID}
	for _, raw := range cat.items {
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("parsing fixture item: %w", err)
		}
		if item["productId"] != promoID {
			continue
		}
		prices, _ := item["prices"].(map[string]any)
		if prices != nil && prices["promo"] != nil {
			cat.promoOn.Store(true)
			prices["promo"] = nil
		}
		stripped, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encoding fixture item: %w", err)
		}
		cat.promoItem = stripped
	}
	return cat, nil
}

// page returns the items in [offset, offset+limit), with the toggled
// product's promotion removed while the switch is off.
func (c *catalog) page(offset, limit int) []json.RawMessage {
	if offset >= len(c.items) {
		return []json.RawMessage{}
	}
	end := min(offset+limit, len(c.items))
	out := make([]json.RawMessage, 0, end-offset)
	for _, raw := range c.items[offset:end] {
		if !c.promoOn.Load() && c.promoItem != nil && isProduct(raw, c.promoID) {
			raw = c.promoItem
		}
		out = append(out, raw)
	}
	return out
}

func isProduct(raw json.RawMessage, id string) bool {
	var head struct {
		ProductID string `json:"productId"`
	}
	return json.Unmarshal(raw, &head) == nil && head.ProductID == id
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func queryInt(r *http.Request, key string, def, minVal int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v >= minVal {
		return v
	}
	return def
}

func listingHandler(logger *slog.Logger, cat *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset := queryInt(r, "offset", 0, 0)
		limit := queryInt(r, "limit", defaultLimit, 1)

		items := cat.page(offset, limit)

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(listingResponse{Status: "ok", Result: listingResult{Items: items}})
		logger.Info("listing", "offset", offset, "limit", limit, "returned", len(items), "promo_on", cat.promoOn.Load())
	}
}

func promoHandler(logger *slog.Logger, cat *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		on, err := strconv.ParseBool(r.URL.Query().Get("on"))
		if err != nil {
			http.Error(w, "on must be true or false", http.StatusBadRequest)
			return
		}
		cat.promoOn.Store(on)
		logger.Info("promotion toggled", "product_id", cat.promoID, "on", on)

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{"product_id": cat.promoID, "promo": on})
	}
}

func getMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": map[string]any{
				"id": 1, "is_bot": true, "first_name": "mock", "username": "mock_offer_bot",
			},
		})
	}
}

func sendMessageHandler(logger *slog.Logger, sent *sentMessages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		msg := map[string]string{
			"chat_id":    r.PostForm.Get("chat_id"),
			"text":       r.PostForm.Get("text"),
			"parse_mode": r.PostForm.Get("parse_mode"),
		}

		sent.mu.Lock()
		sent.msgs = append(sent.msgs, msg)
		id := len(sent.msgs)
		sent.mu.Unlock()

		logger.Info("telegram message", "chat_id", msg["chat_id"], "text", msg["text"])

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": map[string]any{
				"message_id": id,
				"date":       time.Now().Unix(),
				"chat":       map[string]any{"id": 1, "type": "private"},
				"text":       msg["text"],
			},
		})
	}
}

func messagesHandler(sent *sentMessages) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		sent.mu.Lock()
		msgs := append([]map[string]string{}, sent.msgs...)
		sent.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(msgs)
	}
}
