package merchant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"produce-kart/internal/model"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Notifier pushes product changes to the merchant-sync function in the
// background. Failures are logged and never reach the caller.
type Notifier struct {
	client *http.Client
	url    string
	apiKey string
	logger zerolog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewNotifier creates a Notifier posting to url.
func NewNotifier(url, apiKey string, timeout time.Duration, logger zerolog.Logger) *Notifier {
	return &Notifier{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		url:    url,
		apiKey: apiKey,
		logger: logger.With().Str("component", "merchant-notifier").Logger(),
	}
}

// ProductChanged queues an upsert of p, or a delete when p is nil.
func (n *Notifier) ProductChanged(productID string, p *model.Product) {
	req := SyncRequest{ProductID: productID}
	if p != nil {
		req.Data = ListingFromProduct(p)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		n.logger.Warn().Str("product_id", productID).Msg("notifier closed, dropping merchant sync")
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.post(context.Background(), req); err != nil {
			n.logger.Error().Err(err).Str("product_id", productID).Msg("merchant sync error")
			return
		}
		n.logger.Info().Str("product_id", productID).Bool("delete", req.Data == nil).Msg("synced to merchant")
	}()
}

// Close stops accepting notifications and waits for in-flight ones.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	n.wg.Wait()
}

func (n *Notifier) post(ctx context.Context, body SyncRequest) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode sync request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("X-API-Key", n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post sync request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return fmt.Errorf("merchant sync returned %d: %s", resp.StatusCode, errBody.Error)
	}
	return nil
}
