package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/blockpulse/blockpulse-backend/internal/model"
)

const defaultPriceRequestTimeout = 10 * time.Second

// HTTPPriceSource fetches the bitcoin spot price from a CoinGecko-compatible
// simple price endpoint.
type HTTPPriceSource struct {
	client  *http.Client
	baseURL string
}

// NewHTTPPriceSource builds the source against baseURL, e.g.
// https://api.coingecko.com/api/v3.
func NewHTTPPriceSource(baseURL string, client *http.Client) *HTTPPriceSource {
	if client == nil {
		client = &http.Client{Timeout: defaultPriceRequestTimeout}
	}
	return &HTTPPriceSource{
		client:  client,
		baseURL: baseURL,
	}
}

// LatestPrice returns the current spot price for the given fiat currency.
func (s *HTTPPriceSource) LatestPrice(ctx context.Context, currency string) (model.BTCPricePoint, error) {
	var point model.BTCPricePoint

	url := fmt.Sprintf("%s/simple/price?ids=bitcoin&vs_currencies=%s", s.baseURL, currency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return point, fmt.Errorf("build price request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return point, fmt.Errorf("fetch price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return point, fmt.Errorf("price endpoint returned %s", resp.Status)
	}

	// {"bitcoin":{"usd":64123.5}}
	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return point, fmt.Errorf("decode price response: %w", err)
	}

	price, ok := payload["bitcoin"][currency]
	if !ok {
		return point, fmt.Errorf("price for currency %q missing in response", currency)
	}

	return model.BTCPricePoint{
		Timestamp: time.Now().UTC(),
		Currency:  currency,
		Price:     price,
	}, nil
}
