package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// HTTPSource fetches currency rates against TRY from an external provider
// over HTTP. The provider returns JSON of the form
//
//	{"base": "TRY", "rates": {"EUR": "47.85", "USD": "41.20"}}
//
// Rate values may be JSON numbers or strings; both parse into decimals
// without a float detour.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates a rate source backed by the provider at baseURL.
func NewHTTPSource(baseURL string) portssvc.RateSource {
	return &HTTPSource{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type ratesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]json.RawMessage `json:"rates"`
}

// FetchRates retrieves the current rates of the supported foreign currencies
// against TRY. Currencies the provider reports but the ledger does not support
// are ignored; a missing supported currency is an error so a partial provider
// response never replaces a complete snapshot.
func (s *HTTPSource) FetchRates(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rate provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if parsed.Base != "" && parsed.Base != string(domain.TRY) {
		return nil, fmt.Errorf("rate provider base currency %q is not %s", parsed.Base, domain.TRY)
	}

	rates := make(map[domain.CurrencyCode]decimal.Decimal)
	for _, code := range domain.SupportedCurrencies {
		if code == domain.TRY {
			continue
		}
		raw, ok := parsed.Rates[string(code)]
		if !ok {
			return nil, fmt.Errorf("rate provider response is missing %s", code)
		}
		rate, err := parseRate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("rate provider returned non-positive rate for %s", code)
		}
		rates[code] = rate
	}
	return rates, nil
}

func parseRate(raw json.RawMessage) (decimal.Decimal, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return decimal.NewFromString(asString)
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(asNumber.String())
}
