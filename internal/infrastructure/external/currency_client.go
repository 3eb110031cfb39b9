package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	domainerrors "bankflow.backend/internal/domain/errors"
)

// SupportedCurrencies are the display currencies quoted against the bank's
// base currency.
var SupportedCurrencies = map[string]string{
	"eur": "Euro",
	"usd": "US Dollar",
	"gbp": "British Pound",
	"mad": "Moroccan Dirham",
	"sar": "Saudi Riyal",
}

// CurrencyRate is a single quote against the base currency
type CurrencyRate struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// ExchangeRates is the full quote set fetched from the upstream API
type ExchangeRates struct {
	Base      string         `json:"base"`
	Rates     []CurrencyRate `json:"rates"`
	FetchedAt time.Time      `json:"fetchedAt"`
}

// CurrencyClient fetches exchange rates from the public currency API.
// It is read-only and best-effort: failures surface as ErrExternalService.
type CurrencyClient struct {
	baseURL    string
	base       string
	httpClient *http.Client
}

// NewCurrencyClient creates a new currency API client
func NewCurrencyClient(baseURL, baseCurrency string, timeout time.Duration) *CurrencyClient {
	return &CurrencyClient{
		baseURL:    baseURL,
		base:       baseCurrency,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchRates fetches current rates for the supported currencies
func (c *CurrencyClient) FetchRates(ctx context.Context) (*ExchangeRates, error) {
	url := fmt.Sprintf("%s/currencies/%s.json", c.baseURL, strings.ToLower(c.base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrExternalService, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: currency API returned %d", domainerrors.ErrExternalService, resp.StatusCode)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrExternalService, err)
	}

	var quotes map[string]float64
	if raw, ok := payload[strings.ToLower(c.base)]; ok {
		if err := json.Unmarshal(raw, &quotes); err != nil {
			return nil, fmt.Errorf("%w: %v", domainerrors.ErrExternalService, err)
		}
	}

	rates := make([]CurrencyRate, 0, len(SupportedCurrencies))
	for code, name := range SupportedCurrencies {
		if rate, ok := quotes[code]; ok {
			rates = append(rates, CurrencyRate{Code: code, Name: name, Rate: rate})
		}
	}

	sort.Slice(rates, func(i, j int) bool { return rates[i].Code < rates[j].Code })

	return &ExchangeRates{
		Base:      c.base,
		Rates:     rates,
		FetchedAt: time.Now(),
	}, nil
}
