package external_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/infrastructure/external"
)

func serveRates(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/currencies/tnd.json", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrencyClient_FetchRates(t *testing.T) {
	srv := serveRates(t, http.StatusOK,
		`{"date":"2026-08-30","tnd":{"eur":0.29,"usd":0.32,"gbp":0.25,"mad":3.12,"sar":1.20,"btc":0.0000021}}`)

	client := external.NewCurrencyClient(srv.URL, "TND", 5*time.Second)
	rates, err := client.FetchRates(context.Background())
	require.NoError(t, err)

	require.Equal(t, "TND", rates.Base)
	require.False(t, rates.FetchedAt.IsZero())

	// Unsupported codes are dropped, the rest come back sorted.
	codes := make([]string, 0, len(rates.Rates))
	for _, rate := range rates.Rates {
		codes = append(codes, rate.Code)
	}
	require.Equal(t, []string{"eur", "gbp", "mad", "sar", "usd"}, codes)
	require.Equal(t, "Euro", rates.Rates[0].Name)
	require.Equal(t, 0.29, rates.Rates[0].Rate)
}

func TestCurrencyClient_PartialQuoteSet(t *testing.T) {
	srv := serveRates(t, http.StatusOK, `{"date":"2026-08-30","tnd":{"eur":0.29}}`)

	client := external.NewCurrencyClient(srv.URL, "TND", 5*time.Second)
	rates, err := client.FetchRates(context.Background())
	require.NoError(t, err)
	require.Len(t, rates.Rates, 1)
	require.Equal(t, "eur", rates.Rates[0].Code)
}

func TestCurrencyClient_UpstreamError(t *testing.T) {
	srv := serveRates(t, http.StatusServiceUnavailable, "upstream down")

	client := external.NewCurrencyClient(srv.URL, "TND", 5*time.Second)
	_, err := client.FetchRates(context.Background())
	require.ErrorIs(t, err, domainerrors.ErrExternalService)
}

func TestCurrencyClient_MalformedBody(t *testing.T) {
	srv := serveRates(t, http.StatusOK, `{"tnd": not-json`)

	client := external.NewCurrencyClient(srv.URL, "TND", 5*time.Second)
	_, err := client.FetchRates(context.Background())
	require.ErrorIs(t, err, domainerrors.ErrExternalService)
}

func TestCurrencyClient_Unreachable(t *testing.T) {
	srv := serveRates(t, http.StatusOK, "{}")
	srv.Close()

	client := external.NewCurrencyClient(srv.URL, "TND", time.Second)
	_, err := client.FetchRates(context.Background())
	require.ErrorIs(t, err, domainerrors.ErrExternalService)
}
