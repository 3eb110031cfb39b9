package usecases

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"bankflow.backend/internal/config"
	domainerrors "bankflow.backend/internal/domain/errors"
	"bankflow.backend/internal/infrastructure/external"
	"bankflow.backend/pkg/logger"
	"bankflow.backend/pkg/redis"
)

const (
	ratesCacheKey = "currency:rates"
	ratesCacheTTL = time.Hour
)

// ConvertInput converts an amount from the bank currency to a quoted one
type ConvertInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	To     string          `json:"to" binding:"required,len=3"`
}

// ConvertResult is the outcome of a currency conversion
type ConvertResult struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      float64         `json:"rate"`
	Converted decimal.Decimal `json:"converted"`
}

// BankInfo is the static institution contact block
type BankInfo struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Country  string `json:"country"`
	Support  string `json:"support"`
}

// CurrencyUsecase serves exchange rates fetched from the public currency
// API, with a short Redis cache in front of it.
type CurrencyUsecase struct {
	client *external.CurrencyClient
	bank   config.BankConfig
}

// NewCurrencyUsecase creates a new currency usecase
func NewCurrencyUsecase(client *external.CurrencyClient, bank config.BankConfig) *CurrencyUsecase {
	return &CurrencyUsecase{client: client, bank: bank}
}

// GetRates returns current quotes against the bank currency
func (u *CurrencyUsecase) GetRates(ctx context.Context) (*external.ExchangeRates, error) {
	if redis.GetClient() != nil {
		if cached, err := redis.Get(ctx, ratesCacheKey); err == nil {
			var rates external.ExchangeRates
			if err := json.Unmarshal([]byte(cached), &rates); err == nil {
				return &rates, nil
			}
		}
	}

	rates, err := u.client.FetchRates(ctx)
	if err != nil {
		return nil, err
	}

	if redis.GetClient() != nil {
		if raw, err := json.Marshal(rates); err == nil {
			if err := redis.Set(ctx, ratesCacheKey, string(raw), ratesCacheTTL); err != nil {
				logger.Warn(ctx, "failed to cache exchange rates", zap.Error(err))
			}
		}
	}

	return rates, nil
}

// Convert converts an amount from the bank currency to a supported one
func (u *CurrencyUsecase) Convert(ctx context.Context, input *ConvertInput) (*ConvertResult, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	target := strings.ToLower(input.To)
	if _, ok := external.SupportedCurrencies[target]; !ok {
		return nil, domainerrors.NewError("unsupported currency", domainerrors.ErrInvalidInput)
	}

	rates, err := u.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	for _, rate := range rates.Rates {
		if rate.Code == target {
			converted := input.Amount.Mul(decimal.NewFromFloat(rate.Rate)).Round(3)
			return &ConvertResult{
				Amount:    input.Amount,
				From:      u.bank.Currency,
				To:        strings.ToUpper(target),
				Rate:      rate.Rate,
				Converted: converted,
			}, nil
		}
	}

	return nil, domainerrors.NewError("rate unavailable for currency", domainerrors.ErrExternalService)
}

// GetBankInfo returns the static institution details
func (u *CurrencyUsecase) GetBankInfo() *BankInfo {
	return &BankInfo{
		Name:     u.bank.Name,
		Currency: u.bank.Currency,
		Country:  "Tunisia",
		Support:  "support@bankflow.tn",
	}
}
