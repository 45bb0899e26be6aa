package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	goCache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/ardentinvoicing/ardent/internal/config"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/httpclient"
	"github.com/ardentinvoicing/ardent/internal/logger"
)

// Service converts between currencies with a TTL cache in front of the
// third-party rate API. Stale cached values are served when the API is
// unreachable; same-currency pairs always convert at 1.
type Service interface {
	GetRate(ctx context.Context, from, to string) (decimal.Decimal, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)

	// Refresh warms the cache for the given currency pairs; used by the
	// scheduled refresh job. Returns refreshed and failed counts.
	Refresh(ctx context.Context, pairs [][2]string) (int, int)
}

// cachedRate keeps its own fetch timestamp so entries never expire out of
// the store: a past-TTL entry is the stale fallback for API outages.
type cachedRate struct {
	Rate      decimal.Decimal
	FetchedAt time.Time
}

type service struct {
	cfg    *config.ExchangeRateConfig
	http   httpclient.Client
	cache  *goCache.Cache
	logger *logger.Logger
}

// NewService creates a new exchange rate service
func NewService(cfg *config.Configuration, http httpclient.Client, log *logger.Logger) Service {
	return &service{
		cfg:    &cfg.ExchangeRate,
		cache:  goCache.New(goCache.NoExpiration, 0),
		http:   http,
		logger: log,
	}
}

func cacheKey(from, to string) string {
	return fmt.Sprintf("%s_%s", strings.ToUpper(from), strings.ToUpper(to))
}

func (s *service) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	key := cacheKey(from, to)
	var stale *cachedRate
	if cached, found := s.cache.Get(key); found {
		entry := cached.(cachedRate)
		if time.Since(entry.FetchedAt) < s.cfg.TTL() {
			return entry.Rate, nil
		}
		stale = &entry
	}

	rate, err := s.fetchRate(ctx, from, to)
	if err != nil {
		if stale != nil {
			s.logger.Warnw("rate API unreachable, serving stale rate",
				"pair", key,
				"fetched_at", stale.FetchedAt,
				"error", err)
			return stale.Rate, nil
		}
		return decimal.Zero, err
	}

	s.cache.Set(key, cachedRate{Rate: rate, FetchedAt: time.Now().UTC()}, goCache.NoExpiration)
	return rate, nil
}

func (s *service) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	rate, err := s.GetRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

func (s *service) Refresh(ctx context.Context, pairs [][2]string) (refreshed int, failed int) {
	for _, pair := range pairs {
		from, to := pair[0], pair[1]
		if strings.EqualFold(from, to) {
			continue
		}
		rate, err := s.fetchRate(ctx, from, to)
		if err != nil {
			s.logger.Errorw("failed to refresh exchange rate",
				"from", from,
				"to", to,
				"error", err)
			failed++
			continue
		}
		s.cache.Set(cacheKey(from, to), cachedRate{Rate: rate, FetchedAt: time.Now().UTC()}, goCache.NoExpiration)
		refreshed++
	}
	return refreshed, failed
}

// rateResponse is the shape of the third-party rate API payload
type rateResponse struct {
	Result          string                 `json:"result"`
	BaseCode        string                 `json:"base_code"`
	ConversionRates map[string]json.Number `json:"conversion_rates"`
}

func (s *service) fetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", s.cfg.BaseURL, s.cfg.APIKey, from)
	resp, err := s.http.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    url,
	})
	if err != nil {
		return decimal.Zero, err
	}
	if !resp.IsSuccess() {
		return decimal.Zero, ierr.NewError("rate API request failed").
			WithHintf("rate API responded %d", resp.StatusCode).
			Mark(ierr.ErrHTTPClient)
	}

	var parsed rateResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("rate API returned a malformed payload").
			Mark(ierr.ErrHTTPClient)
	}

	raw, ok := parsed.ConversionRates[to]
	if !ok {
		return decimal.Zero, ierr.NewError("unknown currency pair").
			WithHintf("rate API has no rate for %s_%s", from, to).
			Mark(ierr.ErrNotFound)
	}

	rate, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("rate API returned a non-numeric rate").
			Mark(ierr.ErrHTTPClient)
	}
	return rate, nil
}
