package exchangerate

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardentinvoicing/ardent/internal/config"
	"github.com/ardentinvoicing/ardent/internal/httpclient"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// stubRateClient serves canned conversion tables keyed by base currency
// and counts outbound calls.
type stubRateClient struct {
	rates map[string]map[string]string
	fail  bool
	calls int
}

func (c *stubRateClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	c.calls++
	if c.fail {
		return nil, fmt.Errorf("connection refused")
	}

	parts := strings.Split(req.URL, "/")
	base := parts[len(parts)-1]
	table, ok := c.rates[base]
	if !ok {
		return &httpclient.Response{StatusCode: 404, Body: []byte(`{"result":"error"}`)}, nil
	}

	pairs := make([]string, 0, len(table))
	for code, rate := range table {
		pairs = append(pairs, fmt.Sprintf("%q:%s", code, rate))
	}
	body := fmt.Sprintf(`{"result":"success","base_code":%q,"conversion_rates":{%s}}`,
		base, strings.Join(pairs, ","))
	return &httpclient.Response{StatusCode: 200, Body: []byte(body)}, nil
}

func newRateFixture(t *testing.T, ttlMinutes int, stub *stubRateClient) Service {
	t.Helper()
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{Level: types.LogLevelInfo},
		ExchangeRate: config.ExchangeRateConfig{
			BaseURL:      "https://rates.test/v6",
			APIKey:       "test-key",
			BaseCurrency: "GHS",
			TTLMinutes:   ttlMinutes,
		},
	}
	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)
	return NewService(cfg, stub, log)
}

func TestSameCurrencyConvertsAtOne(t *testing.T) {
	stub := &stubRateClient{fail: true}
	svc := newRateFixture(t, 60, stub)

	rate, err := svc.GetRate(context.Background(), "ghs", "GHS")
	assert.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
	assert.Zero(t, stub.calls)
}

func TestRateIsCachedWithinTTL(t *testing.T) {
	stub := &stubRateClient{rates: map[string]map[string]string{
		"GHS": {"USD": "0.0645"},
	}}
	svc := newRateFixture(t, 60, stub)

	first, err := svc.GetRate(context.Background(), "GHS", "USD")
	assert.NoError(t, err)
	second, err := svc.GetRate(context.Background(), "GHS", "USD")
	assert.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, stub.calls)
}

func TestStaleRateServedWhenAPIUnreachable(t *testing.T) {
	stub := &stubRateClient{rates: map[string]map[string]string{
		"USD": {"GHS": "15.5"},
	}}
	// Negative TTL makes every cached entry stale on the next read
	svc := newRateFixture(t, -1, stub)

	rate, err := svc.GetRate(context.Background(), "USD", "GHS")
	require.NoError(t, err)

	stub.fail = true
	stale, err := svc.GetRate(context.Background(), "USD", "GHS")
	assert.NoError(t, err)
	assert.True(t, rate.Equal(stale))
}

func TestRateErrorWithoutCachedFallback(t *testing.T) {
	stub := &stubRateClient{fail: true}
	svc := newRateFixture(t, 60, stub)

	_, err := svc.GetRate(context.Background(), "GHS", "USD")
	assert.Error(t, err)
}

func TestConvertRoundTripWithinTolerance(t *testing.T) {
	stub := &stubRateClient{rates: map[string]map[string]string{
		"GHS": {"USD": "0.0645"},
		"USD": {"GHS": "15.5"},
	}}
	svc := newRateFixture(t, 60, stub)

	amount := decimal.NewFromInt(100)
	usd, err := svc.Convert(context.Background(), amount, "GHS", "USD")
	require.NoError(t, err)
	back, err := svc.Convert(context.Background(), usd, "USD", "GHS")
	require.NoError(t, err)

	drift := back.Sub(amount).Abs().Div(amount)
	assert.True(t, drift.LessThan(decimal.NewFromFloat(0.01)),
		"round trip drifted %s", drift)
}

func TestRefreshCountsFailuresPerPair(t *testing.T) {
	stub := &stubRateClient{rates: map[string]map[string]string{
		"GHS": {"USD": "0.0645"},
	}}
	svc := newRateFixture(t, 60, stub)

	refreshed, failed := svc.Refresh(context.Background(), [][2]string{
		{"GHS", "USD"},
		{"GHS", "GHS"},
		{"EUR", "GHS"},
	})
	assert.Equal(t, 1, refreshed)
	assert.Equal(t, 1, failed)
}
