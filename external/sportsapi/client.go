package sportsapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/greentips/tips-platform/internal/domain/match"
	"github.com/greentips/tips-platform/internal/platform/logging"
	"github.com/greentips/tips-platform/internal/platform/resilience"
	"github.com/greentips/tips-platform/internal/usecase"
)

const (
	defaultFootballBaseURL   = "https://v3.football.api-sports.io"
	defaultBasketballBaseURL = "https://v1.basketball.api-sports.io"
	queryDateLayout          = "2006-01-02"
	maxResponseBytes         = 6 << 20
)

var errProviderTransient = crerr.New("sports provider transient failure")

type ClientConfig struct {
	HTTPClient        *http.Client
	FootballBaseURL   string
	BasketballBaseURL string
	APIKey            string
	Timeout           time.Duration
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

// Client talks to the api-sports fixture feeds. Football and basketball are
// separate hosts behind the same key; both share one circuit breaker since
// they sit behind the same provider account and rate limits.
type Client struct {
	httpClient        *http.Client
	footballBaseURL   string
	basketballBaseURL string
	apiKey            string
	logger            *logging.Logger
	breaker           *resilience.CircuitBreaker
	circuitEnabled    bool
	flight            resilience.Group[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	footballBaseURL := strings.TrimRight(strings.TrimSpace(cfg.FootballBaseURL), "/")
	if footballBaseURL == "" {
		footballBaseURL = defaultFootballBaseURL
	}
	basketballBaseURL := strings.TrimRight(strings.TrimSpace(cfg.BasketballBaseURL), "/")
	if basketballBaseURL == "" {
		basketballBaseURL = defaultBasketballBaseURL
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:        httpClient,
		footballBaseURL:   footballBaseURL,
		basketballBaseURL: basketballBaseURL,
		apiKey:            strings.TrimSpace(cfg.APIKey),
		logger:            logger,
		breaker:           resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled:    breakerCfg.Enabled,
	}
}

// FetchFootballFixtures returns the provider's fixtures for one calendar
// day, normalized to match rows. Failures are surfaced to the caller; an
// empty result always means the provider reported no fixtures.
func (c *Client) FetchFootballFixtures(ctx context.Context, day time.Time) ([]match.FootballMatch, error) {
	var envelope footballFixturesEnvelope
	query := map[string]string{"date": day.Format(queryDateLayout)}
	if err := c.doJSON(ctx, c.footballBaseURL, "/fixtures", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch football fixtures date=%s: %w", query["date"], err)
	}

	matches := make([]match.FootballMatch, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.Fixture.ID <= 0 {
			continue
		}
		matches = append(matches, mapFootballFixture(item))
	}

	return matches, nil
}

// FetchBasketballGames returns the provider's games for one calendar day,
// normalized to game rows.
func (c *Client) FetchBasketballGames(ctx context.Context, day time.Time) ([]match.BasketballGame, error) {
	var envelope basketballGamesEnvelope
	query := map[string]string{"date": day.Format(queryDateLayout)}
	if err := c.doJSON(ctx, c.basketballBaseURL, "/games", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch basketball games date=%s: %w", query["date"], err)
	}

	games := make([]match.BasketballGame, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.ID <= 0 {
			continue
		}
		games = append(games, mapBasketballGame(item))
	}

	return games, nil
}

func (c *Client) doJSON(ctx context.Context, baseURL, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sports provider circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errProviderTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return body, reqErr
	})
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", req.URL.Host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := fmt.Errorf("%w: send request: %v", errProviderTransient, err)
		c.logger.WarnContext(ctx, "sports provider request failed", "url", fullURL, "error", wrapped)
		return nil, wrapped
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errProviderTransient, readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		lastErr := fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		if isTransientStatus(resp.StatusCode) {
			lastErr = fmt.Errorf("%w: %v", errProviderTransient, lastErr)
		}
		c.logger.WarnContext(ctx, "sports provider request failed", "url", fullURL, "error", lastErr)
		return nil, lastErr
	}

	return raw, nil
}

func isTransientStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
