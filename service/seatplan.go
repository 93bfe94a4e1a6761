package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"seatplan-viewer-cli/model"
)

const (
	DefaultBaseURL   = "https://www.easyjet.com"
	SeatPlanPath     = "/ejavailability/api/v92/seating/getseatplan"
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5.2 Safari/605.1.15"
	maxBodyBytes     = 8 << 20
	errorSnippetN    = 8 << 10
)

// Query constants sent with every seat plan request. The caller has no real
// internal flight id, so a placeholder is used.
const (
	CurrencyCode     = "EUR"
	FareCode         = "Y"
	FareType         = "0"
	FlightInternalID = "aaa"
	LanguageCode     = "FR"
)

// Client wraps HTTP access to the seat plan endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
	requestID  func() string
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if strings.TrimSpace(userAgent) != "" {
			c.userAgent = userAgent
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new API client. If httpClient is nil, a client with
// transport defaults (no timeout) is used.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
		userAgent:  defaultUserAgent,
		logger:     slog.New(slog.DiscardHandler),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SeatPlanURL builds the request URL for a search. Fields are used as given.
func (c *Client) SeatPlanURL(in model.SearchInput) string {
	q := url.Values{}
	q.Set("ArrivalIata", in.Arrival)
	q.Set("CurrencyCode", CurrencyCode)
	q.Set("DepartureDate", in.Date)
	q.Set("DepartureIata", in.Departure)
	q.Set("FareCode", FareCode)
	q.Set("FareType", FareType)
	q.Set("FlightInternalId", FlightInternalID)
	q.Set("FlightNumber", in.FlightNumber)
	q.Set("LanguageCode", LanguageCode)
	return c.baseURL + SeatPlanPath + "?" + q.Encode()
}

// GetSeatPlan validates the search input and fetches the seat plan with a
// single request. An invalid input never reaches the network.
func (c *Client) GetSeatPlan(ctx context.Context, in model.SearchInput) (model.SeatPlan, error) {
	if missing := in.MissingFields(); len(missing) > 0 {
		return model.SeatPlan{}, &ValidationError{Missing: missing}
	}
	endpoint := c.SeatPlanURL(in.Trimmed())

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return model.SeatPlan{}, err
	}
	if err := validateSeatPlan(body); err != nil {
		c.logger.Warn("seat plan rejected", "endpoint", endpoint, "error", err)
		return model.SeatPlan{}, err
	}

	var plan model.SeatPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		return model.SeatPlan{}, &MalformedPlanError{Problems: []string{err.Error()}}
	}
	return plan, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := c.requestID()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	log := c.logger.With("request_id", requestID, "endpoint", endpoint)
	started := time.Now()

	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("seat plan request failed", "error", err)
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	log.Debug("seat plan response", "status", res.StatusCode, "duration", time.Since(started))

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, errorSnippetN))
		apiErr := &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			StatusText: statusText(res),
			Endpoint:   endpoint,
			Body:       strings.TrimSpace(string(snippet)),
		}
		log.Warn("seat plan api error", "status", res.Status)
		return nil, apiErr
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &TransportError{Err: fmt.Errorf("read response from %s: %w", endpoint, err)}
	}
	return body, nil
}

// statusText extracts the reason phrase from the status line, falling back
// to the canonical text for the code.
func statusText(res *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if text != "" {
		return text
	}
	return http.StatusText(res.StatusCode)
}
