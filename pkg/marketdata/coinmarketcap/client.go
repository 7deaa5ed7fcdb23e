package coinmarketcap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/raykavin/toppairs/pkg/core"
	"github.com/raykavin/toppairs/pkg/logger"
	"github.com/raykavin/toppairs/pkg/logger/zerolog"
	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the production host of the CoinMarketCap Pro API
	DefaultBaseURL = "https://pro-api.coinmarketcap.com"

	listingsPath = "/v1/cryptocurrency/listings/latest"
	apiKeyHeader = "X-CMC_PRO_API_KEY"

	defaultTimeout = 30 * time.Second
)

var errMissingField = errors.New("missing required field")

// Client fetches coin rankings from CoinMarketCap
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API host, used for sandbox keys and tests
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the overall timeout of a request
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client authenticated with apiKey
func NewClient(apiKey string, options ...Option) *Client {
	client := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zerolog.NewNop(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Listings performs a single request to the listings endpoint and returns the
// coins in the order the provider ranked them. A response without a data field
// is logged and yields an empty result.
func (c *Client) Listings(ctx context.Context, req core.ListingsRequest) ([]core.CoinRecord, error) {
	req = normalize(req)
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, listingsPath, req)
	if err != nil {
		return nil, err
	}

	return decodeListings(body, c.log)
}

func (c *Client) get(ctx context.Context, path string, req core.ListingsRequest) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("coinmarketcap: build request: %w", err)
	}

	httpReq.URL.RawQuery = queryValues(req).Encode()
	httpReq.Header.Set("Accepts", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	c.log.WithFields(map[string]any{
		"limit":    req.Limit,
		"convert":  req.Convert,
		"sort":     req.Sort,
		"sort_dir": req.SortDir,
	}).Debug("requesting coin listings")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("coinmarketcap: listings request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coinmarketcap: read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newHTTPError(resp.StatusCode, body)
	}

	return body, nil
}

func newHTTPError(statusCode int, body []byte) *HTTPError {
	httpErr := &HTTPError{StatusCode: statusCode}
	if gjson.ValidBytes(body) {
		status := gjson.GetBytes(body, "status")
		httpErr.ErrorCode = status.Get("error_code").Int()
		httpErr.Message = status.Get("error_message").String()
	}
	return httpErr
}

// decodeListings turns the data array into typed records. Each entry must
// carry a symbol and a quote object.
func decodeListings(body []byte, log logger.Logger) ([]core.CoinRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("coinmarketcap: %w: body is not valid json", core.ErrMalformedResponse)
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() {
		log.Warn("'data' not found in CoinMarketCap response")
		return []core.CoinRecord{}, nil
	}
	if !data.IsArray() {
		return nil, fmt.Errorf("coinmarketcap: %w: data is %s, expected array", core.ErrMalformedResponse, data.Type)
	}

	items := data.Array()
	coins := make([]core.CoinRecord, 0, len(items))
	for i, item := range items {
		if err := requireFields(i, item); err != nil {
			return nil, err
		}

		var coin core.CoinRecord
		if err := json.Unmarshal([]byte(item.Raw), &coin); err != nil {
			return nil, &ParseError{Index: i, Err: err}
		}
		coins = append(coins, coin)
	}

	return coins, nil
}

func requireFields(index int, item gjson.Result) error {
	if !item.IsObject() {
		return &ParseError{Index: index, Err: fmt.Errorf("entry is %s, expected object", item.Type)}
	}

	symbol := item.Get("symbol")
	if symbol.Type != gjson.String || symbol.String() == "" {
		return &ParseError{Index: index, Field: "symbol", Err: errMissingField}
	}
	if !item.Get("quote").IsObject() {
		return &ParseError{Index: index, Field: "quote", Err: errMissingField}
	}

	return nil
}
