// Package restapi is the HTTP client for the back-office metadata API:
// stateless REST mapping for news articles and promotions, with the API's
// structured error contract decoded into the adminmedia error taxonomy.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/habitara/admin-media/pkg/adminmedia"
)

const (
	newsPath      = "/api/noticias"
	promotionPath = "/api/publicidad"

	defaultTimeout = 10 * time.Second
)

// Credentials is the opaque bearer value attached to authenticated calls.
// It is passed in explicitly; the client never reads ambient session state.
type Credentials struct {
	Token string
}

// Client talks to the metadata REST API. It holds no state beyond its
// configuration; one call means one in-flight request.
type Client struct {
	baseURL string
	httpc   *http.Client
	creds   Credentials
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpc.Timeout = d
	}
}

// New creates a metadata API client for the given base URL.
func New(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// News article operations. List and get are public; the rest authenticate.

func (c *Client) ListNews(ctx context.Context) ([]adminmedia.NewsArticle, error) {
	var out []adminmedia.NewsArticle
	if err := c.do(ctx, http.MethodGet, newsPath, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNews(ctx context.Context, id string) (*adminmedia.NewsArticle, error) {
	var out adminmedia.NewsArticle
	if err := c.do(ctx, http.MethodGet, newsPath+"/"+id, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateNews(ctx context.Context, req adminmedia.CreateNewsRequest) (*adminmedia.NewsArticle, error) {
	var out adminmedia.NewsArticle
	if err := c.do(ctx, http.MethodPost, newsPath, req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNews(ctx context.Context, id string, req adminmedia.UpdateNewsRequest) (*adminmedia.NewsArticle, error) {
	var out adminmedia.NewsArticle
	if err := c.do(ctx, http.MethodPut, newsPath+"/"+id, req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNews(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, newsPath+"/"+id, nil, nil, true)
}

// Promotion operations. All authenticate.

func (c *Client) ListPromotions(ctx context.Context) ([]adminmedia.Promotion, error) {
	var out []adminmedia.Promotion
	if err := c.do(ctx, http.MethodGet, promotionPath, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPromotion(ctx context.Context, id string) (*adminmedia.Promotion, error) {
	var out adminmedia.Promotion
	if err := c.do(ctx, http.MethodGet, promotionPath+"/"+id, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePromotion(ctx context.Context, req adminmedia.CreatePromotionRequest) (*adminmedia.Promotion, error) {
	var out adminmedia.Promotion
	if err := c.do(ctx, http.MethodPost, promotionPath, req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePromotion(ctx context.Context, id string, req adminmedia.UpdatePromotionRequest) (*adminmedia.Promotion, error) {
	var out adminmedia.Promotion
	if err := c.do(ctx, http.MethodPut, promotionPath+"/"+id, req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePromotion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, promotionPath+"/"+id, nil, nil, true)
}

// errorBody is the API's structured error contract. Errors is present only
// on HTTP 422 and maps field names to messages.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// do runs one JSON request against the API.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.creds.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode == http.StatusUnprocessableEntity && len(body.Errors) > 0 {
		msg := body.Message
		if msg == "" {
			msg = "validation failed"
		}
		return &adminmedia.ValidationError{Message: msg, Fields: body.Errors}
	}

	apiErr := &adminmedia.APIError{StatusCode: resp.StatusCode, Message: body.Message}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", adminmedia.ErrNotFound, apiErr)
	}
	return apiErr
}
