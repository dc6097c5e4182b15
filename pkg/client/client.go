// Package client is a typed client for the marketplace REST API, plus the
// session, filtering and product-form logic shared by front ends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds every request made with the default HTTP client.
const DefaultTimeout = 15 * time.Second

// ErrUnreachable is the message shown when the server gave no usable answer.
const ErrUnreachable = "could not reach the server, please try again"

// APIError is a non-2xx response. Message is the server's "error" field.
type APIError struct {
	Status  int
	Message string
	Code    string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Message returns a human readable description of err: the server's message
// for API errors and a generic message for transport failures.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return ErrUnreachable
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client calls the REST API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token sent with every request. An empty
// token removes the header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the installed bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error  string            `json:"error"`
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Message = payload.Error
			apiErr.Code = payload.Code
			apiErr.Fields = payload.Fields
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// LoginResult is the body of a successful login.
type LoginResult struct {
	Message  string   `json:"message"`
	Producer Producer `json:"producer"`
	Token    string   `json:"token"`
}

// Login exchanges credentials for a token. It does not install the token;
// Session.SignIn does.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/login", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type producerEnvelope struct {
	Message  string   `json:"message"`
	Producer Producer `json:"producer"`
}

// Register creates a producer account.
func (c *Client) Register(ctx context.Context, in Registration) (*Producer, error) {
	var out producerEnvelope
	if err := c.do(ctx, http.MethodPost, "/producers", in, &out); err != nil {
		return nil, err
	}
	return &out.Producer, nil
}

// GetProducer fetches a producer profile.
func (c *Client) GetProducer(ctx context.Context, id string) (*Producer, error) {
	var out Producer
	if err := c.do(ctx, http.MethodGet, "/producers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile updates the caller's own profile.
func (c *Client) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*Producer, error) {
	var out producerEnvelope
	if err := c.do(ctx, http.MethodPut, "/producers/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out.Producer, nil
}

// ChangePassword replaces the caller's password.
func (c *Client) ChangePassword(ctx context.Context, id string, in PasswordChange) error {
	return c.do(ctx, http.MethodPut, "/producers/"+url.PathEscape(id)+"/password", in, nil)
}

// DeleteProducer deletes the caller's account and all of its products.
func (c *Client) DeleteProducer(ctx context.Context, id, currentPassword string) error {
	return c.do(ctx, http.MethodDelete, "/producers/"+url.PathEscape(id), map[string]string{"currentPassword": currentPassword}, nil)
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCategory fetches one category.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPost, "/categories", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id, name string) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory deletes a category and its products.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

// ListProducts fetches products, optionally filtered on the server.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]Product, error) {
	values := url.Values{}
	if q.CategoryID != "" {
		values.Set("categoryId", q.CategoryID)
	}
	if q.ProducerID != "" {
		values.Set("producerId", q.ProducerID)
	}
	path := "/products"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var out []Product
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct fetches one product.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct adds a product owned by the caller.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct overwrites the given fields of one of the caller's products.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct deletes one of the caller's products.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}
