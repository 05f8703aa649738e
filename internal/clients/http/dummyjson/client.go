package dummyjson

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oapi-codegen/runtime"
)

const (
	// DefaultBaseURL is the public DummyJSON API.
	DefaultBaseURL = "https://dummyjson.com"
	// DefaultPageLimit is the window size used when walking a full listing.
	DefaultPageLimit = 50
)

// Client reads the DummyJSON product and user listings.
type Client struct {
	http      *resty.Client
	pageLimit int
}

type ClientOption func(*Client)

// WithPageLimit overrides the window size used by AllProducts and AllUsers.
func WithPageLimit(limit int) ClientOption {
	return func(c *Client) {
		if limit > 0 {
			c.pageLimit = limit
		}
	}
}

// WithHTTPClient swaps the transport, mainly for tracing or tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.http = resty.NewWithClient(httpClient).SetBaseURL(c.http.BaseURL)
		}
	}
}

// NewClient instantiates the DummyJSON client with sane defaults.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("dummyjson base URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parse dummyjson base URL: %w", err)
	}
	c := &Client{
		http:      resty.New().SetBaseURL(baseURL),
		pageLimit: DefaultPageLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.http.
		SetTimeout(10*time.Second).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)
	return c, nil
}

// ListProducts fetches one window of /products.
func (c *Client) ListProducts(ctx context.Context, params ListParams) (*ProductsPage, error) {
	var page ProductsPage
	if err := c.get(ctx, "/products", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListUsers fetches one window of /users.
func (c *Client) ListUsers(ctx context.Context, params ListParams) (*UsersPage, error) {
	var page UsersPage
	if err := c.get(ctx, "/users", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AllProducts walks /products with limit/skip until total is reached.
func (c *Client) AllProducts(ctx context.Context) ([]Product, error) {
	var all []Product
	for skip := 0; ; {
		page, err := c.ListProducts(ctx, c.window(skip))
		if err != nil {
			return nil, err
		}
		all = append(all, page.Products...)
		skip += len(page.Products)
		if len(page.Products) == 0 || skip >= page.Total {
			return all, nil
		}
	}
}

// AllUsers walks /users with limit/skip until total is reached.
func (c *Client) AllUsers(ctx context.Context) ([]User, error) {
	var all []User
	for skip := 0; ; {
		page, err := c.ListUsers(ctx, c.window(skip))
		if err != nil {
			return nil, err
		}
		all = append(all, page.Users...)
		skip += len(page.Users)
		if len(page.Users) == 0 || skip >= page.Total {
			return all, nil
		}
	}
}

func (c *Client) window(skip int) ListParams {
	limit := c.pageLimit
	return ListParams{Limit: &limit, Skip: &skip}
}

func (c *Client) get(ctx context.Context, path string, params ListParams, out any) error {
	if c == nil || c.http == nil {
		return errors.New("dummyjson client not configured")
	}
	query, err := encodeListParams(params)
	if err != nil {
		return err
	}
	var failure errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetResult(out).
		SetError(&failure).
		Get(path)
	if err != nil {
		return fmt.Errorf("call dummyjson %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("dummyjson %s error: %s", path, errorMessage(&failure, resp.Status()))
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("dummyjson %s unexpected status: %s", path, resp.Status())
	}
	return nil
}

// encodeListParams styles the query the same way generated OpenAPI clients do.
func encodeListParams(params ListParams) (url.Values, error) {
	query := url.Values{}
	add := func(name string, value *int) error {
		if value == nil {
			return nil
		}
		frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, *value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		parsed, err := url.ParseQuery(frag)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		for k, v := range parsed {
			query[k] = append(query[k], v...)
		}
		return nil
	}
	if err := add("limit", params.Limit); err != nil {
		return nil, err
	}
	if err := add("skip", params.Skip); err != nil {
		return nil, err
	}
	return query, nil
}

func errorMessage(body *errorBody, fallback string) string {
	if body == nil || body.Message == nil {
		return fallback
	}
	if msg := strings.TrimSpace(*body.Message); msg != "" {
		return msg
	}
	return fallback
}
