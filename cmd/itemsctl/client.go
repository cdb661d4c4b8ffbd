package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lzjever/mbos-items/internal/core"
)

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// APIError is a non-2xx answer; the service replies with plain-text bodies.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

func (c *Client) ListItems(ctx context.Context) ([]core.Item, error) {
	body, err := c.do(ctx, http.MethodGet, "/get-all", "")
	if err != nil {
		return nil, err
	}
	var items []core.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (core.Item, error) {
	body, err := c.do(ctx, http.MethodGet, "/get/"+url.PathEscape(id), "")
	if err != nil {
		return core.Item{}, err
	}
	var item core.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return core.Item{}, fmt.Errorf("decode item: %w", err)
	}
	return item, nil
}

func (c *Client) AddItem(ctx context.Context, name string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/add/"+url.PathEscape(name), "")
	return string(body), err
}

func (c *Client) UpdateItem(ctx context.Context, id, name string) (string, error) {
	body, err := c.do(ctx, http.MethodPut, "/update/"+url.PathEscape(id), name)
	return string(body), err
}

func (c *Client) DeleteItem(ctx context.Context, id string) (string, error) {
	body, err := c.do(ctx, http.MethodDelete, "/delete/"+url.PathEscape(id), "")
	return string(body), err
}

// Health calls /health or /ready and returns the body.
func (c *Client) Health(ctx context.Context, path string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, path, "")
	return string(body), err
}

func (c *Client) do(ctx context.Context, method, path, body string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if body != "" {
		req.SetHeader("Content-Type", "text/plain; charset=utf-8").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}
	return parseResponse(resp)
}

func parseResponse(resp *resty.Response) ([]byte, error) {
	if resp.StatusCode() >= 400 {
		return nil, &APIError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return resp.Body(), nil
}
