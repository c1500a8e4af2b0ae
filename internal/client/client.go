// Package client é o cliente HTTP da API REST do Easy Inventory.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"easyinventory/internal/domain"
)

// DefaultBaseURL é usado quando INVENTORY_API_URL não está definida.
const DefaultBaseURL = "http://localhost:5000/api"

// APIError é devolvido para qualquer resposta fora da faixa 2xx.
type APIError struct {
	Status int
	Body   domain.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Body.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Client fala com /api/spaces e /api/items.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option ajusta o Client na construção.
type Option func(*Client)

// WithHTTPClient troca o http.Client padrão (ex.: httptest.Server.Client()).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New cria um cliente para baseURL (ex.: http://localhost:5000/api).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: codificar requisição: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Body)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decodificar resposta de %s %s: %w", method, path, err)
	}
	return nil
}

// --- Espaços ---

func (c *Client) ListSpaces(ctx context.Context) ([]domain.Space, error) {
	var spaces []domain.Space
	err := c.do(ctx, http.MethodGet, "/spaces", nil, &spaces)
	return spaces, err
}

func (c *Client) GetSpace(ctx context.Context, id string) (domain.Space, error) {
	var space domain.Space
	err := c.do(ctx, http.MethodGet, "/spaces/"+url.PathEscape(id), nil, &space)
	return space, err
}

func (c *Client) CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	var created domain.Space
	err := c.do(ctx, http.MethodPost, "/spaces", space, &created)
	return created, err
}

func (c *Client) UpdateSpace(ctx context.Context, id string, patch domain.SpacePatch) (domain.Space, error) {
	var updated domain.Space
	err := c.do(ctx, http.MethodPut, "/spaces/"+url.PathEscape(id), patch, &updated)
	return updated, err
}

func (c *Client) DeleteSpace(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/spaces/"+url.PathEscape(id), nil, nil)
}

// --- Itens ---

func (c *Client) ListItems(ctx context.Context, spaceID string) ([]domain.Item, error) {
	var items []domain.Item
	err := c.do(ctx, http.MethodGet, "/items/space/"+url.PathEscape(spaceID), nil, &items)
	return items, err
}

func (c *Client) GetItem(ctx context.Context, id string) (domain.Item, error) {
	var item domain.Item
	err := c.do(ctx, http.MethodGet, "/items/"+url.PathEscape(id), nil, &item)
	return item, err
}

func (c *Client) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	var created domain.Item
	err := c.do(ctx, http.MethodPost, "/items", item, &created)
	return created, err
}

func (c *Client) UpdateItem(ctx context.Context, id string, patch domain.ItemPatch) (domain.Item, error) {
	var updated domain.Item
	err := c.do(ctx, http.MethodPut, "/items/"+url.PathEscape(id), patch, &updated)
	return updated, err
}

// UpdateQuantity altera apenas a quantidade do item.
func (c *Client) UpdateQuantity(ctx context.Context, id string, quantity int) (domain.Item, error) {
	var updated domain.Item
	err := c.do(ctx, http.MethodPatch, "/items/"+url.PathEscape(id)+"/quantity", domain.QuantityUpdate{Quantity: &quantity}, &updated)
	return updated, err
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil)
}

// Health consulta /api/health. Banco desconectado (503) chega como *APIError.
func (c *Client) Health(ctx context.Context) (domain.HealthStatus, error) {
	var status domain.HealthStatus
	err := c.do(ctx, http.MethodGet, "/health", nil, &status)
	return status, err
}
