// Package rest is the HTTP implementation of the CRUD service contract. It
// lets a controller drive a remote admin API exactly the way it drives an
// embedded store backend.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gmorais/backoffice/internal/crud"
	"github.com/gmorais/backoffice/internal/store"
)

// Client talks to one entity collection of a remote API. It satisfies
// crud.Service and crud.NextCoder.
type Client struct {
	http    *http.Client
	baseURL string
	entity  string
}

// NewClient builds a client for baseURL's entity collection. A nil httpClient
// gets a 15s-timeout default.
func NewClient(baseURL, entity string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		entity:  strings.Trim(entity, "/"),
	}
}

// Entity returns the bound collection name.
func (c *Client) Entity() string { return c.entity }

// List fetches one page. The raw body is resolved through the list-shape
// union at this boundary, so callers always see a normalized result.
func (c *Client) List(ctx context.Context, params store.ListParams) (store.ListResult, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(params.Page, 1)))
	q.Set("page_size", strconv.Itoa(params.Limit()))
	if params.Search != "" {
		q.Set("search", params.Search)
	}

	body, err := c.do(ctx, http.MethodGet, c.collectionURL()+"?"+q.Encode(), nil)
	if err != nil {
		return store.ListResult{}, err
	}
	return crud.ResolveListResponse(body), nil
}

func (c *Client) Get(ctx context.Context, id string) (*store.Record, error) {
	body, err := c.do(ctx, http.MethodGet, c.recordURL(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

func (c *Client) Create(ctx context.Context, rec *store.Record) (*store.Record, error) {
	body, err := c.do(ctx, http.MethodPost, c.collectionURL(), rec)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

func (c *Client) Update(ctx context.Context, id string, partial *store.Record) (*store.Record, error) {
	body, err := c.do(ctx, http.MethodPut, c.recordURL(id), partial)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.recordURL(id), nil)
	return err
}

// NextCode asks the API for the next sequential business key.
func (c *Client) NextCode(ctx context.Context) (int64, error) {
	body, err := c.do(ctx, http.MethodGet, c.collectionURL()+"/proximo-codigo", nil)
	if err != nil {
		return 0, err
	}
	var payload struct {
		ProximoCodigo int64 `json:"proximo_codigo"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("rest: decode next code: %w", err)
	}
	return payload.ProximoCodigo, nil
}

func (c *Client) collectionURL() string {
	return c.baseURL + "/" + c.entity
}

func (c *Client) recordURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

// do runs one request and returns the response body. Non-2xx responses are
// mapped to *crud.APIError so the orchestrator can surface the backend's
// message verbatim.
func (c *Client) do(ctx context.Context, method, rawURL string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("rest: encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("rest: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rest: %s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("rest: read response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, store.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, crud.ParseErrorPayload(resp.StatusCode, body)
	}
	return body, nil
}

func decodeRecord(body []byte) (*store.Record, error) {
	rec := store.NewRecord()
	if err := rec.UnmarshalJSON(body); err != nil {
		return nil, fmt.Errorf("rest: decode record: %w", err)
	}
	return rec, nil
}
