package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/creatorverse/creatorverse/internal/model"
)

const (
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second

	restPath          = "/rest/v1/"
	mediaObject       = "application/vnd.pgrst.object+json"
	mediaJSON         = "application/json"
	preferReturnRow   = "return=representation"
	maxErrorBodyBytes = 64 << 10
)

// NewHTTPClient creates an HTTP client for the PostgREST endpoint.
// Requests carry no overall deadline; only connection setup is bounded.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: TLSHandshakeTimeout,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Table is a Backend for one Supabase table reached through PostgREST.
type Table struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewTable creates a Table for projectURL/rest/v1/table.
func NewTable(projectURL, apiKey, table string, client *http.Client) (*Table, error) {
	base, err := url.Parse(strings.TrimSpace(projectURL))
	if err != nil {
		return nil, fmt.Errorf("invalid project URL: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid project URL %q: must be an absolute http(s) URL", projectURL)
	}
	if table == "" {
		return nil, fmt.Errorf("table name is required")
	}
	if client == nil {
		client = NewHTTPClient()
	}

	base.Path = strings.TrimSuffix(base.Path, "/") + restPath + url.PathEscape(table)
	base.RawQuery = ""

	return &Table{
		endpoint: base.String(),
		apiKey:   apiKey,
		client:   client,
	}, nil
}

// Endpoint returns the table URL.
func (t *Table) Endpoint() string {
	return t.endpoint
}

// List fetches every row.
func (t *Table) List(ctx context.Context) ([]model.Creator, error) {
	query := url.Values{"select": {"*"}}

	var creators []model.Creator
	if err := t.do(ctx, request{method: http.MethodGet, query: query, accept: mediaJSON}, &creators); err != nil {
		return nil, err
	}
	return creators, nil
}

// Get fetches the single row whose name matches exactly.
func (t *Table) Get(ctx context.Context, name string) (*model.Creator, error) {
	query := url.Values{"select": {"*"}}
	query.Set("name", "eq."+name)

	var creator model.Creator
	if err := t.do(ctx, request{method: http.MethodGet, query: query, accept: mediaObject}, &creator); err != nil {
		return nil, err
	}
	return &creator, nil
}

// Insert stores a new row and returns its stored representation.
func (t *Table) Insert(ctx context.Context, c model.Creator) (*model.Creator, error) {
	query := url.Values{"select": {"*"}}

	var stored model.Creator
	req := request{method: http.MethodPost, query: query, body: c, accept: mediaObject, prefer: preferReturnRow}
	if err := t.do(ctx, req, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Update replaces the fields of the row named oldName.
func (t *Table) Update(ctx context.Context, oldName string, c model.Creator) (*model.Creator, error) {
	query := url.Values{"select": {"*"}}
	query.Set("name", "eq."+oldName)

	var stored model.Creator
	req := request{method: http.MethodPatch, query: query, body: c, accept: mediaObject, prefer: preferReturnRow}
	if err := t.do(ctx, req, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Delete removes the rows named name. Deleting a missing name succeeds.
func (t *Table) Delete(ctx context.Context, name string) error {
	query := url.Values{}
	query.Set("name", "eq."+name)
	return t.do(ctx, request{method: http.MethodDelete, query: query, accept: mediaJSON}, nil)
}

// Ping issues an empty select to check the endpoint and credential.
func (t *Table) Ping(ctx context.Context) error {
	query := url.Values{"select": {"name"}, "limit": {"0"}}
	return t.do(ctx, request{method: http.MethodGet, query: query, accept: mediaJSON}, nil)
}

type request struct {
	method string
	query  url.Values
	body   any
	accept string
	prefer string
}

// do sends one request. Transport errors are returned unwrapped so their
// text reaches the page verbatim.
func (t *Table) do(ctx context.Context, r request, out any) error {
	target := t.endpoint
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", t.apiKey)
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Accept", r.accept)
	if r.body != nil {
		req.Header.Set("Content-Type", mediaJSON)
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}
