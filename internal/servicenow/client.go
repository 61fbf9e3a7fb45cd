package servicenow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/yvain13/servicenow-mcp-sub001/internal/api"
	"github.com/yvain13/servicenow-mcp-sub001/internal/auth"
	"github.com/yvain13/servicenow-mcp-sub001/internal/config"
	"github.com/yvain13/servicenow-mcp-sub001/pkg/logging"
)

// Client is a thin JSON client for the ServiceNow Table API. It attaches
// authentication headers from the auth.Manager on every request, bounds
// each call with the configured timeout, and unwraps the {"result": ...}
// response envelope. Failures surface as typed errors: AuthError before
// the request is sent, UpstreamError for transport failures and non-2xx
// responses. The client never retries.
type Client struct {
	apiURL     string
	httpClient *http.Client
	auth       auth.Manager
}

// NewClient creates a Table API client for the configured instance.
func NewClient(cfg config.Config, authManager auth.Manager) *Client {
	return &Client{
		apiURL:     cfg.APIURL(),
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout()},
		auth:       authManager,
	}
}

// errorEnvelope is ServiceNow's error response shape.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	} `json:"error"`
}

// GetRecords fetches records from a table. The query carries sysparm_*
// parameters (sysparm_query, sysparm_limit, ...).
func (c *Client) GetRecords(ctx context.Context, table string, query url.Values) ([]Record, error) {
	var records []Record
	if err := c.do(ctx, http.MethodGet, "/table/"+table, query, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetRecord fetches a single record by sys_id.
func (c *Client) GetRecord(ctx context.Context, table, sysID string) (Record, error) {
	var record Record
	if err := c.do(ctx, http.MethodGet, "/table/"+table+"/"+sysID, nil, nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateRecord inserts a record and returns the created row.
func (c *Client) CreateRecord(ctx context.Context, table string, fields Record) (Record, error) {
	var record Record
	if err := c.do(ctx, http.MethodPost, "/table/"+table, nil, fields, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateRecord patches a record by sys_id and returns the updated row.
func (c *Client) UpdateRecord(ctx context.Context, table, sysID string, fields Record) (Record, error) {
	var record Record
	if err := c.do(ctx, http.MethodPatch, "/table/"+table+"/"+sysID, nil, fields, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// do performs one request against the Table API and decodes the result
// envelope into out (which may be nil for responses without a body).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	requestURL := c.apiURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	headers, err := c.auth.Headers(ctx)
	if err != nil {
		// Credential acquisition failed; nothing was sent upstream.
		return err
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	requestID := uuid.NewString()
	logging.Debug("ServiceNow", "[%s] %s %s", requestID, method, requestURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debug("ServiceNow", "[%s] transport failure: %v", requestID, err)
		return api.NewUpstreamTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return api.NewUpstreamTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Debug("ServiceNow", "[%s] status %d: %s", requestID, resp.StatusCode, string(respBody))
		return api.NewUpstreamError(resp.StatusCode, upstreamMessage(respBody))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return api.NewUpstreamTransportError(fmt.Errorf("malformed response body: %w", err))
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return api.NewUpstreamTransportError(fmt.Errorf("unexpected result shape: %w", err))
	}
	return nil
}

// upstreamMessage extracts the error message from a ServiceNow error
// body, falling back to the raw body when it is not the usual envelope.
func upstreamMessage(body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		if envelope.Error.Detail != "" {
			return envelope.Error.Message + ": " + envelope.Error.Detail
		}
		return envelope.Error.Message
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return string(body)
}
