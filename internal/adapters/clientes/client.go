// Package clientes is the HTTP client for the backend's /api/clientes resource.
package clientes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/okian/talento/internal/domain/expert"
	"github.com/okian/talento/pkg/logger"
	"github.com/okian/talento/pkg/metrics"
)

const (
	resourcePath    = "/api/clientes"
	requestIDHeader = "X-Request-ID"
	// maxBodyBytes caps how much of a backend response is read.
	maxBodyBytes = 1 << 20
)

// Client talks to the backend that owns expert records.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  logger.Logger
}

// New creates a Client. Without options it targets http://localhost:3000.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: "http://localhost:3000",
		http:    &http.Client{},
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// Update sends the full record as PUT /api/clientes/{id}. On a 2xx response
// confirmed reports whether the payload was truthy; a falsy payload is not an
// error but must not be treated as a completed update either.
func (c *Client) Update(ctx context.Context, rec expert.Record) (confirmed bool, err error) {
	const op = "clientes.update"
	if rec.ID.Empty() {
		return false, errors.Wrap(ErrMissingID, op)
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return false, errors.Wrap(err, "encode record")
	}
	payload, err := c.do(ctx, op, http.MethodPut, c.recordURL(rec.ID), body)
	if err != nil {
		return false, err
	}
	return truthy(payload), nil
}

// Delete issues DELETE /api/clientes/{id}. Only the request outcome matters.
func (c *Client) Delete(ctx context.Context, id expert.ID) error {
	const op = "clientes.delete"
	if id.Empty() {
		return errors.Wrap(ErrMissingID, op)
	}
	_, err := c.do(ctx, op, http.MethodDelete, c.recordURL(id), nil)
	return err
}

// Get fetches one record.
func (c *Client) Get(ctx context.Context, id expert.ID) (expert.Record, error) {
	const op = "clientes.get"
	if id.Empty() {
		return expert.Record{}, errors.Wrap(ErrMissingID, op)
	}
	payload, err := c.do(ctx, op, http.MethodGet, c.recordURL(id), nil)
	if err != nil {
		return expert.Record{}, err
	}
	var rec expert.Record
	if err := decodeOne(payload, &rec); err != nil {
		return expert.Record{}, &RequestError{Op: op, StatusCode: http.StatusOK, Err: errors.Wrap(err, "decode record")}
	}
	return rec, nil
}

// List fetches every record.
func (c *Client) List(ctx context.Context) ([]expert.Record, error) {
	const op = "clientes.list"
	payload, err := c.do(ctx, op, http.MethodGet, c.baseURL+resourcePath, nil)
	if err != nil {
		return nil, err
	}
	recs, err := decodeMany(payload)
	if err != nil {
		return nil, &RequestError{Op: op, StatusCode: http.StatusOK, Err: errors.Wrap(err, "decode records")}
	}
	return recs, nil
}

func (c *Client) recordURL(id expert.ID) string {
	return c.baseURL + resourcePath + "/" + url.PathEscape(id.String())
}

// do performs one call and returns the response body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body []byte) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &RequestError{Op: op, Err: errors.Wrap(err, "build request")}
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With(logger.String("op", op), logger.String("request_id", reqID))
	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordUpstream(op, metrics.OutcomeFailed, elapsed)
		log.Warn(ctx, "backend unreachable", logger.String("url", endpoint), logger.Error(err))
		return nil, &RequestError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.RecordUpstream(op, metrics.OutcomeFailed, elapsed)
		return nil, &RequestError{Op: op, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read response")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordUpstream(op, metrics.OutcomeFailed, elapsed)
		rerr := &RequestError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(payload)}
		log.Warn(ctx, "backend rejected request", logger.Int("status", resp.StatusCode), logger.String("message", rerr.Message))
		return nil, rerr
	}

	metrics.RecordUpstream(op, metrics.OutcomeOK, elapsed)
	log.Debug(ctx, "backend call ok", logger.Int("status", resp.StatusCode), logger.Float64("elapsed_ms", elapsed))
	return payload, nil
}

// errorMessage extracts {"message": "..."} from an error body.
func errorMessage(payload []byte) string {
	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	s, _ := body.Message.(string)
	return strings.TrimSpace(s)
}

// truthy mirrors how a script would test the decoded payload: absent, null,
// false, 0 and "" are falsy; objects and arrays are truthy even when empty.
func truthy(payload []byte) bool {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		// Non-JSON text is a non-empty string.
		return true
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// decodeOne accepts either a bare record or one wrapped as {"data": {...}}.
func decodeOne(payload []byte, rec *expert.Record) error {
	var wrapped struct {
		Data *expert.Record `json:"data"`
	}
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.Data != nil {
		*rec = *wrapped.Data
		return nil
	}
	return json.Unmarshal(payload, rec)
}

// decodeMany accepts either a bare array or one wrapped as {"data": [...]}.
func decodeMany(payload []byte) ([]expert.Record, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var recs []expert.Record
		err := json.Unmarshal(trimmed, &recs)
		return recs, err
	}
	var wrapped struct {
		Data []expert.Record `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Data, nil
}
