package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/studydeck/internal/common"
	"github.com/google/uuid"
)

type requestOptions struct {
	method  string
	body    any
	hasBody bool
	header  http.Header
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

// WithMethod sets the HTTP method. The default is GET.
func WithMethod(method string) RequestOption {
	return func(o *requestOptions) { o.method = method }
}

// WithJSONBody JSON-encodes v as the request body.
func WithJSONBody(v any) RequestOption {
	return func(o *requestOptions) {
		o.body = v
		o.hasBody = true
	}
}

// WithHeader sets a request header. Caller headers are applied after the
// client's own (Content-Type, Accept, X-Request-ID, Authorization) and
// replace them on conflict.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) { o.header.Set(key, value) }
}

// payload is a decoded 2xx body: raw JSON plus its generic form, and the
// status it arrived with.
type payload struct {
	raw    []byte
	value  any
	status int
}

var emptyObject = []byte("{}")

func emptyPayload() payload {
	return payload{raw: emptyObject, value: map[string]any{}}
}

// Request performs the call and returns the decoded success body unchanged:
// map[string]any for objects, []any for arrays, or a scalar. Missing, empty,
// or non-JSON bodies yield an empty map.
func (c *Client) Request(ctx context.Context, endpoint string, opts ...RequestOption) (any, error) {
	p, err := c.do(ctx, endpoint, opts)
	if err != nil {
		return nil, err
	}
	return p.value, nil
}

// Do performs the call and decodes the success body into out (which may be
// nil). A body that does not fit out is reported as a MalformedResponseError.
func (c *Client) Do(ctx context.Context, endpoint string, out any, opts ...RequestOption) error {
	p, err := c.do(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(p.raw, out); err != nil {
		c.log.Warn(ctx, "response does not match expected shape", "endpoint", endpoint, "error", err)
		return &MalformedResponseError{Status: p.status, cause: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint string, opts []RequestOption) (p payload, err error) {
	ro := &requestOptions{method: http.MethodGet, header: http.Header{}}
	for _, opt := range opts {
		opt(ro)
	}

	target := c.url(endpoint)
	requestID := uuid.NewString()
	log := c.log.With("method", ro.method, "endpoint", endpoint, "request_id", requestID)

	start := time.Now()
	status := 0
	defer func() {
		outcome := "ok"
		if f, ok := err.(Failure); ok {
			outcome = f.Kind().String()
		} else if err != nil {
			outcome = "error"
		}
		c.metrics.RecordRequest(ro.method, outcome, status, time.Since(start))
		log.Debug(ctx, "request finished", "status", status, "outcome", outcome, "duration", time.Since(start))
	}()

	var body io.Reader
	if ro.hasBody {
		b, err := json.Marshal(ro.body)
		if err != nil {
			return payload{}, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return payload{}, &TransportError{Method: ro.method, URL: target, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, ro.method, target, body)
	if err != nil {
		return payload{}, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)

	token, terr := c.tokens.Get(ctx)
	if terr != nil {
		log.Warn(ctx, "credential unavailable, sending request without bearer header", "error", terr)
		token = ""
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	for k, vs := range ro.header {
		req.Header[k] = append([]string(nil), vs...)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return payload{}, &TransportError{Method: ro.method, URL: target, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	p = emptyPayload()
	var parseErr error
	if isJSONContentType(resp.Header.Get("Content-Type")) {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return payload{}, &TransportError{Method: ro.method, URL: target, Err: err}
		}
		p, parseErr = decodePayload(data)
	} else {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	if status < 200 || status > 299 {
		if parseErr != nil {
			log.Debug(ctx, "error response body is not valid JSON", "error", parseErr)
		}
		return payload{}, &HTTPError{Status: status, Message: errorMessage(p.value, status)}
	}

	if parseErr != nil {
		log.Warn(ctx, "malformed JSON in success response", "status", status, "error", parseErr)
		return payload{}, &MalformedResponseError{Status: status, cause: parseErr}
	}

	p.status = status
	return p, nil
}

// decodePayload parses a JSON body. Blank bodies decode to {}. On a parse
// error the returned payload is also {}.
func decodePayload(data []byte) (payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return emptyPayload(), nil
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return emptyPayload(), err
	}
	return payload{raw: trimmed, value: v}, nil
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.Contains(strings.ToLower(ct), "application/json")
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// errorMessage picks the user-facing message of a non-2xx response.
func errorMessage(body any, status int) string {
	if m, ok := body.(map[string]any); ok {
		for _, key := range []string{"error", "message"} {
			if s, ok := m[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return genericMessage(status)
}
