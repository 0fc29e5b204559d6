package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/itcontroller/internal/client/session"
	"github.com/dmitrijs2005/itcontroller/internal/common"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
	"github.com/google/uuid"
)

type Gateway struct {
	baseURL        string
	httpClient     *http.Client
	timeout        time.Duration
	logger         logging.Logger
	onUnauthorized func(ctx context.Context)
}

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithUnauthorizedHandler registers fn to run whenever an authenticated call
// is answered with 401.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(g *Gateway) { g.onUnauthorized = fn }
}

func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		logger:     logging.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Resolve turns path into a full URL. Absolute http(s) URLs pass through
// unchanged; anything else is appended to the base URL with a leading "/".
func (g *Gateway) Resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return g.baseURL + path
}

// Do performs an authenticated call. body may be nil, []byte, string, or any
// value encodable as JSON. Entries of header replace the defaults.
func (g *Gateway) Do(ctx context.Context, method, path string, body any, header http.Header) (*Response, error) {
	return g.do(ctx, method, path, body, header, true)
}

// Public performs a call without bearer token whose 401 answers are plain
// responses. Used by the login and register endpoints, where 401 means
// "wrong password" rather than "session expired".
func (g *Gateway) Public(ctx context.Context, method, path string, body any) (*Response, error) {
	return g.do(ctx, method, path, body, nil, false)
}

// JSON is Do followed by Err and, when out is not nil, Decode.
func (g *Gateway) JSON(ctx context.Context, method, path string, in, out any) error {
	resp, err := g.Do(ctx, method, path, in, nil)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

func (g *Gateway) do(ctx context.Context, method, path string, body any, header http.Header, authenticated bool) (*Response, error) {
	reader, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	url := g.Resolve(path)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if creds, ok := session.FromContext(ctx); ok && authenticated {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	log := g.logger.With("request_id", requestID, "method", method, "url", url)
	started := time.Now()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, &NetworkError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "reading response failed", "error", err)
		return nil, &NetworkError{Method: method, URL: url, Err: err}
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(started))

	if authenticated && resp.StatusCode == http.StatusUnauthorized {
		log.Info(ctx, "session rejected by server")
		if g.onUnauthorized != nil {
			g.onUnauthorized(ctx)
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrAuthExpired)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		RequestID:  requestID,
	}, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}
