package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxResponseBytes = 4 << 20

// Client is the single boundary to the remote store API. Every response is
// decoded and normalized here; callers only ever see domain types.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Logger     *zap.Logger
	HTTPClient *http.Client
}

func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		logger:  logger.Named("upstream"),
	}
}

var (
	_ CatalogAPI  = (*Client)(nil)
	_ CartAPI     = (*Client)(nil)
	_ ReviewAPI   = (*Client)(nil)
	_ CheckoutAPI = (*Client)(nil)
	_ IdentityAPI = (*Client)(nil)
)

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	c.logger.Debug("upstream request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("upstream response not decodable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return errors.Join(ErrInvalidResponse, err)
	}

	return nil
}

// errorMessage pulls a human readable message out of an error body. The store
// API answers with either {"message": ...} or an ASP.NET problem document.
func errorMessage(raw []byte) string {
	var body struct {
		Message string              `json:"message"`
		Title   string              `json:"title"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		text := strings.TrimSpace(string(raw))
		if len(text) > 200 || strings.HasPrefix(text, "<") {
			return ""
		}
		return strings.Trim(text, `"`)
	}

	if body.Message != "" {
		return body.Message
	}
	for _, msgs := range body.Errors {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return body.Title
}
