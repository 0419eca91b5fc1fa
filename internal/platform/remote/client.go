package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studydesk/internal/platform/logger"
)

const maxBodyBytes = 32 << 20

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client speaks JSON to the study service. It never retries: a failed call is
// reported to the caller as is.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *logger.Logger
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: hc,
		log:        logger.OrNop(opts.Logger).With("component", "remote"),
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// DoJSON sends body (if any) as JSON and decodes a 2xx response into out (if
// non-nil).
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = &buf
	}
	raw, _, err := c.do(ctx, method, path, query, payload, "application/json")
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Download fetches a binary resource and the filename the server suggested.
func (c *Client) Download(ctx context.Context, path string) ([]byte, string, error) {
	raw, header, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, "", err
	}
	return raw, attachmentName(header.Get("Content-Disposition")), nil
}

// Upload posts r as a single multipart file field and decodes the JSON reply.
func (c *Client) Upload(ctx context.Context, path string, query url.Values, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("copy %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}
	raw, _, err := c.do(ctx, http.MethodPost, path, query, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode POST %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, http.Header, error) {
	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx2, method, target, body)
	if err != nil {
		return nil, nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "error", err)
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	c.log.Debug("request done", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(started))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, parseHTTPError(method, path, resp.StatusCode, raw)
	}
	return raw, resp.Header, nil
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// Path joins escaped segments into a request path.
func Path(segments ...string) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString("/")
		sb.WriteString(url.PathEscape(s))
	}
	return sb.String()
}
