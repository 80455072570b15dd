package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sync"

	coreErrors "github.com/dewarrum/vocabulary-client/pkg/core/errors"
	"github.com/google/go-querystring/query"
	log "github.com/sirupsen/logrus"
)

// Client manages making HTTP requests to the backend.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *log.Logger
	mu         sync.RWMutex // Protects cookie
	cookie     string
}

// FormFile is a file part of a multipart request.
type FormFile struct {
	Field       string
	FileName    string
	ContentType string
	Reader      io.Reader
}

// New creates a new internal HTTP client. A nil httpClient falls back to http.DefaultClient.
func New(baseURL, userAgent string, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetCookie sets the raw Cookie header sent with every request. Empty clears it.
func (c *Client) SetCookie(cookie string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cookie = cookie
}

// Get makes a GET request. params may be nil or a struct with `url` tags.
// Non-2xx responses are returned as *coreErrors.APIError.
func (c *Client) Get(ctx context.Context, path string, params interface{}, target interface{}) error {
	body, _, err := c.doRequest(ctx, http.MethodGet, path, params, nil, "", "application/json")
	if err != nil {
		return err
	}
	return decode(http.MethodGet, path, body, target)
}

// GetRaw makes a GET request and returns the undecoded body with its content type.
func (c *Client) GetRaw(ctx context.Context, path string, params interface{}, accept string) ([]byte, string, error) {
	return c.doRequest(ctx, http.MethodGet, path, params, nil, "", accept)
}

// PostMultipart sends fields and files as multipart/form-data and decodes the JSON response into target.
// File contents are streamed, not buffered.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []FormFile, target interface{}) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, fields, files))
	}()
	// Unblocks the writer goroutine if the request ends before the body is consumed.
	defer pr.Close()

	body, _, err := c.doRequest(ctx, http.MethodPost, path, nil, pr, mw.FormDataContentType(), "application/json")
	if err != nil {
		return err
	}
	return decode(http.MethodPost, path, body, target)
}

func writeMultipart(mw *multipart.Writer, fields map[string]string, files []FormFile) error {
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.FileName))
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("failed to create form file %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("failed to write form file %s: %w", f.Field, err)
		}
	}
	return mw.Close()
}

func decode(method, path string, body []byte, target interface{}) error {
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response body for %s %s: %w", method, path, err)
	}
	return nil
}

// doRequest performs the request and returns the body of a 2xx response and its content type.
func (c *Client) doRequest(ctx context.Context, method, path string, params interface{}, reqBody io.Reader, contentType, accept string) ([]byte, string, error) {
	c.mu.RLock()
	cookie := c.cookie
	c.mu.RUnlock()

	fullURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base URL: %w", err)
	}
	fullURL.Path += path // baseURL has no trailing slash, path starts with /

	if params != nil {
		v, err := query.Values(params)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode query parameters: %w", err)
		}
		fullURL.RawQuery = v.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL.String(), reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request for %s %s: %w", method, path, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute request for %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body for %s %s: %w", method, path, err)
	}

	respType := resp.Header.Get("Content-Type")
	c.logger.WithFields(log.Fields{
		"method":         method,
		"url":            fullURL.String(),
		"status":         resp.StatusCode,
		"content_type":   respType,
		"content_length": len(body),
	}).Debug("Received response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", coreErrors.NewAPIError(resp.StatusCode, method, path, body)
	}

	return body, respType, nil
}
