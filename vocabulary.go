package vocabulary

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/dewarrum/vocabulary-client/internal/constants"
	"github.com/dewarrum/vocabulary-client/internal/httpclient"
	coreErrors "github.com/dewarrum/vocabulary-client/pkg/core/errors"
	log "github.com/sirupsen/logrus"
)

// Config holds the configuration for the vocabulary client.
type Config struct {
	// BaseURL of the backend, e.g. https://vocab.example.com. When empty the
	// PUBLIC_API_BASE_URL environment variable is used.
	BaseURL   string
	UserAgent string // Optional: defaults to constants.DefaultUserAgent

	// SessionCookie is sent verbatim as the Cookie header (e.g. "session=abc").
	SessionCookie string

	HTTPClient *http.Client // Optional: defaults to http.DefaultClient
	Logger     *log.Logger  // Optional: defaults to an Info-level text logger on stderr
}

// Client is the main client for the vocabulary-leveling backend.
// It is safe for concurrent use.
type Client struct {
	httpClient *httpclient.Client
	logger     *log.Logger
}

// NewClient creates a new client, resolving and validating the base URL.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv(constants.BaseURLEnv)
	}
	if baseURL == "" {
		return nil, coreErrors.ErrMissingBaseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", coreErrors.ErrInvalidBaseURL, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", coreErrors.ErrInvalidBaseURL, baseURL)
	}
	// Endpoint paths and query strings are appended to the base URL.
	if parsed.RawQuery != "" || parsed.ForceQuery || parsed.Fragment != "" {
		return nil, fmt.Errorf("%w: %q must not carry a query or fragment", coreErrors.ErrInvalidBaseURL, baseURL)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawPath = strings.TrimRight(parsed.RawPath, "/")
	baseURL = parsed.String()

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = constants.DefaultUserAgent
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New()
		logger.SetFormatter(&log.TextFormatter{})
		logger.SetOutput(os.Stderr)
		logger.SetLevel(log.InfoLevel)
	}

	c := &Client{
		httpClient: httpclient.New(baseURL, userAgent, config.HTTPClient, logger),
		logger:     logger,
	}
	c.httpClient.SetCookie(config.SessionCookie)

	return c, nil
}

// SetSessionCookie replaces the Cookie header sent with requests. Empty clears it.
func (c *Client) SetSessionCookie(cookie string) {
	c.httpClient.SetCookie(cookie)
}

// BaseURL returns the resolved base URL, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.httpClient.BaseURL()
}
