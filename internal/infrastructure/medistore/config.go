package medistore

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds every remote call
	DefaultTimeout = 15 * time.Second
	// DefaultMaxResponseBytes caps how much of a response body is read (10MB)
	DefaultMaxResponseBytes = 10 * 1024 * 1024
	// DefaultAuthPath is appended to the API URL when no auth URL is set
	DefaultAuthPath = "/api/auth"
)

// Errors for client configuration
var (
	ErrConfigMissingBaseURL = errors.New("medistore: api base url is required")
	ErrConfigInvalidURL     = errors.New("medistore: base url must be absolute")
)

// ClientConfig configures the remote API client
type ClientConfig struct {
	// BaseURL is the MediStore API root, e.g. https://api.medistore.com.bd
	BaseURL string
	// AuthURL is the auth service root serving /get-session
	AuthURL string
	// Timeout is the HTTP client timeout
	Timeout time.Duration
	// MaxResponseBytes caps response bodies
	MaxResponseBytes int64
}

// Validate checks the configuration and fills defaults
func (c *ClientConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrConfigMissingBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if !absolute(c.BaseURL) {
		return ErrConfigInvalidURL
	}
	if c.AuthURL == "" {
		c.AuthURL = c.BaseURL + DefaultAuthPath
	}
	c.AuthURL = strings.TrimRight(c.AuthURL, "/")
	if !absolute(c.AuthURL) {
		return ErrConfigInvalidURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = DefaultMaxResponseBytes
	}
	return nil
}

func absolute(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
