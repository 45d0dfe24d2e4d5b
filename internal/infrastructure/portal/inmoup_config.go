package portal

import (
	"errors"
	"time"
)

var (
	ErrInmoupConfigMissingBaseURL = errors.New("portal: inmoup config missing base url")
	ErrInmoupConfigMissingAPIKey  = errors.New("portal: inmoup config missing api key")
)

// defaultInmoupTimeout bounds the single synchronous attempt made per
// portal call.
const defaultInmoupTimeout = 30 * time.Second

// InmoupConfig holds the credentials and endpoints of the InmoUp
// classifieds portal. Auth is a static API key sent on every request.
type InmoupConfig struct {
	BaseURL string
	APIKey  string

	// SiteBaseURL absolutizes relative media URLs before publishing.
	SiteBaseURL string

	Timeout time.Duration
}

// NewInmoupConfig creates a config with the default timeout
func NewInmoupConfig(baseURL, apiKey, siteBaseURL string) *InmoupConfig {
	return &InmoupConfig{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		SiteBaseURL: siteBaseURL,
		Timeout:     defaultInmoupTimeout,
	}
}

// Validate checks that the required fields are present
func (c *InmoupConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrInmoupConfigMissingBaseURL
	}
	if c.APIKey == "" {
		return ErrInmoupConfigMissingAPIKey
	}
	return nil
}
