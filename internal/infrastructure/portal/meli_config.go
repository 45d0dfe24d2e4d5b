package portal

import (
	"errors"
	"time"
)

var (
	ErrMeliConfigMissingClientID     = errors.New("portal: mercadolibre config missing client id")
	ErrMeliConfigMissingClientSecret = errors.New("portal: mercadolibre config missing client secret")
	ErrMeliConfigMissingCredentials  = errors.New("portal: mercadolibre config needs an access token or a refresh token")
)

const (
	defaultMeliBaseURL  = "https://api.mercadolibre.com"
	defaultMeliTokenURL = "https://api.mercadolibre.com/oauth/token"
	defaultMeliSiteID   = "MLA"
	defaultMeliTimeout  = 30 * time.Second
)

// MeliConfig holds the Mercado Libre application credentials. A
// static access token is used when present; otherwise one is obtained
// through the OAuth2 refresh-token grant against TokenURL.
type MeliConfig struct {
	BaseURL      string
	TokenURL     string
	SiteID       string
	AccessToken  string
	RefreshToken string
	ClientID     string
	ClientSecret string

	// SiteBaseURL absolutizes relative media URLs before publishing.
	SiteBaseURL string

	Timeout time.Duration
}

// NewMeliConfig creates a config against the production API
func NewMeliConfig(clientID, clientSecret, accessToken, refreshToken, siteBaseURL string) *MeliConfig {
	return &MeliConfig{
		BaseURL:      defaultMeliBaseURL,
		TokenURL:     defaultMeliTokenURL,
		SiteID:       defaultMeliSiteID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		SiteBaseURL:  siteBaseURL,
		Timeout:      defaultMeliTimeout,
	}
}

// Validate checks that a usable credential set is present
func (c *MeliConfig) Validate() error {
	if c.AccessToken != "" {
		return nil
	}
	if c.RefreshToken == "" {
		return ErrMeliConfigMissingCredentials
	}
	if c.ClientID == "" {
		return ErrMeliConfigMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrMeliConfigMissingClientSecret
	}
	return nil
}
