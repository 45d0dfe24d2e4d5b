package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inmobiliaria/backend/internal/domain/portal"
	"github.com/inmobiliaria/backend/internal/infrastructure/cache"
)

// meliTokenCacheKey is the token store key for this integration.
const meliTokenCacheKey = "mercadolibre"

// meliTokenSafety is subtracted from the reported token lifetime so a
// cached token is never used right at its expiry edge.
const meliTokenSafety = 5 * time.Minute

// MeliAdapter publishes property listings to Mercado Libre. Access
// tokens come from the config when static, or from the OAuth2
// refresh-token grant, cached in the token store. Update and remove
// calls are addressed by the numeric user id looked up at /users/me.
type MeliAdapter struct {
	config     *MeliConfig
	httpClient *http.Client
	tokens     cache.TokenStore
	logger     *zap.Logger
}

var _ portal.Publisher = (*MeliAdapter)(nil)

// NewMeliAdapter creates an adapter for the given config
func NewMeliAdapter(config *MeliConfig, tokens cache.TokenStore, logger *zap.Logger) *MeliAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokens == nil {
		tokens = cache.NewInMemoryTokenStore()
	}
	return &MeliAdapter{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		tokens:     tokens,
		logger:     logger,
	}
}

// Code returns the portal code
func (a *MeliAdapter) Code() portal.Code {
	return portal.CodeMercadoLibre
}

// Capabilities describes the Mercado Libre integration
func (a *MeliAdapter) Capabilities() portal.Capabilities {
	return portal.Capabilities{
		Portal:         portal.CodeMercadoLibre,
		DisplayName:    portal.CodeMercadoLibre.DisplayName(),
		Actions:        []string{"publish", "sync", "remove"},
		AuthMode:       "oauth2_refresh_token",
		MaxTitleLength: meliMaxTitleLength,
		RequiresImages: true,
		SoftDelete:     true,
	}
}

// Publish creates the listing as a new item
func (a *MeliAdapter) Publish(ctx context.Context, req *portal.PublishRequest) (*portal.PublishResult, error) {
	item := mapMeliItem(a.config, req)
	if violations := validateMeliItem(item); len(violations) > 0 {
		return nil, &portal.ValidationError{Portal: portal.CodeMercadoLibre, Violations: violations}
	}

	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := item.body()
	if err != nil {
		return nil, err
	}

	resp, err := a.doRequest(ctx, http.MethodPost, a.config.BaseURL+"/items", token, body)
	if err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, portal.ErrEmptyResponse
	}

	result := &portal.PublishResult{
		ExternalID:  resp.ID,
		ExternalURL: resp.Permalink,
		Raw:         map[string]any{"id": resp.ID, "permalink": resp.Permalink, "status": resp.Status},
	}
	a.logger.Info("mercadolibre item published",
		zap.String("property_id", req.Property.ID.String()),
		zap.String("item_id", resp.ID))
	return result, nil
}

// Sync updates the existing item addressed by req.ExternalID. The
// site requires the owning user id on edit routes, so the numeric id
// is resolved first.
func (a *MeliAdapter) Sync(ctx context.Context, req *portal.PublishRequest) (*portal.PublishResult, error) {
	if req.ExternalID == "" {
		return nil, portal.ErrNotPublished
	}

	upd := mapMeliItemUpdate(a.config, req)
	if violations := validateMeliItemUpdate(upd); len(violations) > 0 {
		return nil, &portal.ValidationError{Portal: portal.CodeMercadoLibre, Violations: violations}
	}

	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	userID, err := a.currentUserID(ctx, token)
	if err != nil {
		return nil, err
	}

	body, err := upd.body()
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/users/%d/items/%s", a.config.BaseURL, userID, req.ExternalID)
	resp, err := a.doRequest(ctx, http.MethodPut, endpoint, token, body)
	if err != nil {
		return nil, err
	}

	result := &portal.PublishResult{ExternalID: req.ExternalID, ExternalURL: resp.Permalink}
	a.logger.Info("mercadolibre item synced",
		zap.String("property_id", req.Property.ID.String()),
		zap.String("item_id", req.ExternalID))
	return result, nil
}

// Remove closes the item. Closing is the site's takedown: items are
// never hard-deleted.
func (a *MeliAdapter) Remove(ctx context.Context, externalID string) error {
	if externalID == "" {
		return portal.ErrNotPublished
	}

	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}
	userID, err := a.currentUserID(ctx, token)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/users/%d/items/%s", a.config.BaseURL, userID, externalID)
	if _, err := a.doRequest(ctx, http.MethodPut, endpoint, token, map[string]any{"status": "closed"}); err != nil {
		return err
	}
	a.logger.Info("mercadolibre item closed", zap.String("item_id", externalID))
	return nil
}

// accessToken resolves a usable token: static config token first,
// then the cache, then a refresh-token grant.
func (a *MeliAdapter) accessToken(ctx context.Context) (string, error) {
	if err := a.config.Validate(); err != nil {
		return "", &portal.CredentialError{Portal: portal.CodeMercadoLibre, Reason: err.Error()}
	}
	if a.config.AccessToken != "" {
		return a.config.AccessToken, nil
	}

	if cached, err := a.tokens.Get(ctx, meliTokenCacheKey); err != nil {
		a.logger.Warn("token cache read failed", zap.Error(err))
	} else if cached != "" {
		return cached, nil
	}

	return a.refreshAccessToken(ctx)
}

// refreshAccessToken exchanges the refresh token for an access token
// at the fixed OAuth2 token endpoint
func (a *MeliAdapter) refreshAccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", a.config.ClientID)
	form.Set("client_secret", a.config.ClientSecret)
	form.Set("refresh_token", a.config.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("portal: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	httpResp, err := a.httpClient.Do(req)
	if err != nil {
		return "", &portal.CredentialError{Portal: portal.CodeMercadoLibre, Reason: err.Error()}
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return "", fmt.Errorf("portal: read token response: %w", err)
	}

	var tok meliTokenResponse
	_ = json.Unmarshal(respBody, &tok)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 || tok.AccessToken == "" {
		reason := tok.Message
		if reason == "" {
			reason = tok.Error
		}
		if reason == "" {
			reason = fmt.Sprintf("token endpoint responded %d", httpResp.StatusCode)
		}
		return "", &portal.CredentialError{Portal: portal.CodeMercadoLibre, Reason: reason}
	}

	ttl := time.Duration(tok.ExpiresIn)*time.Second - meliTokenSafety
	if ttl > 0 {
		if err := a.tokens.Set(ctx, meliTokenCacheKey, tok.AccessToken, ttl); err != nil {
			a.logger.Warn("token cache write failed", zap.Error(err))
		}
	}
	return tok.AccessToken, nil
}

// currentUserID looks up the numeric id of the authenticated user
func (a *MeliAdapter) currentUserID(ctx context.Context, token string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.BaseURL+"/users/me", nil)
	if err != nil {
		return 0, fmt.Errorf("portal: build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	httpResp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("portal: user lookup failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return 0, fmt.Errorf("portal: read user response: %w", err)
	}

	var user meliUserResponse
	_ = json.Unmarshal(respBody, &user)

	if httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden {
		// The cached token may have been revoked upstream.
		_ = a.tokens.Delete(ctx, meliTokenCacheKey)
		reason := user.Message
		if reason == "" {
			reason = "user lookup unauthorized"
		}
		return 0, &portal.CredentialError{Portal: portal.CodeMercadoLibre, Reason: reason}
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return 0, &portal.UpstreamError{Portal: portal.CodeMercadoLibre, StatusCode: httpResp.StatusCode, Message: user.Message}
	}
	if user.ID == 0 {
		return 0, portal.ErrEmptyResponse
	}
	return user.ID, nil
}

// doRequest performs one authenticated item call and decodes the
// response. Non-2xx statuses and 2xx bodies with embedded errors both
// fail.
func (a *MeliAdapter) doRequest(ctx context.Context, method, endpoint, token string, body any) (*meliItemResponse, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("portal: marshal mercadolibre request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("portal: build mercadolibre request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	httpResp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portal: mercadolibre request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("portal: read mercadolibre response: %w", err)
	}

	var resp meliItemResponse
	if len(respBody) > 0 {
		_ = json.Unmarshal(respBody, &resp)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		msg := resp.ErrorMessage()
		if msg == "" {
			msg = strconv.Itoa(httpResp.StatusCode) + " " + http.StatusText(httpResp.StatusCode)
		}
		return nil, &portal.UpstreamError{Portal: portal.CodeMercadoLibre, StatusCode: httpResp.StatusCode, Message: msg}
	}
	if !resp.IsSuccess() {
		return nil, &portal.RejectionError{Portal: portal.CodeMercadoLibre, Messages: resp.ErrorMessages()}
	}
	return &resp, nil
}
