package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/inmobiliaria/backend/internal/domain/portal"
)

// maxResponseBody bounds how much of a portal response is read.
const maxResponseBody = 10 * 1024 * 1024

// InmoupAdapter publishes property listings to the InmoUp classifieds
// portal. Every call is a single synchronous attempt.
type InmoupAdapter struct {
	config     *InmoupConfig
	httpClient *http.Client
	logger     *zap.Logger
}

var _ portal.Publisher = (*InmoupAdapter)(nil)

// NewInmoupAdapter creates an adapter for the given config
func NewInmoupAdapter(config *InmoupConfig, logger *zap.Logger) *InmoupAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InmoupAdapter{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}
}

// Code returns the portal code
func (a *InmoupAdapter) Code() portal.Code {
	return portal.CodeInmoup
}

// Capabilities describes the InmoUp integration
func (a *InmoupAdapter) Capabilities() portal.Capabilities {
	return portal.Capabilities{
		Portal:         portal.CodeInmoup,
		DisplayName:    portal.CodeInmoup.DisplayName(),
		Actions:        []string{"publish", "sync", "remove"},
		AuthMode:       "api_key",
		MaxTitleLength: inmoupMaxTitleLength,
		RequiresImages: true,
		SoftDelete:     true,
	}
}

// Publish creates the listing on InmoUp. The portal expects create
// payloads wrapped in a one-element array envelope.
func (a *InmoupAdapter) Publish(ctx context.Context, req *portal.PublishRequest) (*portal.PublishResult, error) {
	payload := mapInmoupListing(a.config, req)
	if violations := validateInmoupListing(payload); len(violations) > 0 {
		return nil, &portal.ValidationError{Portal: portal.CodeInmoup, Violations: violations}
	}
	if err := a.config.Validate(); err != nil {
		return nil, &portal.CredentialError{Portal: portal.CodeInmoup, Reason: err.Error()}
	}

	body, err := payload.body()
	if err != nil {
		return nil, err
	}

	resp, err := a.doRequest(ctx, http.MethodPost, a.config.BaseURL+"/propiedades", []any{body})
	if err != nil {
		return nil, err
	}
	if len(resp.Propiedades) == 0 {
		return nil, portal.ErrEmptyResponse
	}

	item := resp.Propiedades[0]
	result := &portal.PublishResult{
		ExternalID:  idToString(item.ID),
		ExternalURL: item.URL,
		Raw:         map[string]any{"propiedades": resp.Propiedades},
	}
	a.logger.Info("inmoup listing published",
		zap.String("property_id", req.Property.ID.String()),
		zap.String("external_id", result.ExternalID))
	return result, nil
}

// Sync updates the remote listing addressed by req.ExternalID
func (a *InmoupAdapter) Sync(ctx context.Context, req *portal.PublishRequest) (*portal.PublishResult, error) {
	if req.ExternalID == "" {
		return nil, portal.ErrNotPublished
	}

	payload := mapInmoupListing(a.config, req)
	if violations := validateInmoupListing(payload); len(violations) > 0 {
		return nil, &portal.ValidationError{Portal: portal.CodeInmoup, Violations: violations}
	}
	if err := a.config.Validate(); err != nil {
		return nil, &portal.CredentialError{Portal: portal.CodeInmoup, Reason: err.Error()}
	}

	body, err := payload.body()
	if err != nil {
		return nil, err
	}

	resp, err := a.doRequest(ctx, http.MethodPut, a.config.BaseURL+"/propiedades/"+req.ExternalID, body)
	if err != nil {
		return nil, err
	}

	result := &portal.PublishResult{ExternalID: req.ExternalID}
	if len(resp.Propiedades) > 0 {
		if url := resp.Propiedades[0].URL; url != "" {
			result.ExternalURL = url
		}
	}
	a.logger.Info("inmoup listing synced",
		zap.String("property_id", req.Property.ID.String()),
		zap.String("external_id", req.ExternalID))
	return result, nil
}

// Remove takes the listing down by transitioning its remote state.
// InmoUp never hard-deletes listings.
func (a *InmoupAdapter) Remove(ctx context.Context, externalID string) error {
	if err := a.config.Validate(); err != nil {
		return &portal.CredentialError{Portal: portal.CodeInmoup, Reason: err.Error()}
	}
	if externalID == "" {
		return portal.ErrNotPublished
	}

	body := map[string]any{"estado": inmoupRemovedStateID}
	if _, err := a.doRequest(ctx, http.MethodPut, a.config.BaseURL+"/propiedades/"+externalID+"/estado", body); err != nil {
		return err
	}
	a.logger.Info("inmoup listing removed", zap.String("external_id", externalID))
	return nil
}

// doRequest performs one HTTP call and decodes the portal response.
// Non-2xx statuses and 2xx bodies with embedded errors both fail.
func (a *InmoupAdapter) doRequest(ctx context.Context, method, url string, body any) (*inmoupResponse, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("portal: marshal inmoup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("portal: build inmoup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", a.config.APIKey)

	httpResp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portal: inmoup request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("portal: read inmoup response: %w", err)
	}

	var resp inmoupResponse
	if len(respBody) > 0 {
		// A non-JSON body is still useful as an error message, so the
		// decode error is not fatal on failed statuses.
		_ = json.Unmarshal(respBody, &resp)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		msg := resp.ErrorMessage()
		if msg == "" {
			msg = string(respBody)
		}
		return nil, &portal.UpstreamError{Portal: portal.CodeInmoup, StatusCode: httpResp.StatusCode, Message: msg}
	}
	if !resp.IsSuccess() {
		return nil, &portal.RejectionError{Portal: portal.CodeInmoup, Messages: resp.ErrorMessages()}
	}
	return &resp, nil
}

// idToString normalizes the portal's id field, which arrives as a
// string or a JSON number depending on the endpoint
func idToString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}
