package portal

import (
	"context"
	"sort"
	"sync"

	"github.com/inmobiliaria/backend/internal/domain/client"
	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// Code identifies an external marketplace
type Code string

const (
	CodeInmoup       Code = "inmoup"
	CodeMercadoLibre Code = "mercadolibre"
)

// IsValid checks whether the code is a known portal
func (c Code) IsValid() bool {
	switch c {
	case CodeInmoup, CodeMercadoLibre:
		return true
	}
	return false
}

func (c Code) String() string {
	return string(c)
}

// DisplayName returns a human-readable portal name
func (c Code) DisplayName() string {
	switch c {
	case CodeInmoup:
		return "InmoUp"
	case CodeMercadoLibre:
		return "Mercado Libre"
	default:
		return string(c)
	}
}

// PublishRequest carries everything a publisher needs to build and
// send one listing. Images are already absolutized.
type PublishRequest struct {
	Property *listing.Property
	Owner    *client.Client
	Images   []listing.Image

	// ExternalID routes update and remove calls. Empty on create.
	ExternalID string
}

// PublishResult is the outcome of a successful create or sync call
type PublishResult struct {
	ExternalID  string
	ExternalURL string

	// Raw is the decoded portal response body, passed through to the
	// caller for diagnostics.
	Raw map[string]any
}

// Capabilities describes what a portal integration supports, served
// by the capability endpoint.
type Capabilities struct {
	Portal         Code     `json:"portal"`
	DisplayName    string   `json:"displayName"`
	Actions        []string `json:"actions"`
	AuthMode       string   `json:"authMode"`
	MaxTitleLength int      `json:"maxTitleLength"`
	RequiresImages bool     `json:"requiresImages"`
	SoftDelete     bool     `json:"softDelete"`
}

// Publisher is the outbound port to one marketplace. Implementations
// make a single synchronous attempt per call; retrying is the
// caller's business, and none is done today.
type Publisher interface {
	Code() Code
	Capabilities() Capabilities

	// Publish creates the listing remotely.
	Publish(ctx context.Context, req *PublishRequest) (*PublishResult, error)

	// Sync updates the existing remote listing addressed by
	// req.ExternalID.
	Sync(ctx context.Context, req *PublishRequest) (*PublishResult, error)

	// Remove takes the remote listing down. Removal is soft on every
	// supported portal: a status transition, not a hard delete.
	Remove(ctx context.Context, externalID string) error
}

// Registry holds the configured publishers keyed by portal code
type Registry struct {
	mu         sync.RWMutex
	publishers map[Code]Publisher
}

// NewRegistry creates an empty publisher registry
func NewRegistry() *Registry {
	return &Registry{publishers: make(map[Code]Publisher)}
}

// Register adds or replaces the publisher for its portal code
func (r *Registry) Register(p Publisher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publishers[p.Code()] = p
}

// Get returns the publisher for a portal code
func (r *Registry) Get(code Code) (Publisher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.publishers[code]
	if !ok {
		return nil, ErrPortalNotRegistered
	}
	return p, nil
}

// Codes returns the registered portal codes in stable order
func (r *Registry) Codes() []Code {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]Code, 0, len(r.publishers))
	for c := range r.publishers {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
