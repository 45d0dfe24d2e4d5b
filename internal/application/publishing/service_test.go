package publishing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobiliaria/backend/internal/domain/listing"
	"github.com/inmobiliaria/backend/internal/domain/portal"
)

// --- fakes ---

type fakePropertyRepo struct {
	properties map[uuid.UUID]*listing.Property
	saveErr    error
	saves      int
}

func newFakePropertyRepo(props ...*listing.Property) *fakePropertyRepo {
	repo := &fakePropertyRepo{properties: make(map[uuid.UUID]*listing.Property)}
	for _, p := range props {
		repo.properties[p.ID] = p
	}
	return repo
}

func (r *fakePropertyRepo) FindByID(_ context.Context, id uuid.UUID) (*listing.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, listing.ErrPropertyNotFound
	}
	return p, nil
}

func (r *fakePropertyRepo) List(_ context.Context, _ listing.Filter) ([]*listing.Property, error) {
	var out []*listing.Property
	for _, p := range r.properties {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePropertyRepo) Count(_ context.Context, _ listing.Filter) (int64, error) {
	return int64(len(r.properties)), nil
}

func (r *fakePropertyRepo) Create(_ context.Context, p *listing.Property) error {
	r.properties[p.ID] = p
	return nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *listing.Property) error {
	r.properties[p.ID] = p
	return nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.properties, id)
	return nil
}

func (r *fakePropertyRepo) SavePortalStatus(_ context.Context, propertyID uuid.UUID, status *listing.PortalStatus) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	p, ok := r.properties[propertyID]
	if !ok {
		return listing.ErrPropertyNotFound
	}
	copied := *status
	p.Portals[status.Portal] = &copied
	return nil
}

type fakePublisher struct {
	code       portal.Code
	publishRes *portal.PublishResult
	publishErr error
	syncRes    *portal.PublishResult
	syncErr    error
	removeErr  error
	lastReq    *portal.PublishRequest
	removedID  string
}

func (f *fakePublisher) Code() portal.Code { return f.code }

func (f *fakePublisher) Capabilities() portal.Capabilities {
	return portal.Capabilities{Portal: f.code, Actions: []string{"publish", "sync", "remove"}}
}

func (f *fakePublisher) Publish(_ context.Context, req *portal.PublishRequest) (*portal.PublishResult, error) {
	f.lastReq = req
	return f.publishRes, f.publishErr
}

func (f *fakePublisher) Sync(_ context.Context, req *portal.PublishRequest) (*portal.PublishResult, error) {
	f.lastReq = req
	return f.syncRes, f.syncErr
}

func (f *fakePublisher) Remove(_ context.Context, externalID string) error {
	f.removedID = externalID
	return f.removeErr
}

// --- helpers ---

func testProperty(t *testing.T) *listing.Property {
	t.Helper()
	p, err := listing.NewProperty("Casa 3 dormitorios", listing.Classification{
		Type:      listing.TypeCasa,
		Condition: listing.OperationVenta,
	})
	require.NoError(t, err)
	p.Characteristics.Price = decimal.NewFromInt(150000)
	p.Gallery = []listing.Image{{URL: "/media/1.jpg"}}
	return p
}

func newTestService(repo *fakePropertyRepo, pub portal.Publisher) *Service {
	registry := portal.NewRegistry()
	registry.Register(pub)
	rec := NewStatusReconciler(repo, nil)
	return NewService(repo, nil, registry, rec, nil)
}

func publishedProperty(t *testing.T, repo *fakePropertyRepo, code portal.Code, externalID string) *listing.Property {
	t.Helper()
	p := testProperty(t)
	st := p.PortalState(code.String())
	require.NoError(t, st.MarkQueued())
	require.NoError(t, st.MarkPublished(externalID, "https://portal/p/"+externalID, time.Now()))
	repo.properties[p.ID] = p
	return p
}

// --- tests ---

func TestService_Publish(t *testing.T) {
	t.Run("success reconciles to ok with external references", func(t *testing.T) {
		p := testProperty(t)
		repo := newFakePropertyRepo(p)
		pub := &fakePublisher{
			code:       portal.CodeInmoup,
			publishRes: &portal.PublishResult{ExternalID: "555", ExternalURL: "https://inmoup.com.ar/p/555"},
		}
		svc := newTestService(repo, pub)

		outcome, err := svc.Publish(context.Background(), portal.CodeInmoup, Request{PropertyID: p.ID})
		require.NoError(t, err)

		assert.Equal(t, "555", outcome.Result.ExternalID)
		assert.Equal(t, listing.StatusOK, outcome.Status.Status)
		assert.True(t, outcome.Status.Uploaded)

		stored := repo.properties[p.ID].Portals["inmoup"]
		require.NotNil(t, stored)
		assert.Equal(t, listing.StatusOK, stored.Status)
		require.NotNil(t, stored.ExternalID)
		assert.Equal(t, "555", *stored.ExternalID)
		assert.True(t, stored.Uploaded)
		assert.NotNil(t, stored.LastSyncAt)
	})

	t.Run("failure leaves a clean error state", func(t *testing.T) {
		p := testProperty(t)
		repo := newFakePropertyRepo(p)
		pub := &fakePublisher{
			code:       portal.CodeInmoup,
			publishErr: &portal.UpstreamError{Portal: portal.CodeInmoup, StatusCode: 502, Message: "boom"},
		}
		svc := newTestService(repo, pub)

		outcome, err := svc.Publish(context.Background(), portal.CodeInmoup, Request{PropertyID: p.ID})
		require.Error(t, err)
		require.NotNil(t, outcome)

		assert.Equal(t, listing.StatusError, outcome.Status.Status)

		stored := repo.properties[p.ID].Portals["inmoup"]
		assert.Equal(t, listing.StatusError, stored.Status)
		assert.Nil(t, stored.ExternalID)
		assert.False(t, stored.Uploaded)
		require.NotNil(t, stored.LastError)
		assert.Contains(t, *stored.LastError, "boom")
	})

	t.Run("unknown property", func(t *testing.T) {
		repo := newFakePropertyRepo()
		svc := newTestService(repo, &fakePublisher{code: portal.CodeInmoup})

		_, err := svc.Publish(context.Background(), portal.CodeInmoup, Request{PropertyID: uuid.New()})
		assert.ErrorIs(t, err, listing.ErrPropertyNotFound)
	})

	t.Run("unregistered portal", func(t *testing.T) {
		repo := newFakePropertyRepo()
		svc := newTestService(repo, &fakePublisher{code: portal.CodeInmoup})

		_, err := svc.Publish(context.Background(), portal.CodeMercadoLibre, Request{PropertyID: uuid.New()})
		assert.ErrorIs(t, err, portal.ErrPortalNotRegistered)
	})

	t.Run("override property data reaches the publisher", func(t *testing.T) {
		p := testProperty(t)
		repo := newFakePropertyRepo(p)
		pub := &fakePublisher{
			code:       portal.CodeInmoup,
			publishRes: &portal.PublishResult{ExternalID: "1"},
		}
		svc := newTestService(repo, pub)

		edited := *p
		edited.Title = "Título editado sin guardar"

		_, err := svc.Publish(context.Background(), portal.CodeInmoup, Request{PropertyID: p.ID, Property: &edited})
		require.NoError(t, err)
		assert.Equal(t, "Título editado sin guardar", pub.lastReq.Property.Title)
	})
}

func TestService_Sync(t *testing.T) {
	t.Run("success keeps references and returns to ok", func(t *testing.T) {
		repo := newFakePropertyRepo()
		p := publishedProperty(t, repo, portal.CodeMercadoLibre, "MLA9")
		pub := &fakePublisher{
			code:    portal.CodeMercadoLibre,
			syncRes: &portal.PublishResult{ExternalID: "MLA9"},
		}
		svc := newTestService(repo, pub)

		outcome, err := svc.Sync(context.Background(), portal.CodeMercadoLibre, Request{PropertyID: p.ID})
		require.NoError(t, err)

		assert.Equal(t, "MLA9", pub.lastReq.ExternalID)
		assert.Equal(t, listing.StatusOK, outcome.Status.Status)

		stored := repo.properties[p.ID].Portals["mercadolibre"]
		require.NotNil(t, stored.ExternalURL)
		assert.Equal(t, "https://portal/p/MLA9", *stored.ExternalURL)
	})

	t.Run("failure keeps references and lands on error", func(t *testing.T) {
		repo := newFakePropertyRepo()
		p := publishedProperty(t, repo, portal.CodeMercadoLibre, "MLA9")
		pub := &fakePublisher{
			code:    portal.CodeMercadoLibre,
			syncErr: &portal.RejectionError{Portal: portal.CodeMercadoLibre, Messages: []string{"bad attribute"}},
		}
		svc := newTestService(repo, pub)

		outcome, err := svc.Sync(context.Background(), portal.CodeMercadoLibre, Request{PropertyID: p.ID})
		require.Error(t, err)
		require.NotNil(t, outcome)
		assert.Equal(t, listing.StatusError, outcome.Status.Status)

		stored := repo.properties[p.ID].Portals["mercadolibre"]
		// The references roll back; the record itself reports the
		// failure so a retry can be offered.
		assert.Equal(t, listing.StatusError, stored.Status)
		require.NotNil(t, stored.ExternalID)
		assert.Equal(t, "MLA9", *stored.ExternalID)
		require.NotNil(t, stored.ExternalURL)
		assert.Equal(t, "https://portal/p/MLA9", *stored.ExternalURL)
		assert.True(t, stored.Uploaded)
		require.NotNil(t, stored.LastError)
		assert.Contains(t, *stored.LastError, "bad attribute")
		assert.NotNil(t, stored.LastSyncAt)
	})

	t.Run("sync of an unpublished listing", func(t *testing.T) {
		p := testProperty(t)
		repo := newFakePropertyRepo(p)
		svc := newTestService(repo, &fakePublisher{code: portal.CodeMercadoLibre})

		_, err := svc.Sync(context.Background(), portal.CodeMercadoLibre, Request{PropertyID: p.ID})
		assert.ErrorIs(t, err, portal.ErrNotPublished)
	})
}

func TestService_Remove(t *testing.T) {
	t.Run("success clears references and returns to not_sent", func(t *testing.T) {
		repo := newFakePropertyRepo()
		p := publishedProperty(t, repo, portal.CodeInmoup, "777")
		pub := &fakePublisher{code: portal.CodeInmoup}
		svc := newTestService(repo, pub)

		outcome, err := svc.Remove(context.Background(), portal.CodeInmoup, p.ID)
		require.NoError(t, err)

		assert.Equal(t, "777", pub.removedID)
		assert.Equal(t, listing.StatusNotSent, outcome.Status.Status)

		stored := repo.properties[p.ID].Portals["inmoup"]
		assert.Equal(t, listing.StatusNotSent, stored.Status)
		assert.Nil(t, stored.ExternalID)
		assert.Nil(t, stored.ExternalURL)
		assert.False(t, stored.Uploaded)
		assert.Nil(t, stored.LastError)
	})

	t.Run("failure keeps references and lands on error", func(t *testing.T) {
		repo := newFakePropertyRepo()
		p := publishedProperty(t, repo, portal.CodeInmoup, "777")
		pub := &fakePublisher{
			code:      portal.CodeInmoup,
			removeErr: errors.New("connection reset"),
		}
		svc := newTestService(repo, pub)

		_, err := svc.Remove(context.Background(), portal.CodeInmoup, p.ID)
		require.Error(t, err)

		stored := repo.properties[p.ID].Portals["inmoup"]
		assert.Equal(t, listing.StatusError, stored.Status)
		require.NotNil(t, stored.ExternalID)
		assert.Equal(t, "777", *stored.ExternalID)
		assert.True(t, stored.Uploaded)
		require.NotNil(t, stored.LastError)
	})

	t.Run("remove of an unpublished listing", func(t *testing.T) {
		p := testProperty(t)
		repo := newFakePropertyRepo(p)
		svc := newTestService(repo, &fakePublisher{code: portal.CodeInmoup})

		_, err := svc.Remove(context.Background(), portal.CodeInmoup, p.ID)
		assert.ErrorIs(t, err, portal.ErrNotPublished)
	})
}

func TestService_AllCapabilities(t *testing.T) {
	repo := newFakePropertyRepo()
	registry := portal.NewRegistry()
	registry.Register(&fakePublisher{code: portal.CodeMercadoLibre})
	registry.Register(&fakePublisher{code: portal.CodeInmoup})
	svc := NewService(repo, nil, registry, NewStatusReconciler(repo, nil), nil)

	caps := svc.AllCapabilities()
	require.Len(t, caps, 2)
	// Stable order by code.
	assert.Equal(t, portal.CodeInmoup, caps[0].Portal)
	assert.Equal(t, portal.CodeMercadoLibre, caps[1].Portal)
}
