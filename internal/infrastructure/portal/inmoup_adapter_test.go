package portal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobiliaria/backend/internal/domain/portal"
)

func newInmoupTestAdapter(t *testing.T, handler http.HandlerFunc) (*InmoupAdapter, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := NewInmoupConfig(server.URL, "test-key", "https://inmobiliaria.example.com")
	return NewInmoupAdapter(cfg, nil), server
}

func TestInmoupAdapter_Publish(t *testing.T) {
	t.Run("success with array envelope", func(t *testing.T) {
		var captured []map[string]any
		adapter, _ := newInmoupTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/propiedades", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"propiedades":[{"id":98765,"url":"https://inmoup.com.ar/p/98765"}]}`))
		})

		p := testInmoupProperty(t)
		result, err := adapter.Publish(context.Background(), &portal.PublishRequest{Property: p, Images: p.Images()})
		require.NoError(t, err)

		assert.Equal(t, "98765", result.ExternalID)
		assert.Equal(t, "https://inmoup.com.ar/p/98765", result.ExternalURL)

		// The create payload travels wrapped in a one-element array.
		require.Len(t, captured, 1)
		assert.Equal(t, "Casa 3 dormitorios zona este", captured[0]["titulo"])
	})

	t.Run("validation failure never reaches the wire", func(t *testing.T) {
		called := false
		adapter, _ := newInmoupTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		p := testInmoupProperty(t)
		p.Gallery = nil

		_, err := adapter.Publish(context.Background(), &portal.PublishRequest{Property: p, Images: p.Images()})

		var vErr *portal.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Violations, "at least one image is required")
		assert.False(t, called)
	})

	t.Run("non-2xx maps to upstream error", func(t *testing.T) {
		adapter, _ := newInmoupTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message":"mantenimiento programado"}`))
		})

		p := testInmoupProperty(t)
		_, err := adapter.Publish(context.Background(), &portal.PublishRequest{Property: p, Images: p.Images()})

		var uErr *portal.UpstreamError
		require.ErrorAs(t, err, &uErr)
		assert.Equal(t, http.StatusBadGateway, uErr.StatusCode)
		assert.Equal(t, "mantenimiento programado", uErr.Message)
	})

	t.Run("2xx with embedded errors maps to rejection", func(t *testing.T) {
		adapter, _ := newInmoupTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"errores":["precio fuera de rango","barrio inexistente"]}`))
		})

		p := testInmoupProperty(t)
		_, err := adapter.Publish(context.Background(), &portal.PublishRequest{Property: p, Images: p.Images()})

		var rErr *portal.RejectionError
		require.ErrorAs(t, err, &rErr)
		assert.Equal(t, []string{"precio fuera de rango", "barrio inexistente"}, rErr.Messages)
	})

	t.Run("2xx with no published items", func(t *testing.T) {
		adapter, _ := newInmoupTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"propiedades":[]}`))
		})

		p := testInmoupProperty(t)
		_, err := adapter.Publish(context.Background(), &portal.PublishRequest{Property: p, Images: p.Images()})
		assert.ErrorIs(t, err, portal.ErrEmptyResponse)
	})

	t.Run("missing api key fails before the wire", func(t *testing.T) {
		cfg := NewInmoupConfig("https://api.inmoup.com.ar", "", "")
		adapter := NewInmoupAdapter(cfg, nil)

		p := testInmoupProperty(t)
		_, err := adapter.Publish(context.Background(), &portal.PublishRequest{Property: p, Images: p.Images()})

		var cErr *portal.CredentialError
		require.ErrorAs(t, err, &cErr)
	})
}

func TestInmoupAdapter_Sync(t *testing.T) {
	t.Run("puts the bare listing at the remote id", func(t *testing.T) {
		var captured map[string]any
		adapter, _ := newInmoupTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/propiedades/98765", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_, _ = w.Write([]byte(`{}`))
		})

		p := testInmoupProperty(t)
		result, err := adapter.Sync(context.Background(), &portal.PublishRequest{
			Property:   p,
			Images:     p.Images(),
			ExternalID: "98765",
		})
		require.NoError(t, err)

		assert.Equal(t, "98765", result.ExternalID)
		assert.Equal(t, "98765", captured["id"])
	})

	t.Run("requires an external id", func(t *testing.T) {
		adapter, _ := newInmoupTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {})
		p := testInmoupProperty(t)

		_, err := adapter.Sync(context.Background(), &portal.PublishRequest{Property: p, Images: p.Images()})
		assert.ErrorIs(t, err, portal.ErrNotPublished)
	})
}

func TestInmoupAdapter_Remove(t *testing.T) {
	t.Run("transitions the remote state", func(t *testing.T) {
		var captured map[string]any
		adapter, _ := newInmoupTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/propiedades/98765/estado", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			_, _ = w.Write([]byte(`{}`))
		})

		err := adapter.Remove(context.Background(), "98765")
		require.NoError(t, err)
		assert.Equal(t, float64(inmoupRemovedStateID), captured["estado"])
	})

	t.Run("surfaces upstream failures", func(t *testing.T) {
		adapter, _ := newInmoupTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"propiedad inexistente"}`))
		})

		err := adapter.Remove(context.Background(), "98765")

		var uErr *portal.UpstreamError
		require.ErrorAs(t, err, &uErr)
		assert.Equal(t, http.StatusNotFound, uErr.StatusCode)
	})
}
