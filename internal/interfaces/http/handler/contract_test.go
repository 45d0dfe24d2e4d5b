package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractapp "github.com/inmobiliaria/backend/internal/application/contract"
	"github.com/inmobiliaria/backend/internal/domain/contract"
	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// stubContractRepo serves a single contract record
type stubContractRepo struct {
	contract *contract.Contract
}

func (r *stubContractRepo) Create(_ context.Context, c *contract.Contract) error {
	r.contract = c
	return nil
}

func (r *stubContractRepo) FindByID(_ context.Context, id uuid.UUID) (*contract.Contract, error) {
	if r.contract == nil || r.contract.ID != id {
		return nil, contract.ErrContractNotFound
	}
	return r.contract, nil
}

func (r *stubContractRepo) List(_ context.Context, _ contract.Filter) ([]*contract.Contract, error) {
	if r.contract == nil {
		return nil, nil
	}
	return []*contract.Contract{r.contract}, nil
}

func (r *stubContractRepo) Count(_ context.Context, _ contract.Filter) (int64, error) {
	if r.contract == nil {
		return 0, nil
	}
	return 1, nil
}

func newContractTestHandler(contracts *stubContractRepo, properties *stubPropertyRepo) *ContractHandler {
	return NewContractHandler(contractapp.NewService(contracts, properties, nil))
}

func TestContractHandler_Create(t *testing.T) {
	prop := testProperty(t)
	properties := &stubPropertyRepo{property: prop}
	contracts := &stubContractRepo{}
	h := newContractTestHandler(contracts, properties)

	clientID := uuid.New()
	c, w := jsonRequest(t, http.MethodPost, "/contracts", map[string]any{
		"propertyId": prop.ID.String(),
		"clientId":   clientID.String(),
		"operation":  "venta",
		"amount":     185000.0,
		"currency":   "usd",
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, contracts.contract)
	assert.Equal(t, prop.ID, contracts.contract.PropertyID)
	assert.Equal(t, clientID, contracts.contract.ClientID)
	assert.Equal(t, "usd", contracts.contract.Currency)
	assert.False(t, contracts.contract.SignedAt.IsZero())

	// Closing the operation retires the property
	assert.Equal(t, listing.LifecycleTerminada, properties.property.Lifecycle)
}

func TestContractHandler_Create_DefaultCurrency(t *testing.T) {
	prop := testProperty(t)
	properties := &stubPropertyRepo{property: prop}
	contracts := &stubContractRepo{}
	h := newContractTestHandler(contracts, properties)

	c, w := jsonRequest(t, http.MethodPost, "/contracts", map[string]any{
		"propertyId": prop.ID.String(),
		"clientId":   uuid.NewString(),
		"operation":  "alquiler",
		"amount":     450000.0,
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, contracts.contract)
	assert.Equal(t, "ars", contracts.contract.Currency)
}

func TestContractHandler_Create_PropertyNotFound(t *testing.T) {
	properties := &stubPropertyRepo{}
	contracts := &stubContractRepo{}
	h := newContractTestHandler(contracts, properties)

	c, w := jsonRequest(t, http.MethodPost, "/contracts", map[string]any{
		"propertyId": uuid.NewString(),
		"clientId":   uuid.NewString(),
		"operation":  "venta",
		"amount":     185000.0,
	})

	h.Create(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Nil(t, contracts.contract)
}

func TestContractHandler_Create_InvalidOperation(t *testing.T) {
	prop := testProperty(t)
	properties := &stubPropertyRepo{property: prop}
	contracts := &stubContractRepo{}
	h := newContractTestHandler(contracts, properties)

	c, w := jsonRequest(t, http.MethodPost, "/contracts", map[string]any{
		"propertyId": prop.ID.String(),
		"clientId":   uuid.NewString(),
		"operation":  "permuta",
		"amount":     185000.0,
	})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, contracts.contract)
}

func TestContractHandler_Create_NonPositiveAmount(t *testing.T) {
	prop := testProperty(t)
	properties := &stubPropertyRepo{property: prop}
	contracts := &stubContractRepo{}
	h := newContractTestHandler(contracts, properties)

	c, w := jsonRequest(t, http.MethodPost, "/contracts", map[string]any{
		"propertyId": prop.ID.String(),
		"clientId":   uuid.NewString(),
		"operation":  "venta",
		"amount":     0.0,
	})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, contracts.contract)
}

func TestContractHandler_GetByID(t *testing.T) {
	existing, err := contract.NewContract(uuid.New(), uuid.New(), listing.OperationVenta, toDecimal(185000), "usd", time.Now())
	require.NoError(t, err)
	contracts := &stubContractRepo{contract: existing}
	h := newContractTestHandler(contracts, &stubPropertyRepo{})

	c, w := newTestContext()
	c.Params = gin.Params{{Key: "id", Value: existing.ID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestContractHandler_GetByID_NotFound(t *testing.T) {
	h := newContractTestHandler(&stubContractRepo{}, &stubPropertyRepo{})

	c, w := newTestContext()
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContractHandler_List(t *testing.T) {
	existing, err := contract.NewContract(uuid.New(), uuid.New(), listing.OperationVenta, toDecimal(185000), "usd", time.Now())
	require.NoError(t, err)
	contracts := &stubContractRepo{contract: existing}
	h := newContractTestHandler(contracts, &stubPropertyRepo{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/contracts?operation=venta&page=1&page_size=10", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}
