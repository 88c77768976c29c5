package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"triphaven/internal/app"
	"triphaven/internal/domain"
	"triphaven/internal/handler"
	"triphaven/internal/repository"
	"triphaven/internal/service"
)

type testServer struct {
	router   *gin.Engine
	trips    *MockTripRepository
	carts    *MockCartRepository
	payments *MockPaymentRepository
	gateway  *MockGateway
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		trips:    NewMockTripRepository(),
		carts:    NewMockCartRepository(),
		payments: NewMockPaymentRepository(),
		gateway:  NewMockGateway(),
	}
	logger := zap.NewNop()

	s.router = app.NewRouter(app.RouterDeps{
		CatalogHandler:  handler.NewCatalogHandler(service.NewCatalogService(s.trips, nil, logger)),
		CartHandler:     handler.NewCartHandler(service.NewCartService(s.carts)),
		PaymentHandler:  handler.NewPaymentHandler(service.NewPaymentService(s.gateway)),
		CheckoutHandler: handler.NewCheckoutHandler(service.NewCheckoutService(s.payments, s.carts, nil, nil, logger)),
		Logger:          logger,
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHTTP_Liveness(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is running!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHTTP_Trips(t *testing.T) {
	s := newTestServer(t)
	id := s.trips.AddTrip(domain.Trip{"title": "Srimangal"})

	rec := s.do(t, http.MethodGet, "/trip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	trips := decode[[]map[string]any](t, rec)
	require.Len(t, trips, 1)
	assert.Equal(t, id, trips[0]["_id"])

	rec = s.do(t, http.MethodGet, "/view-trips/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Srimangal", decode[map[string]any](t, rec)["title"])
}

func TestHTTP_TripNotFoundIsNull(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/view-trips/"+domain.NewID(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
}

func TestHTTP_TripInvalidID(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/view-trips/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, true, decode[map[string]any](t, rec)["error"])
}

func TestHTTP_EmptyCatalogIsEmptyArray(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/trip", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHTTP_StorageFailureIs500(t *testing.T) {
	s := newTestServer(t)
	s.trips.GetAllError = repository.ErrStorageUnavailable

	rec := s.do(t, http.MethodGet, "/trip", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "storage unavailable", decode[handler.ErrorResponse](t, rec).Message)
}

func TestHTTP_CartLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/carts", map[string]any{"email": "a@x.io", "tripId": "t1"})
	require.Equal(t, http.StatusOK, rec.Code)
	inserted := decode[repository.InsertResult](t, rec)
	assert.True(t, inserted.Acknowledged)

	rec = s.do(t, http.MethodGet, "/carts?email=a@x.io", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]map[string]any](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, inserted.InsertedID, items[0]["_id"])

	rec = s.do(t, http.MethodDelete, "/delete-carts/"+inserted.InsertedID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deletedCount":1,"acknowledged":true}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/carts?email=a@x.io", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHTTP_CartMissingEmail(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/carts", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"Missing email"}`, rec.Body.String())
	assert.Equal(t, int32(0), s.carts.CallCount())
}

func TestHTTP_CartBadBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/carts", []string{"not", "an", "object"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/carts", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTP_DeleteCartInvalidID(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodDelete, "/delete-carts/zzz", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTP_CreatePaymentIntent(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"price": 49.9})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clientSecret":"pi_test_secret_123"}`, rec.Body.String())
	assert.Equal(t, []int64{49}, s.gateway.Amounts)
}

func TestHTTP_CreatePaymentIntentErrors(t *testing.T) {
	testCases := []struct {
		name string
		body any
		code int
	}{
		{"missing price", map[string]any{}, http.StatusBadRequest},
		{"zero price", map[string]any{"price": 0}, http.StatusBadRequest},
		{"string price", map[string]any{"price": "10"}, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)

			rec := s.do(t, http.MethodPost, "/create-payment-intent", tc.body)
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, int32(0), s.gateway.CallCount)
		})
	}
}

func TestHTTP_CreatePaymentIntentGatewayFailure(t *testing.T) {
	s := newTestServer(t)
	s.gateway.FailError = ErrMockTimeout

	rec := s.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"price": 10})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "payment gateway error", decode[handler.ErrorResponse](t, rec).Message)
}

func TestHTTP_RecordPayment(t *testing.T) {
	s := newTestServer(t)
	a := decode[repository.InsertResult](t, s.do(t, http.MethodPost, "/carts", map[string]any{"email": "a@x.io"})).InsertedID
	missing := domain.NewID()

	rec := s.do(t, http.MethodPost, "/payments", map[string]any{
		"email":         "a@x.io",
		"transactionId": "pi_123",
		"cartItemIds":   []string{a, missing},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[handler.CheckoutResponse](t, rec)
	assert.True(t, resp.InsertedResult.Acknowledged)
	assert.Equal(t, resp.PaymentID, resp.InsertedResult.InsertedID)
	assert.Equal(t, int64(1), resp.DeleteResult.DeletedCount)
	assert.Equal(t, int64(1), resp.DeletedCount)
	assert.Equal(t, 2, resp.RequestedCount)
	assert.False(t, resp.FullyReconciled)

	raw := decode[map[string]any](t, rec)
	assert.Contains(t, raw, "Insertedresult")
	assert.Contains(t, raw, "deleteResult")
}

func TestHTTP_RecordPaymentValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/payments", map[string]any{"amount": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/payments", map[string]any{"cartItemIds": []string{"bad"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, s.payments.Count())
}

func TestHTTP_RecordPaymentPartialFailure(t *testing.T) {
	s := newTestServer(t)
	s.carts.DeleteManyError = repository.ErrStorageUnavailable

	rec := s.do(t, http.MethodPost, "/payments", map[string]any{"cartItemIds": []string{domain.NewID()}})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decode[handler.ErrorResponse](t, rec)
	assert.True(t, resp.Error)
	assert.True(t, domain.IsValidID(resp.PaymentID))
	assert.Equal(t, 1, s.payments.Count())
}
