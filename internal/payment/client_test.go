package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetcarepro/clinic-api/pkg/logger"
	"github.com/vetcarepro/clinic-api/pkg/metrics"
)

var testMetrics = metrics.New("payment_client_test")

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(&logger.Config{Level: logger.ErrorLevel})
	return NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "test-key"}, log, testMetrics), srv
}

func TestCreateSession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(25000), body["amount"])

		json.NewEncoder(w).Encode(Session{
			ID:     "sess_123",
			URL:    "https://pay.example.com/sess_123",
			Status: SessionStatusOpen,
		})
	}))

	session, err := client.CreateSession(context.Background(), CreateSessionParams{
		Amount:    25000,
		Currency:  "clp",
		Reference: "apt-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "sess_123", session.ID)
	assert.Equal(t, SessionStatusOpen, session.Status)
	assert.NotEmpty(t, session.URL)
}

func TestRetrieveSession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions/sess_123", r.URL.Path)
		json.NewEncoder(w).Encode(Session{
			ID:            "sess_123",
			Status:        SessionStatusComplete,
			PaymentStatus: "paid",
			AmountTotal:   25000,
			Reference:     "apt-1",
		})
	}))

	session, err := client.RetrieveSession(context.Background(), "sess_123")
	require.NoError(t, err)
	assert.Equal(t, SessionStatusComplete, session.Status)
	assert.Equal(t, "paid", session.PaymentStatus)
}

func TestRefund(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/refunds", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sess_123", body["transaction_id"])
		assert.Equal(t, float64(25000), body["amount"])

		json.NewEncoder(w).Encode(Refund{
			ID:            "re_1",
			TransactionID: "sess_123",
			Amount:        25000,
			Status:        "succeeded",
		})
	}))

	refund, err := client.Refund(context.Background(), "sess_123", 25000)
	require.NoError(t, err)
	assert.Equal(t, "re_1", refund.ID)
	assert.Equal(t, "succeeded", refund.Status)
}

func TestProviderErrorSurfaced(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "amount too small", "code": "invalid_amount"})
	}))

	_, err := client.CreateSession(context.Background(), CreateSessionParams{Amount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount too small")
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	for i := 0; i < 5; i++ {
		_, err := client.RetrieveSession(context.Background(), "sess_x")
		require.Error(t, err)
	}
	assert.Equal(t, "open", client.breaker.State())

	_, err := client.RetrieveSession(context.Background(), "sess_x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker")
}
