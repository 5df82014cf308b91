package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetcarepro/clinic-api/internal/middleware"
	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/pkg/auth"
	"github.com/vetcarepro/clinic-api/pkg/logger"
)

func okHandler(c *gin.Context) { c.Status(http.StatusOK) }

type routeStub struct {
	register func(*gin.RouterGroup)
}

func (s routeStub) RegisterRoutes(r *gin.RouterGroup) {
	if s.register != nil {
		s.register(r)
	}
}

type paymentStub struct{}

func (paymentStub) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/payments/session", okHandler)
}

func (paymentStub) RegisterRefundRoutes(r *gin.RouterGroup) {
	r.POST("/payments/refund", okHandler)
}

// The prometheus collectors register globally, so the engine is built once
// and shared by the subtests.
func TestRouterAccessControl(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour, "vetcare-test")

	handlers := Handlers{
		Health:      routeStub{},
		Auth:        routeStub{},
		Client:      routeStub{register: func(rg *gin.RouterGroup) { rg.GET("/clients", okHandler) }},
		Pet:         routeStub{},
		Staff:       routeStub{},
		Catalog:     routeStub{},
		Appointment: routeStub{},
		Medical:     routeStub{},
		Inventory:   routeStub{},
		Billing:     routeStub{register: func(rg *gin.RouterGroup) { rg.GET("/invoices", okHandler) }},
		Payment:     paymentStub{},
		Portal:      routeStub{register: func(rg *gin.RouterGroup) { rg.GET("/portal/pets", okHandler) }},
	}

	log := logger.New(&logger.Config{Level: logger.ParseLevel("error"), Output: io.Discard})
	r := New(middleware.NewAuthMiddleware(jwtSvc), handlers, log, Config{
		CORS:          middleware.DefaultCORSConfig(),
		Timeout:       5 * time.Second,
		MetricsPrefix: "clinic_api_router_test",
	})
	r.Setup()

	staffToken, err := jwtSvc.Generate(uuid.New(), "admin@clinic.com", string(model.RoleAdministrator), auth.TokenKindStaff)
	require.NoError(t, err)
	clientToken, err := jwtSvc.Generate(uuid.New(), "maria@example.com", "", auth.TokenKindClient)
	require.NoError(t, err)

	do := func(method, path, token string) int {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, req)
		return w.Code
	}

	t.Run("anonymous is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/api/v1/portal/pets", ""))
	})

	t.Run("client token reaches portal routes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/portal/pets", clientToken))
	})

	t.Run("client token reaches checkout", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodPost, "/api/v1/payments/session", clientToken))
	})

	t.Run("client token cannot reach staff routes", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(http.MethodGet, "/api/v1/clients", clientToken))
	})

	t.Run("client token cannot refund", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(http.MethodPost, "/api/v1/payments/refund", clientToken))
	})

	t.Run("staff token cannot reach portal routes", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(http.MethodGet, "/api/v1/portal/pets", staffToken))
	})

	t.Run("billing staff can refund", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodPost, "/api/v1/payments/refund", staffToken))
	})

	t.Run("staff token reaches gated routes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/clients", staffToken))
	})
}
