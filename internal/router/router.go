package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/vetcarepro/clinic-api/internal/middleware"
	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/pkg/logger"
)

// Handler is implemented by every per-domain HTTP handler.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Handlers struct {
	Health      Handler
	Auth        Handler
	Client      Handler
	Pet         Handler
	Staff       Handler
	Catalog     Handler
	Appointment Handler
	Medical     Handler
	Inventory   Handler
	Billing     Handler
	Payment     Handler
	Portal      Handler
}

type Config struct {
	RateLimit     float64
	RateBurst     int
	CORS          middleware.CORSConfig
	Timeout       time.Duration
	MetricsPrefix string
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	handlers     Handlers
	catalogCache *middleware.ResponseCache
	metrics      *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func New(auth *middleware.AuthMiddleware, handlers Handlers, log *logger.Logger, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidators()

	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		handlers:     handlers,
		catalogCache: middleware.NewResponseCache(middleware.DefaultResponseCacheConfig()),
		metrics:      initRouterMetrics(config.MetricsPrefix),
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
	)

	engine.Use(middleware.CORS(config.CORS))

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(config.RateLimit),
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Root-level alias for load balancer probes.
	if h, ok := r.handlers.Health.(interface{ LivenessCheck(*gin.Context) }); ok {
		r.engine.GET("/healthz", h.LivenessCheck)
	}

	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	// Public routes
	r.handlers.Health.RegisterRoutes(api)
	r.handlers.Auth.RegisterRoutes(api)

	// Authenticated routes, staff and portal tokens alike
	authed := api.Group("")
	authed.Use(r.auth.Authenticate())
	r.handlers.Payment.RegisterRoutes(authed)

	// Client-portal routes, scoped to the token's client id
	if r.handlers.Portal != nil {
		portal := authed.Group("")
		portal.Use(r.auth.RequireClient())
		r.handlers.Portal.RegisterRoutes(portal)
	}

	// Staff routes, capability-gated per domain
	staff := authed.Group("")
	staff.Use(r.auth.RequireStaff())

	r.registerGated(staff, model.CapManageClients, r.handlers.Client, r.handlers.Pet)
	r.registerGated(staff, model.CapManageStaff, r.handlers.Staff)
	r.registerGated(staff, model.CapManageAppointments, r.handlers.Appointment)
	r.registerGated(staff, model.CapManageMedical, r.handlers.Medical)
	r.registerGated(staff, model.CapManageInventory, r.handlers.Inventory)

	// Refunds move provider money, so they sit behind the billing gate
	// instead of the shared payments group.
	billing := r.registerGated(staff, model.CapManageBilling, r.handlers.Billing)
	if h, ok := r.handlers.Payment.(interface{ RegisterRefundRoutes(*gin.RouterGroup) }); ok {
		h.RegisterRefundRoutes(billing)
	}

	// Catalog reads are hot during booking, cache them briefly.
	catalog := staff.Group("")
	catalog.Use(r.auth.RequireCapability(model.CapManageCatalog), r.catalogCache.Cache())
	r.handlers.Catalog.RegisterRoutes(catalog)
}

func (r *Router) registerGated(rg *gin.RouterGroup, cap model.Capability, handlers ...Handler) *gin.RouterGroup {
	group := rg.Group("")
	group.Use(r.auth.RequireCapability(cap))
	for _, h := range handlers {
		h.RegisterRoutes(group)
	}
	return group
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
