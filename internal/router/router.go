package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinichq/clinic-api/internal/middleware"
	"github.com/clinichq/clinic-api/pkg/logger"
)

// Handler registers its routes on a group. Role gating happens here in the
// router, not inside handlers.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	CORSConfig        middleware.CORSConfig
	RequestsPerSecond float64
	RateBurst         int
	MetricsPrefix     string
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	authH         Handler
	receptionH    Handler
	doctorH       Handler
	emrH          Handler
	prescriptionH Handler
	patientH      Handler
	staffH        Handler
	catalogH      Handler
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(
	log *logger.Logger,
	auth *middleware.AuthMiddleware,
	authH Handler,
	receptionH Handler,
	doctorH Handler,
	emrH Handler,
	prescriptionH Handler,
	patientH Handler,
	staffH Handler,
	catalogH Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		authH:         authH,
		receptionH:    receptionH,
		doctorH:       doctorH,
		emrH:          emrH,
		prescriptionH: prescriptionH,
		patientH:      patientH,
		staffH:        staffH,
		catalogH:      catalogH,
		metrics:       initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Logger(log),
		r.metricsMiddleware(),
		middleware.CORS(config.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(config.RequestsPerSecond, config.RateBurst)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	// Public routes
	r.authH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	frontDesk := protected.Group("")
	frontDesk.Use(r.auth.RequireRole("Receptionist", "Admin"))
	r.receptionH.RegisterRoutes(frontDesk)
	r.patientH.RegisterRoutes(frontDesk)

	doctors := protected.Group("")
	doctors.Use(r.auth.RequireRole("Doctor", "Admin"))
	r.doctorH.RegisterRoutes(doctors)
	r.emrH.RegisterRoutes(doctors)
	r.prescriptionH.RegisterRoutes(doctors)

	admin := protected.Group("/admin")
	admin.Use(r.auth.RequireRole("Admin"))
	r.staffH.RegisterRoutes(admin)

	// Catalogs are read-only and visible to any authenticated staff.
	r.catalogH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "clinic"
	}
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
