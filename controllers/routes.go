package controllers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lexpaixao/WaterQuality/middlewares"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions configures the parts of the router that vary per deployment.
type RouterOptions struct {
	CORSOrigins []string
	LoginRate   float64
	LoginBurst  int
	Gatherer    prometheus.Gatherer
}

// NewRouter wires middleware and routes around h.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(h.Log))
	if h.Metrics != nil {
		r.Use(h.Metrics.Handler())
	}
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.POST("/cadastro", h.Cadastro)
	api.POST("/login", middlewares.RateLimit(opts.LoginRate, opts.LoginBurst), h.Login)
	api.GET("/limites", h.Limites)

	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware(h.Auth))
	auth.POST("/processar", h.Processar)
	auth.GET("/historico", h.Historico)
	auth.GET("/historico/csv", h.HistoricoCSV)
	auth.GET("/perfil", h.Perfil)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Disposition"},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
