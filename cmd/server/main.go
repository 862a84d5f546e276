package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"toorrii_site/config"
	"toorrii_site/db"
	"toorrii_site/handlers"
	"toorrii_site/middleware"
	"toorrii_site/services"
	"toorrii_site/services/api"
	"toorrii_site/services/content"
	"toorrii_site/services/i18n"
	"toorrii_site/services/jobs"
	"toorrii_site/services/query"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}
	middleware.InitAssetVersions()

	// Content cache, with snapshots unless disabled
	var cacheOpts []query.CacheOption
	if !strings.EqualFold(cfg.SnapshotDBPath, "off") {
		if err := db.Initialize(cfg.SnapshotDBPath, cfg.Environment); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		if err := db.AutoMigrate(); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		cacheOpts = append(cacheOpts, query.WithSnapshotStore(query.NewGormSnapshotStore(db.DB)))
	}

	client, err := api.New(cfg.APIBaseURL,
		api.WithHTTPTimeout(cfg.APITimeout),
		api.WithUserAgent(cfg.APIUserAgent),
	)
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}

	queries := query.NewQueries(query.NewCache(cacheOpts...), content.NewServices(client), cfg.ContentStaleTime)
	if n := queries.Restore(context.Background()); n > 0 {
		log.Printf("[INFO] Restored %d content snapshots", n)
	}

	if cfg.ContentWarmOnStart {
		go jobs.WarmContent(context.Background(), queries)
	}
	warmer, err := jobs.StartScheduler(cfg.ContentWarmSchedule, queries)
	if err != nil {
		log.Fatalf("Failed to start content warmer: %v", err)
	}

	storage := services.InitializeStorage(cfg)
	pdfs := services.NewLegalPDFService(storage, services.NewChromePDFRenderer(cfg.ChromePath))
	handlers.Init(queries, pdfs)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Middleware
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))
	e.Use(middleware.CSPNonce(middleware.SiteCSP))
	e.Use(middleware.Locale(cfg))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	// Pages
	e.GET("/", handlers.HomeHandler)
	e.GET("/about-us", handlers.AboutUsHandler)
	e.GET("/privacy-policy", handlers.PrivacyPolicyHandler)
	e.GET("/terms-of-service", handlers.TermsOfServiceHandler)
	e.GET("/contact", handlers.ContactHandler)
	e.GET("/partners", handlers.PartnersHandler)
	e.GET("/partners/:id", handlers.PartnerDetailHandler)

	// Legal PDFs
	pdfRoutes := e.Group("")
	pdfRoutes.Use(middleware.PDFRateLimiter.Middleware())
	{
		pdfRoutes.GET("/terms-of-service.pdf", handlers.TermsOfServicePDFHandler)
		pdfRoutes.GET("/privacy-policy.pdf", handlers.PrivacyPolicyPDFHandler)
	}

	// Content API
	apiRoutes := e.Group("/api/content")
	apiRoutes.Use(middleware.ContentAPIRateLimiter.Middleware())
	{
		apiRoutes.GET("/partners/:id", handlers.PartnerAPIHandler)
		apiRoutes.GET("/:resource", handlers.ContentAPIHandler)
	}

	// SEO and operations
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/robots.txt", handlers.RobotsHandler)
	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(query.MetricsHandler()))

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if warmer != nil {
		<-warmer.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] Server shutdown failed: %v", err)
	}
}
