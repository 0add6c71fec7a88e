package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docvault/docs"
	"docvault/internal/bulk"
	"docvault/internal/classifier"
	"docvault/internal/config"
	"docvault/internal/database"
	"docvault/internal/database/migration"
	handlers "docvault/internal/http/handler"
	"docvault/internal/http/middleware"
	"docvault/internal/ingest"
	"docvault/internal/logging"
	"docvault/internal/metrics"
	"docvault/internal/otel"
	"docvault/internal/placement"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
	"docvault/internal/storage"
)

const maxUploadBytes = 64 << 20

// @title Document Vault API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Location, cfg.LogLevel)
	slog.SetDefault(log)

	if cfg.PipelineFile != "" {
		p, err := config.LoadPipelineFile(cfg.PipelineFile, cfg.Pipeline)
		if err != nil {
			fatal(log, "failed to load pipeline config", err)
		}
		cfg.Pipeline = p
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "failed to initialize tracing", err)
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		fatal(log, "failed to connect to database", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		fatal(log, "failed to migrate database", err)
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		fatal(log, "failed to initialize object storage", err)
	}

	pipelineMetrics, err := metrics.NewPipeline(prometheus.DefaultRegisterer)
	if err != nil {
		fatal(log, "failed to register pipeline metrics", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		fatal(log, "failed to register http metrics", err)
	}

	// Repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	folderRepo := postgres.NewFolderPostgres(db)
	docSvc := service.NewDocumentService(objStore, docRepo, folderRepo)
	folderSvc := service.NewDedupFolderService(service.NewFolderService(folderRepo))
	vaultSvc := service.NewVaultService(postgres.NewVaultPostgres(db))

	var cls classifier.Classifier
	if cfg.Classifier.Endpoint != "" {
		c, err := classifier.NewHTTPClient(cfg.Classifier, nil)
		if err != nil {
			fatal(log, "failed to configure classifier", err)
		}
		cls = c
	} else {
		log.Warn("classifier endpoint not configured, every upload uses the fallback analysis")
	}

	pipeline := ingest.New(ingest.Deps{
		Documents:   docSvc,
		Placement:   placement.NewResolver(folderSvc, placement.WithPersonalRootLabel(cfg.Pipeline.PersonalRootLabel)),
		Classifier:  cls,
		Logger:      log.With("component", "ingest"),
		Metrics:     pipelineMetrics,
		Concurrency: cfg.Pipeline.CommitConcurrency,
	})
	coordinator := bulk.NewCoordinator(docSvc, log.With("component", "bulk"), pipelineMetrics)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    maxUploadBytes,
	})

	// RequestID first so every later middleware and handler sees it
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestLogger(log.With("component", "http")))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:        db,
		Documents: docSvc,
		Folders:   folderSvc,
		Vaults:    vaultSvc,
		Ingest:    pipeline,
		Bulk:      coordinator,
		Labels: handlers.RootLabels{
			Personal:     cfg.Pipeline.PersonalVaultLabel,
			Organization: cfg.Pipeline.OrganizationVaultLabel,
		},
		Location: cfg.Location,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("http shutdown failed", "error", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("tracing shutdown failed", "error", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr)
	if err := app.Listen(addr); err != nil {
		fatal(log, "failed to start server", err)
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
