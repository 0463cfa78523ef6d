package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/smartdoc/docqa-backend/internal/api"
	documentapi "github.com/smartdoc/docqa-backend/internal/api/document"
	"github.com/smartdoc/docqa-backend/internal/config"
	"github.com/smartdoc/docqa-backend/internal/integration/embedding"
	"github.com/smartdoc/docqa-backend/internal/integration/generation"
	"github.com/smartdoc/docqa-backend/internal/integration/vectorindex"
	"github.com/smartdoc/docqa-backend/internal/pkg/chunker"
	"github.com/smartdoc/docqa-backend/internal/pkg/validator"
	"github.com/smartdoc/docqa-backend/internal/repository"
	"github.com/smartdoc/docqa-backend/internal/usecase/ingest"
	"github.com/smartdoc/docqa-backend/internal/usecase/query"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	docRepo := repository.NewCachedDocumentRepository(repository.NewDocumentPostgres(db))
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var embedder Embedder
	var generator query.Generator
	var index VectorIndex

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		embedder = embedding.NewMockConnector(logger)
		generator = generation.NewMockConnector(logger)
		index = vectorindex.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")

		embedder, err = embedding.NewConnector(ctx, cfg.GeminiCfg, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("initialize embedding connector: %w", err)
		}

		generator, err = generation.NewConnector(ctx, cfg.GeminiCfg, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("initialize generation connector: %w", err)
		}

		qdrant := vectorindex.NewConnector(cfg.VectorIndexCfg, logger)
		if err := qdrant.EnsureCollection(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("bootstrap vector collection: %w", err)
		}
		index = qdrant
	}

	// Initialize chunker (window parameters are validated at config load)
	chunks, err := chunker.New(cfg.ChunkCfg.Size, cfg.ChunkCfg.Overlap)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize chunker: %w", err)
	}

	// Initialize validators
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)
	logger.Info("Validators initialized")

	// Initialize use cases
	ingestUC := ingest.NewUsecase(docRepo, chunks, embedder, index, logger)
	queryUC := query.NewUsecase(embedder, index, generator, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	documentHandler := documentapi.NewHandler(ingestUC, queryUC, cfg.FileUploadCfg, fileValidator)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(documentHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// Embedder is the union of the ingestion and query embedding needs, so one
// connector instance serves both use cases.
type Embedder interface {
	ingest.Embedder
	query.Embedder
}

// VectorIndex is the union of the ingestion and query index needs.
type VectorIndex interface {
	ingest.VectorIndex
	query.VectorIndex
}
