package container

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/Abhishek-Jose7/hangout-sub000/app/db"
	appmetrics "github.com/Abhishek-Jose7/hangout-sub000/app/observability/metrics"
	"github.com/Abhishek-Jose7/hangout-sub000/config"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api/discovery"
	generativeAI "github.com/Abhishek-Jose7/hangout-sub000/internal/api/generative_ai"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api/geocoding"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api/itinerary"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api/meetpoint"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/api/planner"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *slog.Logger
	Pool           *pgxpool.Pool
	PlannerHandler *planner.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// Initialize database
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	// Generative collaborator, API key injected from the environment
	apiKey := os.Getenv("GEMINI_API_KEY")
	aiClient, err := generativeAI.NewAIClient(ctx, apiKey, cfg.GenAI.Model, cfg.GenAI.Temperature)
	if err != nil {
		logger.Error("Failed to initialize generative AI client", slog.Any("error", err))
		return nil, fmt.Errorf("failed to initialize generative AI client: %w", err)
	}

	m := appmetrics.Get()

	// Location collaborators
	geocoder := geocoding.NewServiceImpl(
		cfg.Collaborators.Geocoder.BaseURL,
		cfg.Collaborators.Geocoder.UserAgent,
		cfg.Collaborators.Geocoder.Timeout,
		m,
		logger,
	)
	meetpointService := meetpoint.NewServiceImpl(geocoder, logger)

	// Venue discovery pipeline
	searchClient := discovery.NewHTMLSearchClient(cfg.Collaborators.Search.BaseURL, cfg.Collaborators.Search.Timeout, logger)
	pageFetcher := discovery.NewHTTPPageFetcher(cfg.Collaborators.PageFetch.Timeout, logger)
	extractor := discovery.NewExtractorImpl(aiClient, m, logger)
	discoveryService := discovery.NewServiceImpl(searchClient, pageFetcher, extractor, logger)

	// Itinerary synthesis
	synthesizer := itinerary.NewServiceImpl(aiClient, cfg.GenAI.Timeout, logger)

	// Planner: the fallback ladder over the whole pipeline
	planLogRepo := planner.NewPostgresPlanLogRepo(pool, m, logger)
	plannerService := planner.NewServiceImpl(
		meetpointService,
		discoveryService,
		synthesizer,
		aiClient,
		planLogRepo,
		m,
		logger,
	)
	plannerHandler := planner.NewHandlerImpl(plannerService, planLogRepo, logger)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Pool:           pool,
		PlannerHandler: plannerHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations runs database migrations
func (c *Container) RunMigrations(connectionURL string) error {
	return database.RunMigrations(connectionURL, c.Logger)
}

// DatabaseURL regenerates the migrate-compatible connection URL.
func (c *Container) DatabaseURL() (string, error) {
	dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
	if err != nil {
		return "", err
	}
	return dbConfig.ConnectionURL, nil
}
