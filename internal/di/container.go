package di

import (
	"github.com/seatforge/seatmap-service/internal/handler"
	"github.com/seatforge/seatmap-service/internal/repository"
	"github.com/seatforge/seatmap-service/internal/service"
	"github.com/seatforge/seatmap-service/pkg/database"
	"github.com/seatforge/seatmap-service/pkg/kafka"
	"github.com/seatforge/seatmap-service/pkg/redis"
)

// Container holds all dependencies for the seatmap service
type Container struct {
	// Infrastructure
	DB       *database.PostgresDB
	Redis    *redis.Client
	Producer *kafka.Producer

	// Repositories
	VenueRepo    repository.VenueRepository
	ManifestRepo repository.ManifestRepository

	// Services
	VenueService    service.VenueService
	ManifestService service.ManifestService
	ManifestSyncer  service.ManifestSyncer

	// Handlers
	HealthHandler   *handler.HealthHandler
	VenueHandler    *handler.VenueHandler
	ManifestHandler *handler.ManifestHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB            *database.PostgresDB
	Redis         *redis.Client
	Producer      *kafka.Producer
	VersionPolicy service.VersionPolicy
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:       cfg.DB,
		Redis:    cfg.Redis,
		Producer: cfg.Producer,
	}

	// Initialize repositories
	pgVenueRepo := repository.NewPostgresVenueRepository(c.DB.Pool())

	// Wrap with cache if Redis is available
	if c.Redis != nil {
		c.VenueRepo = repository.NewCachedVenueRepository(pgVenueRepo, c.Redis)
	} else {
		c.VenueRepo = pgVenueRepo
	}
	c.ManifestRepo = repository.NewPostgresManifestRepository(c.DB.Pool())

	// Initialize services
	c.VenueService = service.NewVenueService(c.VenueRepo)
	c.ManifestService = service.NewManifestService(c.ManifestRepo, c.VenueRepo, cfg.VersionPolicy)
	c.ManifestSyncer = service.NewManifestSyncer(c.ManifestRepo, c.Redis, c.Producer)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.VenueHandler = handler.NewVenueHandler(c.VenueService)
	c.ManifestHandler = handler.NewManifestHandler(c.ManifestService, c.ManifestSyncer)

	return c
}
