package video

import (
	"context"
	"fmt"

	"github.com/Taichi-iskw/vidlike/internal/config"
	videorepo "github.com/Taichi-iskw/vidlike/internal/repository/video"
	videosvc "github.com/Taichi-iskw/vidlike/internal/service/video"
)

// ServiceFactory creates video service instances
type ServiceFactory struct{}

// NewServiceFactory creates a new service factory
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{}
}

// CreateService loads the configuration and creates a video service
func (f *ServiceFactory) CreateService(ctx context.Context) (videosvc.Service, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return f.CreateServiceWithConfig(ctx, cfg)
}

// CreateServiceWithConfig creates a video service backed by the store cfg selects
func (f *ServiceFactory) CreateServiceWithConfig(ctx context.Context, cfg *config.Config) (videosvc.Service, func(), error) {
	repo, cleanup, err := OpenRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return videosvc.NewService(repo), cleanup, nil
}

// OpenRepository opens the video store named by the database URL scheme.
// The returned cleanup releases its connections.
func OpenRepository(ctx context.Context, cfg *config.Config) (videorepo.Repository, func(), error) {
	driver, err := cfg.Driver()
	if err != nil {
		return nil, nil, err
	}

	switch driver {
	case config.DriverPostgres:
		dbPool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return videorepo.NewRepository(dbPool), func() { config.CloseDatabasePool(dbPool) }, nil

	case config.DriverSQLite:
		db, err := config.NewSQLiteDB(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := videorepo.InitSQLiteSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return videorepo.NewSQLiteRepository(db), func() { db.Close() }, nil

	case config.DriverMemory:
		return videorepo.NewMemoryRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}
