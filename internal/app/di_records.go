package app

import (
	"fmt"

	"github.com/allisson/modelgate/internal/database"
	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
	recordsRepository "github.com/allisson/modelgate/internal/records/repository"
	recordsUseCase "github.com/allisson/modelgate/internal/records/usecase"
)

// ResourceRegistry returns the registry of exposed resources.
func (c *Container) ResourceRegistry() (*recordsDomain.Registry, error) {
	err := c.lazy(&c.registryInit, "resourceRegistry", func() (err error) {
		c.resourceRegistry, err = recordsDomain.NewRegistry(recordsDomain.DefaultResources()...)
		if err != nil {
			return fmt.Errorf("failed to build resource registry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.resourceRegistry, nil
}

// RecordRepository returns the record repository based on database driver.
func (c *Container) RecordRepository() (recordsUseCase.RecordRepository, error) {
	err := c.lazy(&c.recordRepoInit, "recordRepository", func() (err error) {
		c.recordRepository, err = c.initRecordRepository()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.recordRepository, nil
}

// StoreResolver returns the resolver mapping resource names to record stores.
func (c *Container) StoreResolver() (recordsUseCase.StoreResolver, error) {
	err := c.lazy(&c.storeResolverInit, "storeResolver", func() (err error) {
		c.storeResolver, err = c.initStoreResolver()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.storeResolver, nil
}

func (c *Container) initRecordRepository() (recordsUseCase.RecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for record repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL, database.DriverSQLite:
		return recordsRepository.NewMySQLRecordRepository(db), nil
	case database.DriverPostgres:
		return recordsRepository.NewPostgreSQLRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initStoreResolver() (recordsUseCase.StoreResolver, error) {
	registry, err := c.ResourceRegistry()
	if err != nil {
		return nil, err
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for store resolver: %w", err)
	}

	recordRepository, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for store resolver: %w", err)
	}

	baseResolver := recordsUseCase.NewStoreResolver(registry, txManager, recordRepository)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for store resolver: %w", err)
		}
		return recordsUseCase.NewStoreResolverWithMetrics(baseResolver, businessMetrics), nil
	}

	return baseResolver, nil
}
