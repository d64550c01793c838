/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	globalFactory *BaseDatabaseFactory
	globalConfig  *Config
	DB            *mongo.Database
)

// GetDB returns the global database handle.
func GetDB() *mongo.Database {
	if globalFactory != nil {
		return globalFactory.GetDatabase()
	}
	return DB
}

// GetClient returns the global driver client.
func GetClient() *mongo.Client {
	if globalFactory != nil {
		return globalFactory.GetClient()
	}
	return nil
}

// GetDatabaseManager returns the global database manager.
func GetDatabaseManager() AbstractDatabaseManager {
	if globalFactory != nil {
		return globalFactory.GetManager()
	}
	return nil
}

// GetDatabaseFactory returns the global database factory.
func GetDatabaseFactory() *BaseDatabaseFactory {
	return globalFactory
}

// InitDB initializes the global database using the provided configuration.
func InitDB(cfg *Config) (*mongo.Database, error) {
	globalConfig = cfg
	return InitDatabaseWithOptions(cfg, cfg.ProvisionConfig.EnableProvisionOnStartup)
}

// InitDatabaseWithOptions initializes the database and optionally provisions
// registered collections and indexes.
func InitDatabaseWithOptions(cfg *Config, runProvision bool) (*mongo.Database, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	globalFactory = NewDatabaseFactory()
	manager, err := globalFactory.CreateFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	ctx := context.Background()
	if err := globalFactory.InitializeDatabase(ctx, runProvision); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.DataSeedConfig.AutoSeedOnStartup {
		if err := manager.SeedData(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed data: %w", err)
		}
	}

	DB = manager.GetDatabase()
	return DB, nil
}

// CloseDB closes the global database connection.
func CloseDB() error {
	if globalFactory != nil {
		return globalFactory.Close()
	}
	return nil
}

// GetHealthStatus returns the current database health status.
func GetHealthStatus(ctx context.Context) *HealthStatus {
	if globalFactory != nil {
		return globalFactory.GetHealthStatus(ctx)
	}
	return &HealthStatus{
		Healthy:   false,
		Connected: false,
		LastError: "Database not initialized",
	}
}

// GetDatabaseStats returns global connection pool statistics.
func GetDatabaseStats() *PoolStats {
	if globalFactory != nil {
		return globalFactory.GetStats()
	}
	return &PoolStats{}
}

// Provision creates registered collections and indexes on the global
// connection.
func Provision(ctx context.Context) error {
	if globalFactory == nil {
		return fmt.Errorf("database not initialized")
	}
	manager := globalFactory.GetManager()
	if manager == nil {
		return fmt.Errorf("database manager not initialized")
	}
	return manager.Provision(ctx)
}

// SeedData seeds documents using the configured environment.
func SeedData(ctx context.Context) error {
	if globalFactory == nil {
		return fmt.Errorf("database not initialized")
	}
	manager := globalFactory.GetManager()
	if manager == nil {
		return fmt.Errorf("database manager not initialized")
	}
	return manager.SeedData(ctx)
}
