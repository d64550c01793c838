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
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
)

// BaseDatabaseFactory creates and manages a configured database manager and
// provides helpers for initialization, health checks, and statistics.
type BaseDatabaseFactory struct {
	manager AbstractDatabaseManager
	logger  Logger
}

// NewDatabaseFactory returns a new database factory using the global logger.
func NewDatabaseFactory() *BaseDatabaseFactory {
	return &BaseDatabaseFactory{
		logger: GetLogger(),
	}
}

// CreateFromConfig constructs a database manager from the given configuration,
// applying .env and environment overrides and setting the factory logger.
func (f *BaseDatabaseFactory) CreateFromConfig(cfg *Config) (AbstractDatabaseManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}

	f.overrideFromEnv(&cfg.ConnectionConfig)

	if cfg.ConnectionConfig.DBName == "" {
		return nil, fmt.Errorf("database name cannot be empty")
	}

	manager := NewDatabaseManager(&cfg.ConnectionConfig)
	manager.SetLogger(f.logger)
	if dm, ok := manager.(*defaultDatabaseManager); ok {
		dm.SetProvisionConfig(cfg.ProvisionConfig)
		dm.SetSeedConfig(cfg.DataSeedConfig)
	}

	f.manager = manager
	return manager, nil
}

// overrideFromEnv overrides configuration values from a .env file and the
// process environment.
func (f *BaseDatabaseFactory) overrideFromEnv(cfg *ConnectionConfig) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if host := os.Getenv("MONGO_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("MONGO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if hosts := os.Getenv("MONGO_HOSTS"); hosts != "" {
		cfg.Hosts = splitHosts(hosts)
	}
	if username := os.Getenv("MONGO_USERNAME"); username != "" {
		cfg.Username = username
	}
	if password := os.Getenv("MONGO_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if dbname := os.Getenv("MONGO_DATABASE"); dbname != "" {
		cfg.DBName = dbname
	}
	if authSource := os.Getenv("MONGO_AUTH_SOURCE"); authSource != "" {
		cfg.AuthSource = authSource
	}
	if replicaSet := os.Getenv("MONGO_REPLICA_SET"); replicaSet != "" {
		cfg.ReplicaSet = replicaSet
	}
	if tls := os.Getenv("MONGO_TLS"); tls != "" {
		cfg.TLS = tls == "true"
	}

	// Connection pool config
	if maxPool := os.Getenv("MONGO_MAX_POOL_SIZE"); maxPool != "" {
		if val, err := strconv.ParseUint(maxPool, 10, 64); err == nil {
			cfg.MaxPoolSize = val
		}
	}
	if minPool := os.Getenv("MONGO_MIN_POOL_SIZE"); minPool != "" {
		if val, err := strconv.ParseUint(minPool, 10, 64); err == nil {
			cfg.MinPoolSize = val
		}
	}
	if maxIdle := os.Getenv("MONGO_MAX_CONN_IDLE_TIME"); maxIdle != "" {
		if val, err := strconv.Atoi(maxIdle); err == nil {
			cfg.MaxConnIdleTime = time.Duration(val) * time.Second
		}
	}

	// Reconnect config
	if enableReconnect := os.Getenv("MONGO_ENABLE_RECONNECT"); enableReconnect != "" {
		cfg.EnableReconnect = enableReconnect == "true"
	}
	if reconnectInterval := os.Getenv("MONGO_RECONNECT_INTERVAL"); reconnectInterval != "" {
		if val, err := strconv.Atoi(reconnectInterval); err == nil {
			cfg.ReconnectInterval = time.Duration(val) * time.Second
		}
	}

	// Logging config
	if enableCommandLog := os.Getenv("MONGO_ENABLE_COMMAND_LOG"); enableCommandLog != "" {
		cfg.EnableCommandLog = enableCommandLog == "true"
	}
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// InitializeDatabase connects to the server and optionally provisions
// collections and indexes from the model registry.
func (f *BaseDatabaseFactory) InitializeDatabase(ctx context.Context, runProvision bool) error {
	if f.manager == nil {
		return fmt.Errorf("database manager not created")
	}

	if err := f.manager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if runProvision {
		if err := f.manager.Provision(ctx); err != nil {
			return fmt.Errorf("failed to provision collections: %w", err)
		}
	}
	f.logger.Info("Database initialization completed!")
	return nil
}

// GetManager returns the underlying database manager.
func (f *BaseDatabaseFactory) GetManager() AbstractDatabaseManager {
	return f.manager
}

// GetDatabase returns the database handle, or nil if not initialized.
func (f *BaseDatabaseFactory) GetDatabase() *mongo.Database {
	if f.manager == nil {
		return nil
	}
	return f.manager.GetDatabase()
}

// GetClient returns the driver client, or nil if not initialized.
func (f *BaseDatabaseFactory) GetClient() *mongo.Client {
	if f.manager == nil {
		return nil
	}
	return f.manager.GetClient()
}

// SetLogger sets the logger on the factory and the underlying manager.
func (f *BaseDatabaseFactory) SetLogger(logger Logger) {
	f.logger = logger
	if f.manager != nil {
		f.manager.SetLogger(logger)
	}
}

// Close closes the database connection managed by the factory.
func (f *BaseDatabaseFactory) Close() error {
	if f.manager == nil {
		return nil
	}
	return f.manager.Disconnect()
}

// GetHealthStatus returns the current database health status from the manager.
func (f *BaseDatabaseFactory) GetHealthStatus(ctx context.Context) *HealthStatus {
	if f.manager == nil {
		return &HealthStatus{
			Healthy:       false,
			Connected:     false,
			LastError:     "Database manager not initialized",
			LastCheckTime: time.Now(),
		}
	}
	return f.manager.HealthCheck(ctx)
}

// GetStats returns connection pool statistics from the manager.
func (f *BaseDatabaseFactory) GetStats() *PoolStats {
	if f.manager == nil {
		return &PoolStats{}
	}
	return f.manager.GetStats()
}
