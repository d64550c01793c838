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
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type defaultDatabaseManager struct {
	config          *ConnectionConfig
	provisionConfig ProvisionConfig
	seedConfig      DataSeedConfig
	client          *mongo.Client
	db              *mongo.Database
	logger          Logger
	mu              sync.RWMutex
	connected       bool
	lastError       error
	lastHealthCheck time.Time
	healthStatus    *HealthStatus
	reconnectTries  int
	stopHealthCheck chan struct{}
	healthCheckOnce sync.Once

	connsCreated int64
	connsClosed  int64
	checkedOut   int64
	checkedIn    int64
}

// NewDatabaseManager returns an AbstractDatabaseManager backed by the
// official MongoDB driver. If config is nil, default configuration is used.
func NewDatabaseManager(config *ConnectionConfig) AbstractDatabaseManager {
	if config == nil {
		config = DefaultConnectionConfig()
	}
	return &defaultDatabaseManager{
		config:          config,
		healthStatus:    &HealthStatus{},
		stopHealthCheck: make(chan struct{}),
	}
}

// SetProvisionConfig installs the collection provisioning settings.
func (dm *defaultDatabaseManager) SetProvisionConfig(cfg ProvisionConfig) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.provisionConfig = cfg
}

// SetSeedConfig installs the data seeding settings.
func (dm *defaultDatabaseManager) SetSeedConfig(cfg DataSeedConfig) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.seedConfig = cfg
}

func (dm *defaultDatabaseManager) Connect(ctx context.Context) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.connected && dm.client != nil {
		return nil
	}

	client, err := dm.createClient(ctx)
	if err != nil {
		dm.lastError = err
		return fmt.Errorf("failed to create database client: %w", err)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, dm.connectTimeout())
	defer cancel()

	if err := client.Ping(ctxTimeout, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		dm.lastError = err
		return fmt.Errorf("database connection test failed: %w", err)
	}

	dm.client = client
	dm.db = client.Database(dm.config.DBName)
	dm.connected = true
	dm.lastError = nil
	dm.reconnectTries = 0

	if dm.config.HealthCheckInterval > 0 {
		dm.startHealthCheck()
	}

	if dm.logger != nil {
		dm.logger.Info("Database connected successfully:", "host", dm.config.Host, "dbname", dm.config.DBName)
	}
	return nil
}

func (dm *defaultDatabaseManager) connectTimeout() time.Duration {
	if dm.config.ConnectTimeout <= 0 {
		dm.config.ConnectTimeout = 30 * time.Second
	}
	return dm.config.ConnectTimeout
}

func (dm *defaultDatabaseManager) createClient(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(dm.config.URI()).
		SetConnectTimeout(dm.connectTimeout()).
		SetPoolMonitor(dm.poolMonitor())

	if dm.config.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(dm.config.ServerSelectionTimeout)
	}
	if dm.config.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(dm.config.MaxPoolSize)
	}
	if dm.config.MinPoolSize > 0 {
		opts.SetMinPoolSize(dm.config.MinPoolSize)
	}
	if dm.config.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(dm.config.MaxConnIdleTime)
	}
	if dm.config.AppName != "" {
		opts.SetAppName(dm.config.AppName)
	}
	if dm.config.EnableCommandLog || dm.config.SlowCommandTime > 0 {
		opts.SetMonitor(NewCommandMonitor(
			"MANGO_COMMAND_LOG",
			dm.config.EnableCommandLog,
			dm.config.SlowCommandTime,
			nil,
			dm.logger,
		))
	}

	return mongo.Connect(ctx, opts)
}

func (dm *defaultDatabaseManager) poolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionCreated:
				atomic.AddInt64(&dm.connsCreated, 1)
			case event.ConnectionClosed:
				atomic.AddInt64(&dm.connsClosed, 1)
			case event.GetSucceeded:
				atomic.AddInt64(&dm.checkedOut, 1)
			case event.ConnectionReturned:
				atomic.AddInt64(&dm.checkedIn, 1)
			}
		},
	}
}

func (dm *defaultDatabaseManager) Disconnect() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	select {
	case dm.stopHealthCheck <- struct{}{}:
	default:
	}

	if dm.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := dm.client.Disconnect(ctx)
		dm.client = nil
		dm.db = nil
		dm.connected = false

		if dm.logger != nil {
			if err != nil {
				dm.logger.Error("Failed to close database connection", "error", err)
			} else {
				dm.logger.Info("Database connection closed")
			}
		}
		return err
	}
	return nil
}

func (dm *defaultDatabaseManager) Reconnect(ctx context.Context) error {
	if dm.logger != nil {
		dm.logger.Info("Attempting to reconnect to the database")
	}

	if err := dm.Disconnect(); err != nil {
		if dm.logger != nil {
			dm.logger.Warn("Error disconnecting existing connection", "error", err)
		}
	}
	return dm.Connect(ctx)
}

func (dm *defaultDatabaseManager) Ping(ctx context.Context) error {
	dm.mu.RLock()
	client := dm.client
	dm.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("database not connected")
	}
	return client.Ping(ctx, readpref.Primary())
}

func (dm *defaultDatabaseManager) GetClient() *mongo.Client {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.client
}

func (dm *defaultDatabaseManager) GetDatabase() *mongo.Database {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.db
}

func (dm *defaultDatabaseManager) Collection(name string) *mongo.Collection {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	if dm.db == nil {
		return nil
	}
	return dm.db.Collection(name)
}

func (dm *defaultDatabaseManager) HealthCheck(ctx context.Context) *HealthStatus {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	start := time.Now()
	status := &HealthStatus{
		LastCheckTime: start,
		Connected:     dm.connected,
	}

	if dm.client == nil {
		status.Healthy = false
		status.LastError = "Database not initialized"
		return status
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	err := dm.client.Ping(ctxTimeout, readpref.Primary())
	status.ResponseTime = time.Since(start)

	if err != nil {
		status.Healthy = false
		status.Connected = false
		status.LastError = err.Error()
		dm.lastError = err
	} else {
		status.Healthy = true
		status.Connected = true
		dm.lastError = nil
	}

	status.OpenConns = atomic.LoadInt64(&dm.connsCreated) - atomic.LoadInt64(&dm.connsClosed)
	status.InUseConns = atomic.LoadInt64(&dm.checkedOut) - atomic.LoadInt64(&dm.checkedIn)

	dm.healthStatus = status
	dm.lastHealthCheck = start
	return status
}

func (dm *defaultDatabaseManager) startHealthCheck() {
	dm.healthCheckOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(dm.config.HealthCheckInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
					status := dm.HealthCheck(ctx)
					cancel()
					if !status.Healthy && dm.config.EnableReconnect {
						dm.handleReconnect()
					}

				case <-dm.stopHealthCheck:
					return
				}
			}
		}()
	})
}

func (dm *defaultDatabaseManager) handleReconnect() {
	if dm.reconnectTries >= dm.config.MaxReconnectTries {
		if dm.logger != nil {
			dm.logger.Error("Max reconnect attempts reached, stopping", "tries", dm.reconnectTries)
		}
		return
	}

	dm.reconnectTries++
	if dm.logger != nil {
		dm.logger.Info("Starting database reconnect", "try", dm.reconnectTries)
	}

	time.Sleep(dm.config.ReconnectInterval)

	ctx, cancel := context.WithTimeout(context.Background(), dm.connectTimeout())
	defer cancel()

	if err := dm.Reconnect(ctx); err != nil {
		if dm.logger != nil {
			dm.logger.Error("Reconnect failed", "error", err, "try", dm.reconnectTries)
		}
	} else {
		dm.reconnectTries = 0
		if dm.logger != nil {
			dm.logger.Info("Reconnect succeeded")
		}
	}
}

func (dm *defaultDatabaseManager) GetStats() *PoolStats {
	created := atomic.LoadInt64(&dm.connsCreated)
	closed := atomic.LoadInt64(&dm.connsClosed)
	out := atomic.LoadInt64(&dm.checkedOut)
	in := atomic.LoadInt64(&dm.checkedIn)

	return &PoolStats{
		ConnectionsCreated: created,
		ConnectionsClosed:  closed,
		CheckedOut:         out,
		CheckedIn:          in,
		OpenConns:          created - closed,
		InUseConns:         out - in,
	}
}

func (dm *defaultDatabaseManager) Provision(ctx context.Context) error {
	db := dm.GetDatabase()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	dm.mu.RLock()
	cfg := dm.provisionConfig
	dm.mu.RUnlock()

	return NewProvisionManager(db, defaultRegistry, cfg, dm.logger).Provision(ctx)
}

func (dm *defaultDatabaseManager) SeedData(ctx context.Context) error {
	db := dm.GetDatabase()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	dm.mu.RLock()
	cfg := dm.seedConfig
	dm.mu.RUnlock()

	return NewSeedManager(db, cfg, dm.logger).ExecuteSeeding(ctx)
}

func (dm *defaultDatabaseManager) SetLogger(logger Logger) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.logger = logger
}
