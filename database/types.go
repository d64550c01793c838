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
	"time"

	"github.com/mitchellh/mapstructure"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/yaml.v3"
)

// AbstractDatabaseManager defines the operations for managing a MongoDB
// connection, provisioning collections, seeding data, and reporting health.
type AbstractDatabaseManager interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Reconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	HealthCheck(ctx context.Context) *HealthStatus
	GetClient() *mongo.Client
	GetDatabase() *mongo.Database
	Collection(name string) *mongo.Collection
	Provision(ctx context.Context) error
	SeedData(ctx context.Context) error
	GetStats() *PoolStats
	SetLogger(logger Logger)
}

// AbstractDatabaseConfigProvider exposes configuration loading.
type AbstractDatabaseConfigProvider interface {
	ConfigLoader() *Config
}

// HealthStatus holds the result of a health check against the server.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	ResponseTime  time.Duration `json:"response_time"`
	OpenConns     int64         `json:"open_conns"`
	InUseConns    int64         `json:"in_use_conns"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// PoolStats mirrors connection pool counters observed via the driver's
// pool monitor.
type PoolStats struct {
	ConnectionsCreated int64 `json:"connections_created"`
	ConnectionsClosed  int64 `json:"connections_closed"`
	CheckedOut         int64 `json:"checked_out"`
	CheckedIn          int64 `json:"checked_in"`
	OpenConns          int64 `json:"open_conns"`
	InUseConns         int64 `json:"in_use_conns"`
}

// ConnectionConfig describes how to reach the server and tune its pool.
type ConnectionConfig struct {
	Host                   string        `json:"host" yaml:"host" mapstructure:"host"`
	Port                   int           `json:"port" yaml:"port" mapstructure:"port"`
	Hosts                  []string      `json:"hosts" yaml:"hosts" mapstructure:"hosts"` // additional "host:port" cluster members
	Username               string        `json:"username" yaml:"username" mapstructure:"username"`
	Password               string        `json:"password" yaml:"password" mapstructure:"password"`
	DBName                 string        `json:"dbname" yaml:"dbname" mapstructure:"dbname"`
	AuthSource             string        `json:"auth_source" yaml:"auth_source" mapstructure:"auth_source"`
	ReplicaSet             string        `json:"replica_set" yaml:"replica_set" mapstructure:"replica_set"`
	TLS                    bool          `json:"tls" yaml:"tls" mapstructure:"tls"`
	AppName                string        `json:"app_name" yaml:"app_name" mapstructure:"app_name"`
	ConnectTimeout         time.Duration `json:"connect_timeout" yaml:"connect_timeout" mapstructure:"connect_timeout"`
	ServerSelectionTimeout time.Duration `json:"server_selection_timeout" yaml:"server_selection_timeout" mapstructure:"server_selection_timeout"`
	MaxPoolSize            uint64        `json:"max_pool_size" yaml:"max_pool_size" mapstructure:"max_pool_size"`
	MinPoolSize            uint64        `json:"min_pool_size" yaml:"min_pool_size" mapstructure:"min_pool_size"`
	MaxConnIdleTime        time.Duration `json:"max_conn_idle_time" yaml:"max_conn_idle_time" mapstructure:"max_conn_idle_time"`
	EnableReconnect        bool          `json:"enable_reconnect" yaml:"enable_reconnect" mapstructure:"enable_reconnect"`
	ReconnectInterval      time.Duration `json:"reconnect_interval" yaml:"reconnect_interval" mapstructure:"reconnect_interval"`
	MaxReconnectTries      int           `json:"max_reconnect_tries" yaml:"max_reconnect_tries" mapstructure:"max_reconnect_tries"`
	HealthCheckInterval    time.Duration `json:"health_check_interval" yaml:"health_check_interval" mapstructure:"health_check_interval"`
	EnableCommandLog       bool          `json:"enable_command_log" yaml:"enable_command_log" mapstructure:"enable_command_log"`
	SlowCommandTime        time.Duration `json:"slow_command_time" yaml:"slow_command_time" mapstructure:"slow_command_time"`
}

// ProvisionConfig controls collection and index synchronization on startup.
type ProvisionConfig struct {
	EnableProvisionOnStartup bool `json:"enable_provision_on_startup" yaml:"enable_provision_on_startup" mapstructure:"enable_provision_on_startup"`
	AllowValidatorUpdate     bool `json:"allow_validator_update" yaml:"allow_validator_update" mapstructure:"allow_validator_update"`
	AllowIndexAdd            bool `json:"allow_index_add" yaml:"allow_index_add" mapstructure:"allow_index_add"`
}

// DataSeedConfig controls document seeding behavior and environment selection.
type DataSeedConfig struct {
	AutoSeedOnStartup bool   `json:"auto_seed_on_startup" yaml:"auto_seed_on_startup" mapstructure:"auto_seed_on_startup"`
	Filepath          string `json:"filepath" yaml:"filepath" mapstructure:"filepath"`
	Environment       string `json:"environment" yaml:"environment" mapstructure:"environment"`
	Overwrite         bool   `json:"overwrite" yaml:"overwrite" mapstructure:"overwrite"`
}

// Config aggregates connection, provisioning, and data seed settings.
type Config struct {
	ConnectionConfig ConnectionConfig `json:"connection_config" yaml:"connection_config" mapstructure:"connection_config"`
	ProvisionConfig  ProvisionConfig  `json:"provision_config" yaml:"provision_config" mapstructure:"provision_config"`
	DataSeedConfig   DataSeedConfig   `json:"data_seed_config" yaml:"data_seed_config" mapstructure:"data_seed_config"`
}

// DefaultConnectionConfig returns a connection config with sensible defaults.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Port:                   27017,
		ConnectTimeout:         time.Second * 10,
		ServerSelectionTimeout: time.Second * 30,
		MaxPoolSize:            100,
		MinPoolSize:            0,
		MaxConnIdleTime:        time.Minute * 30,
		EnableReconnect:        true,
		ReconnectInterval:      time.Second * 5,
		MaxReconnectTries:      3,
		HealthCheckInterval:    time.Minute * 5,
		EnableCommandLog:       false,
		SlowCommandTime:        time.Second * 2,
	}
}

// LoadConfig reads a YAML configuration file into a Config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// ConfigFromMap decodes a generic map into a Config. Duration values may be
// given as strings like "10s" or "5m".
func ConfigFromMap(m map[string]interface{}) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode config map: %w", err)
	}
	return &cfg, nil
}
