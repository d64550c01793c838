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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProvisionManager synchronizes registered schemas with the server: it
// creates missing collections with their $jsonSchema validators and builds
// declared indexes.
type ProvisionManager struct {
	db       *mongo.Database
	registry ModelRegistry
	config   ProvisionConfig
	logger   Logger
}

// NewProvisionManager creates a provision manager for the database handle.
func NewProvisionManager(db *mongo.Database, registry ModelRegistry, config ProvisionConfig, logger Logger) *ProvisionManager {
	return &ProvisionManager{
		db:       db,
		registry: registry,
		config:   config,
		logger:   logger,
	}
}

// Provision walks the model registry and brings every registered collection
// up to its declared shape.
func (pm *ProvisionManager) Provision(ctx context.Context) error {
	existing, err := pm.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	for _, name := range pm.registry.Names() {
		s, ok := pm.registry.Get(name)
		if !ok {
			continue
		}

		if !existingSet[name] {
			if err := pm.createCollection(ctx, name, s.Validator(), len(s.FieldNames()) > 0); err != nil {
				return err
			}
		} else if pm.config.AllowValidatorUpdate && len(s.FieldNames()) > 0 {
			if err := pm.updateValidator(ctx, name, s.Validator()); err != nil {
				return err
			}
		}

		if pm.config.AllowIndexAdd {
			if err := pm.createIndexes(ctx, name, s.Indexes()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (pm *ProvisionManager) createCollection(ctx context.Context, name string, validator bson.M, withValidator bool) error {
	opts := options.CreateCollection()
	if withValidator {
		opts.SetValidator(validator)
	}
	if err := pm.db.CreateCollection(ctx, name, opts); err != nil {
		// Another process may have created it in the meantime.
		if is, storeErr := IsStoreError(err); is && storeErr == NamespaceExistsErr {
			if pm.logger != nil {
				pm.logger.Debug("Collection already exists", "collection", name)
			}
			return nil
		}
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	if pm.logger != nil {
		pm.logger.Info("Collection created", "collection", name, "validator", withValidator)
	}
	return nil
}

func (pm *ProvisionManager) updateValidator(ctx context.Context, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := pm.db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("failed to update validator for %s: %w", name, err)
	}
	if pm.logger != nil {
		pm.logger.Info("Collection validator updated", "collection", name)
	}
	return nil
}

func (pm *ProvisionManager) createIndexes(ctx context.Context, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	created, err := pm.db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("failed to create indexes for %s: %w", name, err)
	}
	if pm.logger != nil {
		pm.logger.Info("Indexes ensured", "collection", name, "indexes", len(created))
	}
	return nil
}
