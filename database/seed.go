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
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedManager inserts initial documents from per-environment Extended JSON
// files. Each file <root>/<environment>/<collection>.json holds:
//
//	{"documents": [ {...}, {...} ]}
//
// Non-empty collections are skipped unless Overwrite is set.
type SeedManager struct {
	db     *mongo.Database
	config DataSeedConfig
	logger Logger
}

type seedFile struct {
	Documents []bson.M `bson:"documents"`
}

// NewSeedManager creates a seed manager for the database handle.
func NewSeedManager(db *mongo.Database, config DataSeedConfig, logger Logger) *SeedManager {
	if config.Filepath == "" {
		config.Filepath = "configs/seed"
	}
	if config.Environment == "" {
		config.Environment = "prod"
	}
	return &SeedManager{
		db:     db,
		config: config,
		logger: logger,
	}
}

// ExecuteSeeding loads every seed file for the configured environment and
// inserts its documents.
func (sm *SeedManager) ExecuteSeeding(ctx context.Context) error {
	dir := filepath.Join(sm.config.Filepath, sm.config.Environment)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			if sm.logger != nil {
				sm.logger.Debug("No seed directory found, skipping", "dir", dir)
			}
			return nil
		}
		return fmt.Errorf("failed to read seed directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		collection := strings.TrimSuffix(entry.Name(), ".json")
		if err := sm.seedCollection(ctx, collection, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (sm *SeedManager) seedCollection(ctx context.Context, collection, path string) error {
	docs, err := loadSeedFile(path)
	if err != nil {
		return fmt.Errorf("failed to load seed file %s: %w", path, err)
	}
	if len(docs) == 0 {
		return nil
	}

	coll := sm.db.Collection(collection)
	if !sm.config.Overwrite {
		count, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("failed to count documents in %s: %w", collection, err)
		}
		if count > 0 {
			if sm.logger != nil {
				sm.logger.Debug("Collection not empty, skipping seed", "collection", collection, "count", count)
			}
			return nil
		}
	}

	values := make([]interface{}, len(docs))
	for i, doc := range docs {
		values[i] = doc
	}
	if _, err := coll.InsertMany(ctx, values); err != nil {
		return fmt.Errorf("failed to seed collection %s: %w", collection, err)
	}
	if sm.logger != nil {
		sm.logger.Info("Collection seeded", "collection", collection, "documents", len(docs))
	}
	return nil
}

func loadSeedFile(path string) ([]bson.M, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf seedFile
	if err := bson.UnmarshalExtJSON(data, false, &sf); err != nil {
		return nil, err
	}
	return sf.Documents, nil
}
