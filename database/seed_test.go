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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedFile(t *testing.T) {
	content := `{
  "documents": [
    {"name": "alpha", "level": 1},
    {"name": "beta", "created_at": {"$date": "2025-01-02T03:04:05Z"}}
  ]
}`
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	docs, err := loadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "alpha", docs[0]["name"])
	assert.Equal(t, "beta", docs[1]["name"])
	assert.NotNil(t, docs[1]["created_at"])
}

func TestLoadSeedFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"documents": []}`), 0o644))

	docs, err := loadSeedFile(path)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoadSeedFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	_, err := loadSeedFile(path)
	assert.Error(t, err)
}

func TestSeedManagerDefaults(t *testing.T) {
	sm := NewSeedManager(nil, DataSeedConfig{}, nil)
	assert.Equal(t, "configs/seed", sm.config.Filepath)
	assert.Equal(t, "prod", sm.config.Environment)
}

func TestExecuteSeedingMissingDirectory(t *testing.T) {
	sm := NewSeedManager(nil, DataSeedConfig{
		Filepath:    filepath.Join(t.TempDir(), "nowhere"),
		Environment: "dev",
	}, nil)
	assert.NoError(t, sm.ExecuteSeeding(context.Background()))
}
