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

package mango

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/mango/database"
	"github.com/tomoncle/mango/schema"
	"github.com/tomoncle/mango/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type account struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Name   string             `bson:"name"`
	Email  string             `bson:"email"`
	Status string             `bson:"status"`
}

func TestNewServiceWithSchemaRegistersModel(t *testing.T) {
	s := schema.New()
	s.Field("name", schema.String).Required().
		Field("email", schema.String).Unique()

	NewServiceWithSchema[account]("mango_test_accounts", s)

	got, ok := database.GetModel("mango_test_accounts")
	require.True(t, ok)
	assert.Same(t, s, got)

	// A second registration under the same name keeps the first definition.
	other := schema.New()
	NewServiceWithSchema[account]("mango_test_accounts", other)
	got, _ = database.GetModel("mango_test_accounts")
	assert.Same(t, s, got)
}

func TestIDFilter(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id, idFilter(id)["_id"])
}

// Exercises the full path against a local server when one is available.
func TestServiceRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	conn := database.DefaultConnectionConfig()
	conn.Host = "localhost"
	conn.DBName = "mango_it"
	conn.ConnectTimeout = 2 * time.Second
	conn.ServerSelectionTimeout = 2 * time.Second

	cfg := &database.Config{ConnectionConfig: *conn}
	db, err := database.InitDB(cfg)
	if err != nil {
		t.Skipf("no local server available: %v", err)
	}
	defer func() { _ = database.CloseDB() }()

	svc := NewService[account]("it_accounts")
	ctx := context.Background()
	defer func() { _ = db.Collection("it_accounts").Drop(ctx) }()

	doc := &account{Name: "alice", Email: "alice@example.com", Status: "active"}
	require.NoError(t, svc.Save(ctx, doc))

	count, err := svc.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alice", all[0].Name)

	got, err := svc.Get(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	exists, err := svc.Exists(ctx, all[0].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, svc.Modify(ctx, all[0].ID, map[string]any{"$set": map[string]any{"status": "archived"}}))
	got, err = svc.Get(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "archived", got.Status)

	page, err := svc.Page(ctx, types.NewDefaultPageRequest(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	require.NoError(t, svc.Delete(ctx, all[0].ID))
	exists, err = svc.Exists(ctx, all[0].ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
