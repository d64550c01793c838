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

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type testUser struct {
	ID   string `bson:"_id,omitempty"`
	Name string `bson:"name"`
	Age  int    `bson:"age"`
}

// Connecting is lazy in the driver, so repositories can be constructed and
// inspected without a reachable server.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("test-db")
}

func TestNewRepositoryBindsCollection(t *testing.T) {
	db := testDatabase(t)
	repo := NewRepository[testUser](db, "users")
	assert.Equal(t, "users", repo.Collection().Name())
	assert.Equal(t, "test-db", repo.Collection().Database().Name())
}

func TestNewRepositoryWithCollection(t *testing.T) {
	coll := testDatabase(t).Collection("accounts")
	repo := NewRepositoryWithCollection[testUser](coll)
	assert.Same(t, coll, repo.Collection())
}

func TestValsToAny(t *testing.T) {
	repo := &baseRepositoryImpl[testUser]{}
	docs := []*testUser{{Name: "alpha"}, {Name: "beta"}}
	values := repo.valsToAny(docs)
	require.Len(t, values, 2)
	assert.Same(t, docs[0], values[0])
	assert.Same(t, docs[1], values[1])
}
