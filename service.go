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
	"sync"

	"github.com/tomoncle/mango/database"
	"github.com/tomoncle/mango/repository"
	"github.com/tomoncle/mango/schema"
	"github.com/tomoncle/mango/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func idFilter(id any) bson.M { return bson.M{"_id": id} }

// Service binds a collection name once and exposes the CRUD surface without
// re-passing the collection name on every call.
type Service[T any] interface {
	// Get returns a single document by its identifier.
	Get(ctx context.Context, id any) (*T, error)

	// All returns all documents in the collection.
	All(ctx context.Context) ([]*T, error)

	// List returns documents that match the provided filter.
	List(ctx context.Context, filter *types.QueryFilter) ([]*T, error)

	// Page returns a paginated list of documents.
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)

	// Count returns the number of documents matching the filter.
	Count(ctx context.Context, filter *types.QueryFilter) (int64, error)

	// Exists reports whether a document with the identifier exists.
	Exists(ctx context.Context, id any) (bool, error)

	// Save inserts one or more new documents.
	Save(ctx context.Context, model ...*T) error

	// Replace swaps the stored document for the identifier with model.
	Replace(ctx context.Context, id any, model *T) error

	// Modify applies an update document to the document with the identifier.
	Modify(ctx context.Context, id any, update any) error

	// Delete removes a document by its identifier.
	Delete(ctx context.Context, id any) error

	// DeleteAll removes every document matching the filter and returns the
	// deleted count.
	DeleteAll(ctx context.Context, filter *types.QueryFilter) (int64, error)

	// Aggregate runs an aggregation pipeline and returns the result
	// documents.
	Aggregate(ctx context.Context, pipeline any) ([]map[string]interface{}, error)

	// Distinct returns the distinct values of a field across matching
	// documents.
	Distinct(ctx context.Context, field string, filter *types.QueryFilter) ([]interface{}, error)

	// Collection returns the bound driver collection for advanced use cases.
	Collection() *mongo.Collection
}

type baseServiceImpl[T any] struct {
	collection string
	repo       repository.Repository[T]
	once       sync.Once
}

// NewService returns a default Service implementation bound to the named
// collection of the global database connection.
func NewService[T any](collection string) Service[T] {
	return &baseServiceImpl[T]{collection: collection}
}

// NewServiceWithSchema registers the schema under the collection name and
// returns a Service bound to it. A schema already registered under the name
// stays in effect.
func NewServiceWithSchema[T any](collection string, s *schema.Schema) Service[T] {
	database.RegisterModel(collection, s)
	return NewService[T](collection)
}

func (s *baseServiceImpl[T]) baseRepo() repository.Repository[T] {
	s.once.Do(func() { s.repo = repository.NewRepository[T](database.GetDB(), s.collection) })
	return s.repo
}

func (s *baseServiceImpl[T]) Get(ctx context.Context, id any) (*T, error) {
	return s.baseRepo().FindByID(ctx, id)
}

func (s *baseServiceImpl[T]) All(ctx context.Context) ([]*T, error) {
	return s.baseRepo().Find(ctx, types.NewQueryFilter(nil).Value())
}

func (s *baseServiceImpl[T]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	return s.baseRepo().Find(ctx, filter.Value())
}

func (s *baseServiceImpl[T]) Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error) {
	return s.baseRepo().Page(ctx, page)
}

func (s *baseServiceImpl[T]) Count(ctx context.Context, filter *types.QueryFilter) (int64, error) {
	return s.baseRepo().Count(ctx, filter.Value())
}

func (s *baseServiceImpl[T]) Exists(ctx context.Context, id any) (bool, error) {
	return s.baseRepo().Exists(ctx, id)
}

func (s *baseServiceImpl[T]) Save(ctx context.Context, model ...*T) error {
	if len(model) == 1 {
		_, err := s.baseRepo().InsertOne(ctx, model[0])
		return err
	}
	_, err := s.baseRepo().InsertMany(ctx, model)
	return err
}

func (s *baseServiceImpl[T]) Replace(ctx context.Context, id any, model *T) error {
	_, err := s.baseRepo().ReplaceOne(ctx, idFilter(id), model)
	return err
}

func (s *baseServiceImpl[T]) Modify(ctx context.Context, id any, update any) error {
	_, err := s.baseRepo().UpdateByID(ctx, id, update)
	return err
}

func (s *baseServiceImpl[T]) Delete(ctx context.Context, id any) error {
	_, err := s.baseRepo().DeleteByID(ctx, id)
	return err
}

func (s *baseServiceImpl[T]) DeleteAll(ctx context.Context, filter *types.QueryFilter) (int64, error) {
	result, err := s.baseRepo().DeleteMany(ctx, filter.Value())
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (s *baseServiceImpl[T]) Aggregate(ctx context.Context, pipeline any) ([]map[string]interface{}, error) {
	return s.baseRepo().AggregateAll(ctx, pipeline)
}

func (s *baseServiceImpl[T]) Distinct(ctx context.Context, field string, filter *types.QueryFilter) ([]interface{}, error) {
	return s.baseRepo().Distinct(ctx, field, filter.Value())
}

func (s *baseServiceImpl[T]) Collection() *mongo.Collection {
	return s.baseRepo().Collection()
}
