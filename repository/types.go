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

	"github.com/tomoncle/mango/types"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CrudRepository defines basic write operations for a generic document type.
// Arguments are forwarded to the driver unchanged and driver results are
// returned unchanged.
type CrudRepository[T any] interface {
	InsertOne(ctx context.Context, doc *T, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)

	InsertMany(ctx context.Context, docs []*T, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)

	UpdateByID(ctx context.Context, id any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)

	UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)

	UpdateMany(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)

	ReplaceOne(ctx context.Context, filter any, doc *T, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)

	DeleteByID(ctx context.Context, id any) (*mongo.DeleteResult, error)

	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)

	DeleteMany(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// QueryRepository defines read operations for a generic document type.
type QueryRepository[T any] interface {
	FindByID(ctx context.Context, id any) (*T, error)

	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) (*T, error)

	Find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]*T, error)

	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)

	Count(ctx context.Context, filter any, opts ...*options.CountOptions) (int64, error)

	EstimatedCount(ctx context.Context, opts ...*options.EstimatedDocumentCountOptions) (int64, error)

	Exists(ctx context.Context, id any) (bool, error)
}

// AggregateRepository defines aggregation operations for a document type.
type AggregateRepository[T any] interface {
	// Aggregate runs the pipeline and returns the driver cursor unchanged.
	Aggregate(ctx context.Context, pipeline any, opts ...*options.AggregateOptions) (*mongo.Cursor, error)

	// AggregateAll runs the pipeline and drains the cursor into documents.
	AggregateAll(ctx context.Context, pipeline any, opts ...*options.AggregateOptions) ([]map[string]interface{}, error)

	Distinct(ctx context.Context, field string, filter any, opts ...*options.DistinctOptions) ([]interface{}, error)
}

// Repository combines CRUD, query, and aggregation operations and exposes
// the bound driver collection for advanced use cases.
type Repository[T any] interface {
	CrudRepository[T]
	QueryRepository[T]
	AggregateRepository[T]
	Collection() *mongo.Collection
}
