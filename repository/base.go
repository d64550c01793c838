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
	"errors"

	"github.com/tomoncle/mango/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type baseRepositoryImpl[T any] struct {
	coll *mongo.Collection
}

// NewRepository returns a generic repository bound to the named collection of
// the provided database handle.
func NewRepository[T any](db *mongo.Database, collection string) Repository[T] {
	return &baseRepositoryImpl[T]{coll: db.Collection(collection)}
}

// NewRepositoryWithCollection returns a generic repository bound to an
// existing driver collection.
func NewRepositoryWithCollection[T any](coll *mongo.Collection) Repository[T] {
	return &baseRepositoryImpl[T]{coll: coll}
}

func (r *baseRepositoryImpl[T]) Collection() *mongo.Collection { return r.coll }

func (r *baseRepositoryImpl[T]) valsToAny(docs []*T) []interface{} {
	values := make([]interface{}, len(docs))
	for i, doc := range docs {
		values[i] = doc
	}
	return values
}

func (r *baseRepositoryImpl[T]) InsertOne(ctx context.Context, doc *T, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	return r.coll.InsertOne(ctx, doc, opts...)
}

func (r *baseRepositoryImpl[T]) InsertMany(ctx context.Context, docs []*T, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	return r.coll.InsertMany(ctx, r.valsToAny(docs), opts...)
}

func (r *baseRepositoryImpl[T]) UpdateByID(ctx context.Context, id any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return r.coll.UpdateByID(ctx, id, update, opts...)
}

func (r *baseRepositoryImpl[T]) UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return r.coll.UpdateOne(ctx, filter, update, opts...)
}

func (r *baseRepositoryImpl[T]) UpdateMany(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return r.coll.UpdateMany(ctx, filter, update, opts...)
}

func (r *baseRepositoryImpl[T]) ReplaceOne(ctx context.Context, filter any, doc *T, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	return r.coll.ReplaceOne(ctx, filter, doc, opts...)
}

func (r *baseRepositoryImpl[T]) DeleteByID(ctx context.Context, id any) (*mongo.DeleteResult, error) {
	return r.coll.DeleteOne(ctx, bson.M{"_id": id})
}

func (r *baseRepositoryImpl[T]) DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	return r.coll.DeleteOne(ctx, filter, opts...)
}

func (r *baseRepositoryImpl[T]) DeleteMany(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	return r.coll.DeleteMany(ctx, filter, opts...)
}

func (r *baseRepositoryImpl[T]) FindByID(ctx context.Context, id any) (*T, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

func (r *baseRepositoryImpl[T]) FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var entity T
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) Find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var entities []*T
	if err := cursor.All(ctx, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Page(ctx context.Context, pageRequest *types.PageRequest) (*types.Pagination[T], error) {
	filter := pageRequest.GetFilter().Value()
	pagination := types.NewDefaultPagination[T](pageRequest.GetPage(), pageRequest.GetPageSize())

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil || total == 0 {
		return pagination, err
	}

	findOpts := options.Find().
		SetSkip(int64(pageRequest.GetOffset())).
		SetLimit(int64(pageRequest.GetPageSize()))
	if sort := pageRequest.GetSort(); len(sort) > 0 {
		findOpts.SetSort(sort)
	}

	entities, err := r.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	pagination.Total = total
	pagination.Items = entities
	return pagination, nil
}

func (r *baseRepositoryImpl[T]) Count(ctx context.Context, filter any, opts ...*options.CountOptions) (int64, error) {
	return r.coll.CountDocuments(ctx, filter, opts...)
}

func (r *baseRepositoryImpl[T]) EstimatedCount(ctx context.Context, opts ...*options.EstimatedDocumentCountOptions) (int64, error) {
	return r.coll.EstimatedDocumentCount(ctx, opts...)
}

func (r *baseRepositoryImpl[T]) Exists(ctx context.Context, id any) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *baseRepositoryImpl[T]) Aggregate(ctx context.Context, pipeline any, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	return r.coll.Aggregate(ctx, pipeline, opts...)
}

func (r *baseRepositoryImpl[T]) AggregateAll(ctx context.Context, pipeline any, opts ...*options.AggregateOptions) ([]map[string]interface{}, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline, opts...)
	if err != nil {
		return nil, err
	}
	var results []map[string]interface{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *baseRepositoryImpl[T]) Distinct(ctx context.Context, field string, filter any, opts ...*options.DistinctOptions) ([]interface{}, error) {
	return r.coll.Distinct(ctx, field, filter, opts...)
}
