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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestQueryFilterValue(t *testing.T) {
	var nilFilter *QueryFilter
	assert.Equal(t, bson.D{}, nilFilter.Value())
	assert.Equal(t, bson.D{}, NewQueryFilter(nil).Value())

	f := NewQueryFilter(bson.M{"name": "bob"})
	assert.Equal(t, bson.M{"name": "bob"}, f.Value())
}

func TestPageRequestDefaults(t *testing.T) {
	p := NewDefaultPageRequest(0, 0)
	assert.Equal(t, 1, p.GetPage())
	assert.Equal(t, 10, p.GetPageSize())
	assert.Equal(t, 0, p.GetOffset())

	p = NewDefaultPageRequest(-3, -5)
	assert.Equal(t, 1, p.GetPage())
	assert.Equal(t, 10, p.GetPageSize())
}

func TestPageRequestOffset(t *testing.T) {
	p := NewDefaultPageRequest(3, 20)
	assert.Equal(t, 40, p.GetOffset())
}

func TestPageRequestSort(t *testing.T) {
	p := NewPageRequestWithOrders(1, 10, []string{"name", "-created_at", "", "-", " age "})
	want := bson.D{
		{Key: "name", Value: 1},
		{Key: "created_at", Value: -1},
		{Key: "age", Value: 1},
	}
	assert.Equal(t, want, p.GetSort())
}

func TestPageRequestFilter(t *testing.T) {
	filter := NewQueryFilter(bson.M{"active": true})
	p := NewPageRequestWithFilter(2, 5, filter)
	assert.Same(t, filter, p.GetFilter())
	assert.Equal(t, 2, p.GetPage())
	assert.Equal(t, 5, p.GetPageSize())
}

func TestNewDefaultPagination(t *testing.T) {
	type user struct{ Name string }
	pg := NewDefaultPagination[user](2, 25)
	assert.Equal(t, 2, pg.Page)
	assert.Equal(t, 25, pg.PageSize)
	assert.Zero(t, pg.Total)
	assert.Empty(t, pg.Items)
}
