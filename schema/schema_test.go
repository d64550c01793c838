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

package schema

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSchemaAccumulatesFields(t *testing.T) {
	s := New()
	s.Field("name", String).Required().MaxLength(64).
		Field("age", Int).Min(0).Max(150).
		Field("email", String).Unique().Match(`^[^@]+@[^@]+$`)

	fields := s.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, []string{"name", "age", "email"}, s.FieldNames())

	assert.Equal(t, String, fields["name"][OptionType])
	assert.Equal(t, true, fields["name"][OptionRequired])
	assert.Equal(t, 64, fields["name"][OptionMaxLength])
	assert.Equal(t, float64(0), fields["age"][OptionMin])
	assert.Equal(t, float64(150), fields["age"][OptionMax])
	assert.Equal(t, true, fields["email"][OptionUnique])
}

func TestSchemaLastOptionWins(t *testing.T) {
	s := New()
	f := s.Field("status", String).Required().Default("active")
	f.Optional().Default("inactive")

	opts := s.Fields()["status"]
	assert.Equal(t, false, opts[OptionRequired])
	assert.Equal(t, "inactive", opts[OptionDefault])
}

func TestSchemaRetypeKeepsSingleEntry(t *testing.T) {
	s := New()
	s.Field("count", String)
	s.Field("count", Long)

	assert.Equal(t, []string{"count"}, s.FieldNames())
	assert.Equal(t, Long, s.Fields()["count"][OptionType])
}

func TestSchemaValidator(t *testing.T) {
	s := New()
	s.Field("name", String).Required().MinLength(1).MaxLength(64).
		Field("age", Int).Min(0).
		Field("role", String).Enum("admin", "user")

	v := s.Validator()
	js, ok := v["$jsonSchema"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "object", js["bsonType"])
	assert.Equal(t, []string{"name"}, js["required"])

	props, ok := js["properties"].(bson.M)
	require.True(t, ok)
	name := props["name"].(bson.M)
	assert.Equal(t, "string", name["bsonType"])
	assert.Equal(t, 1, name["minLength"])
	assert.Equal(t, 64, name["maxLength"])

	age := props["age"].(bson.M)
	assert.Equal(t, "int", age["bsonType"])
	assert.Equal(t, float64(0), age["minimum"])

	role := props["role"].(bson.M)
	assert.Equal(t, []interface{}{"admin", "user"}, role["enum"])
}

func TestSchemaIndexes(t *testing.T) {
	s := New()
	s.Field("email", String).Unique().
		Field("name", String).Index().
		Field("age", Int)

	models := s.Indexes()
	require.Len(t, models, 2)
	assert.Equal(t, "uniq_email", *models[0].Options.Name)
	assert.True(t, *models[0].Options.Unique)
	assert.Equal(t, "idx_name", *models[1].Options.Name)
}

func TestSchemaUUIDField(t *testing.T) {
	s := New()
	s.Field("token", UUID)

	opts := s.Fields()["token"]
	fn, ok := opts[OptionDefaultFunc].(func() interface{})
	require.True(t, ok)

	value, ok := fn().(string)
	require.True(t, ok)
	_, err := uuid.Parse(value)
	assert.NoError(t, err)

	// UUID fields are stored as strings.
	props := s.Validator()["$jsonSchema"].(bson.M)["properties"].(bson.M)
	assert.Equal(t, "string", props["token"].(bson.M)["bsonType"])
}

func TestSchemaApplyDefaults(t *testing.T) {
	s := New()
	s.Field("status", String).Default("active").
		Field("token", UUID).
		Field("name", String)

	doc := s.ApplyDefaults(bson.M{"name": "bob"})
	assert.Equal(t, "bob", doc["name"])
	assert.Equal(t, "active", doc["status"])
	assert.NotEmpty(t, doc["token"])

	// Present values are never overwritten.
	doc = s.ApplyDefaults(bson.M{"status": "archived"})
	assert.Equal(t, "archived", doc["status"])
}
