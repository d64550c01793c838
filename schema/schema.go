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
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FieldType names the BSON type a field is declared with.
type FieldType string

const (
	String   FieldType = "string"
	Int      FieldType = "int"
	Long     FieldType = "long"
	Double   FieldType = "double"
	Bool     FieldType = "bool"
	Date     FieldType = "date"
	ObjectID FieldType = "objectId"
	Array    FieldType = "array"
	Object   FieldType = "object"
	Decimal  FieldType = "decimal"
	// UUID is a string field whose default value is generated with
	// github.com/google/uuid when none is supplied.
	UUID FieldType = "uuid"
)

// Option keys stored in a field's metadata mapping. The last value set for a
// key wins.
const (
	OptionType        = "type"
	OptionRequired    = "required"
	OptionUnique      = "unique"
	OptionIndex       = "index"
	OptionDefault     = "default"
	OptionDefaultFunc = "default_func"
	OptionMin         = "min"
	OptionMax         = "max"
	OptionMinLength   = "min_length"
	OptionMaxLength   = "max_length"
	OptionEnum        = "enum"
	OptionMatch       = "match"
	OptionRef         = "ref"
)

// Schema accumulates field definitions for a collection. It performs no
// validation of its own; the resulting metadata is consumed by collection
// provisioning and by the server-side validator.
type Schema struct {
	mu     sync.RWMutex
	order  []string
	fields map[string]*Field
}

// Field holds the metadata mapping accumulated for a single field and keeps a
// reference to its schema so builder chains can continue.
type Field struct {
	schema  *Schema
	name    string
	options map[string]interface{}
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{fields: make(map[string]*Field)}
}

// Field adds a field with the given type, or re-types an existing field,
// and returns it for option chaining.
func (s *Schema) Field(name string, t FieldType) *Field {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fields[name]
	if !ok {
		f = &Field{schema: s, name: name, options: make(map[string]interface{})}
		s.fields[name] = f
		s.order = append(s.order, name)
	}
	f.options[OptionType] = t
	if t == UUID {
		f.options[OptionDefaultFunc] = func() interface{} { return uuid.NewString() }
	}
	return f
}

// Field continues the chain on the parent schema.
func (f *Field) Field(name string, t FieldType) *Field { return f.schema.Field(name, t) }

// Done returns the schema the field belongs to.
func (f *Field) Done() *Schema { return f.schema }

// Name returns the field name.
func (f *Field) Name() string { return f.name }

func (f *Field) set(key string, value interface{}) *Field {
	f.schema.mu.Lock()
	defer f.schema.mu.Unlock()
	f.options[key] = value
	return f
}

// Required marks the field as mandatory on write.
func (f *Field) Required() *Field { return f.set(OptionRequired, true) }

// Optional clears a previous Required.
func (f *Field) Optional() *Field { return f.set(OptionRequired, false) }

// Unique declares a unique index on the field.
func (f *Field) Unique() *Field { return f.set(OptionUnique, true) }

// Index declares a non-unique index on the field.
func (f *Field) Index() *Field { return f.set(OptionIndex, true) }

// Default sets a static default value.
func (f *Field) Default(value interface{}) *Field { return f.set(OptionDefault, value) }

// DefaultFunc sets a generator invoked per document for the default value.
func (f *Field) DefaultFunc(fn func() interface{}) *Field { return f.set(OptionDefaultFunc, fn) }

// Min sets the minimum numeric value.
func (f *Field) Min(value float64) *Field { return f.set(OptionMin, value) }

// Max sets the maximum numeric value.
func (f *Field) Max(value float64) *Field { return f.set(OptionMax, value) }

// MinLength sets the minimum string length.
func (f *Field) MinLength(n int) *Field { return f.set(OptionMinLength, n) }

// MaxLength sets the maximum string length.
func (f *Field) MaxLength(n int) *Field { return f.set(OptionMaxLength, n) }

// Enum restricts the field to the given values.
func (f *Field) Enum(values ...interface{}) *Field { return f.set(OptionEnum, values) }

// Match restricts string values to the given regular expression pattern. The
// pattern is not compiled here; it is enforced server-side by the validator.
func (f *Field) Match(pattern string) *Field { return f.set(OptionMatch, pattern) }

// Ref records the name of the model this field references.
func (f *Field) Ref(model string) *Field { return f.set(OptionRef, model) }

// Options returns a copy of the field's metadata mapping.
func (f *Field) Options() map[string]interface{} {
	f.schema.mu.RLock()
	defer f.schema.mu.RUnlock()
	out := make(map[string]interface{}, len(f.options))
	for k, v := range f.options {
		out[k] = v
	}
	return out
}

// FieldNames returns the field names in the order they were added.
func (s *Schema) FieldNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Fields returns the accumulated field-name to metadata mapping. The mapping
// contains exactly the fields added, each with the options last set.
func (s *Schema) Fields() map[string]map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]map[string]interface{}, len(s.fields))
	for name, f := range s.fields {
		opts := make(map[string]interface{}, len(f.options))
		for k, v := range f.options {
			opts[k] = v
		}
		out[name] = opts
	}
	return out
}

func bsonType(t FieldType) string {
	if t == UUID {
		return "string"
	}
	return string(t)
}

// Validator renders the schema as a $jsonSchema validator document suitable
// for createCollection or collMod.
func (s *Schema) Validator() bson.M {
	s.mu.RLock()
	defer s.mu.RUnlock()

	properties := bson.M{}
	var required []string
	for _, name := range s.order {
		f := s.fields[name]
		prop := bson.M{}
		if t, ok := f.options[OptionType].(FieldType); ok {
			prop["bsonType"] = bsonType(t)
		}
		if v, ok := f.options[OptionMin]; ok {
			prop["minimum"] = v
		}
		if v, ok := f.options[OptionMax]; ok {
			prop["maximum"] = v
		}
		if v, ok := f.options[OptionMinLength]; ok {
			prop["minLength"] = v
		}
		if v, ok := f.options[OptionMaxLength]; ok {
			prop["maxLength"] = v
		}
		if v, ok := f.options[OptionEnum]; ok {
			prop["enum"] = v
		}
		if v, ok := f.options[OptionMatch]; ok {
			prop["pattern"] = v
		}
		properties[name] = prop
		if req, ok := f.options[OptionRequired].(bool); ok && req {
			required = append(required, name)
		}
	}

	js := bson.M{
		"bsonType":   "object",
		"properties": properties,
	}
	if len(required) > 0 {
		js["required"] = required
	}
	return bson.M{"$jsonSchema": js}
}

// Indexes returns index models for every field declared Unique or Index, in
// field order. Unique indexes are named "uniq_<field>", plain ones "idx_<field>".
func (s *Schema) Indexes() []mongo.IndexModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var models []mongo.IndexModel
	for _, name := range s.order {
		f := s.fields[name]
		if u, ok := f.options[OptionUnique].(bool); ok && u {
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: name, Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_" + name),
			})
			continue
		}
		if i, ok := f.options[OptionIndex].(bool); ok && i {
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: name, Value: 1}},
				Options: options.Index().SetName("idx_" + name),
			})
		}
	}
	return models
}

// ApplyDefaults fills missing fields on the document with their declared
// default values, invoking DefaultFunc generators when present. The document
// is modified in place and returned.
func (s *Schema) ApplyDefaults(doc bson.M) bson.M {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc == nil {
		doc = bson.M{}
	}
	for _, name := range s.order {
		if _, exists := doc[name]; exists {
			continue
		}
		f := s.fields[name]
		if fn, ok := f.options[OptionDefaultFunc].(func() interface{}); ok {
			doc[name] = fn()
			continue
		}
		if v, ok := f.options[OptionDefault]; ok {
			doc[name] = v
		}
	}
	return doc
}
