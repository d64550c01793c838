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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomoncle/mango/schema"
)

func TestRegisterReturnsCachedDefinition(t *testing.T) {
	registry := newModelRegistry()

	first := schema.New()
	first.Field("name", schema.String).Required()

	second := schema.New()
	second.Field("other", schema.Int)

	registered := registry.Register("users", first)
	assert.Same(t, first, registered)

	// Registering again under the same name must not replace the cached
	// definition.
	registered = registry.Register("users", second)
	assert.Same(t, first, registered)

	got, ok := registry.Get("users")
	assert.True(t, ok)
	assert.Same(t, first, got)
}

func TestRegistryReplace(t *testing.T) {
	registry := newModelRegistry()

	first := schema.New()
	second := schema.New()

	registry.Register("users", first)
	registry.Replace("users", second)

	got, ok := registry.Get("users")
	assert.True(t, ok)
	assert.Same(t, second, got)
}

func TestRegistryNamesSorted(t *testing.T) {
	registry := newModelRegistry()
	registry.Register("orders", schema.New())
	registry.Register("accounts", schema.New())
	registry.Register("users", schema.New())

	assert.Equal(t, []string{"accounts", "orders", "users"}, registry.Names())
}

func TestRegistryGetMissing(t *testing.T) {
	registry := newModelRegistry()
	_, ok := registry.Get("missing")
	assert.False(t, ok)
}
