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
	"sort"
	"sync"

	"github.com/tomoncle/mango/schema"
)

var defaultRegistry = newModelRegistry()

// ModelRegistry stores schema definitions keyed by model (collection) name.
// Registering the same name twice returns the cached definition unchanged.
type ModelRegistry interface {
	Register(name string, s *schema.Schema) *schema.Schema
	Replace(name string, s *schema.Schema)
	Get(name string) (*schema.Schema, bool)
	Names() []string
}

type modelRegistry struct {
	schemas map[string]*schema.Schema
	mutex   sync.RWMutex
}

func newModelRegistry() ModelRegistry {
	return &modelRegistry{
		schemas: make(map[string]*schema.Schema),
	}
}

func (r *modelRegistry) Register(name string, s *schema.Schema) *schema.Schema {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if existing, ok := r.schemas[name]; ok {
		return existing
	}
	r.schemas[name] = s
	return s
}

func (r *modelRegistry) Replace(name string, s *schema.Schema) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.schemas[name] = s
}

func (r *modelRegistry) Get(name string) (*schema.Schema, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	s, ok := r.schemas[name]
	return s, ok
}

func (r *modelRegistry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterModel adds a schema to the default registry under the given model
// name and returns the registered definition. If a schema is already
// registered under the name, the cached definition is returned instead.
func RegisterModel(name string, s *schema.Schema) *schema.Schema {
	return defaultRegistry.Register(name, s)
}

// GetModel returns the schema registered under the model name.
func GetModel(name string) (*schema.Schema, bool) {
	return defaultRegistry.Get(name)
}

// RegisteredModelNames returns the registered model names in sorted order.
func RegisteredModelNames() []string {
	return defaultRegistry.Names()
}

// GetModelRegistry exposes the default registry.
func GetModelRegistry() ModelRegistry {
	return defaultRegistry
}
