// Package repository provides a generic repository abstraction that binds a
// collection name once and delegates CRUD, counting, and aggregation directly
// to the MongoDB driver.
package repository
