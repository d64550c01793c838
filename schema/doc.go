// Package schema provides a fluent builder that accumulates field type and
// validation metadata for a collection, and renders it as a MongoDB
// $jsonSchema validator and index models.
package schema
