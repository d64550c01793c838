// Package database provides connection-string construction, connection
// management, model/schema registration, collection provisioning, data
// seeding, configuration types, logging, health checks, and related utilities
// built on top of the official MongoDB driver.
package database
