// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to interact with databases, managing
// subscribers, the newsletter catalog, API users and build history.
// The package includes validation and logging for traceability and
// error handling.
package persistence
