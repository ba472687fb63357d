// Package pipeline holds the domain model of the build pipeline: builds,
// phases, command results and the contracts for running steps, persisting
// build history, reporting coverage and notifying channels.
package pipeline
