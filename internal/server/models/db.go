// Package models defines server-side records persisted in the database and
// returned by the REST API.
package models
