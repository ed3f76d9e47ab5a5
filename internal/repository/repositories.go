// Package repository handles all interactions with the database.
//
// It contains the SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Repositories report results as outcome.Outcome values instead of errors.
package repository

import (
	"github.com/deppfellow/contacts/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Contacts *ContactRepository
}

// NewRepositories constructs the repository container over the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Contacts: NewContactRepository(s.DB.Pool, s.Config.Observability.Logging.SlowQueryThreshold),
	}
}
