// Package handler is the HTTP layer between the router and the services.
//
// It binds and validates requests, calls the service layer and maps every
// outcome.Outcome it gets back onto a status code and body.
package handler

import (
	"github.com/deppfellow/contacts/internal/server"
	"github.com/deppfellow/contacts/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Contacts *ContactHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Contacts: NewContactHandler(s, services.Contacts),
	}
}
