package router

import (
	"github.com/deppfellow/contacts/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerContactRoutes(g *echo.Group, h *handler.Handlers) {
	contacts := h.Contacts

	g.GET("", handler.HandleResult[handler.ListContactsRequest](contacts.Handler, contacts.List))
	g.POST("", handler.HandleResult[handler.CreateContactRequest](contacts.Handler, contacts.Create))
	g.GET("/:id", handler.HandleResult[handler.ContactIDRequest](contacts.Handler, contacts.Get))
	g.PUT("/:id", handler.HandleResult[handler.UpdateContactRequest](contacts.Handler, contacts.Update))
	g.DELETE("/:id", handler.HandleResult[handler.ContactIDRequest](contacts.Handler, contacts.Delete))
}
