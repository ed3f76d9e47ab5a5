package handler

import (
	"github.com/deppfellow/contacts/internal/outcome"
	"github.com/labstack/echo/v4"
)

// Response is what a typed handler asks the pipeline to write.
//
// A nil Body writes no body at all; a string Body is written as a JSON string.
type Response struct {
	Status   int
	Body     any
	Location string

	// Outcome names the variant the response was derived from.
	Outcome string
}

func (r *Response) write(c echo.Context) error {
	if r.Location != "" {
		c.Response().Header().Set(echo.HeaderLocation, r.Location)
	}
	if r.Body == nil {
		return c.NoContent(r.Status)
	}
	return c.JSON(r.Status, r.Body)
}

func reply(o outcome.Outcome, status int, body any) *Response {
	return &Response{Status: status, Body: body, Outcome: outcome.Name(o)}
}

func message(o outcome.Outcome, status int, msg string) *Response {
	return reply(o, status, msg)
}

func empty(o outcome.Outcome, status int) *Response {
	return reply(o, status, nil)
}
