package handler

import (
	"time"

	"github.com/deppfellow/contacts/internal/middleware"
	"github.com/deppfellow/contacts/internal/server"
	"github.com/deppfellow/contacts/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// ResultFunc is a typed endpoint: it receives a bound, validated request and
// returns the Response to write.
type ResultFunc[Req validation.Validatable] func(c echo.Context, req Req) (*Response, error)

// ResponseHandler defines how a successful handler result is written and
// which New Relic attributes describe it.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// ResultResponseHandler writes *Response values.
type ResultResponseHandler struct{}

func (h ResultResponseHandler) Handle(c echo.Context, result interface{}) error {
	return result.(*Response).write(c)
}

func (h ResultResponseHandler) GetOperation() string {
	return "handler_result"
}

func (h ResultResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if resp, ok := result.(*Response); ok && resp != nil {
		txn.AddAttribute("outcome", resp.Outcome)
	}
}

// handleRequest is the shared execution pipeline for all typed handlers:
// binding and validation, request-scoped logging, New Relic attributes,
// timings, and response writing.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	event := logger.Info()
	if resp, ok := result.(*Response); ok {
		event = event.Str("outcome", resp.Outcome).Int("status", resp.Status)
	}
	event.
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed")

	return responseHandler.Handle(c, result)
}

// HandleResult wraps a ResultFunc with binding, validation, logging and tracing.
// A fresh request value is allocated for every call.
//
//	group.POST("", handler.HandleResult(h.Handler, h.Create))
func HandleResult[R any, Req interface {
	*R
	validation.Validatable
}](h Handler, fn ResultFunc[Req]) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(R)), func(c echo.Context, req Req) (interface{}, error) {
			return fn(c, req)
		}, ResultResponseHandler{})
	}
}
