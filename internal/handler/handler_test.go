package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/contacts/internal/config"
	"github.com/deppfellow/contacts/internal/errs"
	"github.com/deppfellow/contacts/internal/logger"
	"github.com/deppfellow/contacts/internal/model"
	"github.com/deppfellow/contacts/internal/outcome"
	"github.com/deppfellow/contacts/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	cfg := config.DefaultConfig()
	log := zerolog.Nop()
	return &server.Server{
		Config:        &cfg,
		Logger:        &log,
		LoggerService: &logger.LoggerService{},
	}
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestResponseWrite(t *testing.T) {
	t.Run("string body is a json string", func(t *testing.T) {
		c, rec := newContext(http.MethodGet, "/", "")

		require.NoError(t, message(outcome.NotFound{}, http.StatusNotFound, "Contact 1 not found").write(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `"Contact 1 not found"`, rec.Body.String())
	})

	t.Run("nil body writes nothing", func(t *testing.T) {
		c, rec := newContext(http.MethodDelete, "/", "")

		require.NoError(t, empty(outcome.Void{}, http.StatusNoContent).write(c))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("location header", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/", "")

		resp := reply(outcome.Ok(1), http.StatusCreated, map[string]int{"id": 1})
		resp.Location = "/api/contacts/1"
		require.NoError(t, resp.write(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/api/contacts/1", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, "success", resp.Outcome)
	})
}

type countingRequest struct {
	Name string `json:"name"`
}

func (r *countingRequest) Validate() error {
	return nil
}

func TestHandleResultAllocatesPerRequest(t *testing.T) {
	var seen []*countingRequest

	h := HandleResult[countingRequest](NewHandler(newTestServer()), func(c echo.Context, req *countingRequest) (*Response, error) {
		seen = append(seen, req)
		return reply(outcome.Ok(req.Name), http.StatusOK, req.Name), nil
	})

	for _, name := range []string{"a", "b"} {
		c, rec := newContext(http.MethodPost, "/", `{"name":"`+name+`"}`)
		require.NoError(t, h(c))
		assert.JSONEq(t, `"`+name+`"`, rec.Body.String())
	}

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
}

func TestHandleResultValidationError(t *testing.T) {
	h := HandleResult[UpdateContactRequest](NewHandler(newTestServer()), func(c echo.Context, req *UpdateContactRequest) (*Response, error) {
		t.Fatal("handler must not run on invalid input")
		return nil, nil
	})

	c, _ := newContext(http.MethodPut, "/", `{"name":"Ann","email":"not-an-email","address":"`+strings.Repeat("x", 101)+`"}`)
	err := h(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.True(t, httpErr.Plain)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "email must be a valid email address", httpErr.Message)

	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "address", httpErr.Errors[1].Field)
	assert.Equal(t, "address must not exceed 100 characters", httpErr.Errors[1].Error)
}

func TestBuildContact(t *testing.T) {
	contact, err := buildContact("Ann", "", "1969-01-19", "ann@example.com", "")
	require.NoError(t, err)

	assert.Equal(t, model.KindWork, contact.Kind)
	assert.Nil(t, contact.Address)
	require.NotNil(t, contact.BirthDate)
	assert.Equal(t, "1969-01-19", contact.BirthDate.String())
	require.NotNil(t, contact.Email)
	assert.Equal(t, "ann@example.com", *contact.Email)

	_, err = buildContact("Ann", "", "", "", "Enemy")
	assert.Error(t, err)
}

func TestCheckHealth(t *testing.T) {
	s := newTestServer()

	t.Run("all checks pass", func(t *testing.T) {
		h := newHealthHandler(s, map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
		})

		c, rec := newContext(http.MethodGet, "/status", "")
		require.NoError(t, h.CheckHealth(c))

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Contains(t, body["checks"], "database")
	})

	t.Run("a failing check is a 503", func(t *testing.T) {
		h := newHealthHandler(s, map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("dial tcp: connection refused") },
		})

		c, rec := newContext(http.MethodGet, "/status", "")
		require.NoError(t, h.CheckHealth(c))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body struct {
			Status string                       `json:"status"`
			Checks map[string]map[string]string `json:"checks"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unhealthy", body.Status)
		assert.Equal(t, "healthy", body.Checks["database"]["status"])
		assert.Equal(t, "dial tcp: connection refused", body.Checks["redis"]["error"])
	})
}

func TestNewHealthHandlerSkipsMissingDependencies(t *testing.T) {
	h := NewHealthHandler(newTestServer())
	assert.Empty(t, h.checks)
}

func TestUpdateContactRequestViolationOrder(t *testing.T) {
	err := (&UpdateContactRequest{
		ID:        1,
		Name:      "",
		BirthDate: "not-a-date",
		Email:     "not-an-email",
	}).Validate()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.True(t, httpErr.Plain)
	assert.Equal(t, "name must not be empty", httpErr.Message)

	fields := make([]string, 0, len(httpErr.Errors))
	for _, fe := range httpErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"name", "birthDate", "email"}, fields)
	assert.Equal(t, "birthDate must be a valid date (YYYY-MM-DD)", httpErr.Errors[1].Error)
	assert.Equal(t, "email must be a valid email address", httpErr.Errors[2].Error)
}

func TestCreateContactRequestRejectsBlankName(t *testing.T) {
	err := (&CreateContactRequest{Name: "   "}).Validate()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Invalid model", httpErr.Message)
}
