package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/contacts/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type personRequest struct {
	ID        int    `param:"id" json:"-"`
	Name      string `json:"name" validate:"required,notblank,max=5"`
	BirthDate string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Email     string `json:"email" validate:"omitempty,email"`
	Kind      string `json:"kind" validate:"omitempty,oneof=Work Personal"`
}

func (r *personRequest) Validate() error {
	return Struct(r)
}

type customRequest struct{}

func (r *customRequest) Validate() error {
	return CustomValidationErrors{{Field: "name", Message: "name is taken"}}
}

type plainRequest struct{}

func (r *plainRequest) Validate() error {
	return errs.NewPlainError(http.StatusBadRequest, "Invalid model")
}

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestExtractValidationErrorsOrder(t *testing.T) {
	err := Struct(&personRequest{Name: "", BirthDate: "not-a-date", Email: "not-an-email"})
	require.Error(t, err)

	msg, fieldErrors := ExtractValidationErrors(err)
	assert.Equal(t, "Validation failed", msg)
	assert.Equal(t, []errs.FieldError{
		{Field: "name", Error: "name must not be empty"},
		{Field: "birthDate", Error: "birthDate must be a valid date (YYYY-MM-DD)"},
		{Field: "email", Error: "email must be a valid email address"},
	}, fieldErrors)
}

func TestStructMessages(t *testing.T) {
	tests := []struct {
		name string
		req  personRequest
		want string
	}{
		{"blank name", personRequest{Name: "   "}, "name must not be empty"},
		{"long name", personRequest{Name: "abcdefg"}, "name must not exceed 5 characters"},
		{"unknown kind", personRequest{Name: "Ann", Kind: "Enemy"}, "kind must be one of: Work, Personal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fieldErrors := ExtractValidationErrors(Struct(&tt.req))
			require.Len(t, fieldErrors, 1)
			assert.Equal(t, tt.want, fieldErrors[0].Error)
		})
	}

	assert.NoError(t, Struct(&personRequest{Name: "Ann", BirthDate: "1969-01-19", Email: "ann@example.com", Kind: "Work"}))
}

func TestBindAndValidate(t *testing.T) {
	t.Run("malformed json is a plain bad request", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, `{"name":`)

		err := BindAndValidate(c, &personRequest{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.True(t, httpErr.Plain)
		assert.NotEmpty(t, httpErr.Message)
	})

	t.Run("validator errors carry field errors", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, `{"name":"","email":"nope"}`)

		err := BindAndValidate(c, &personRequest{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.False(t, httpErr.Plain)
		assert.Len(t, httpErr.Errors, 2)
	})

	t.Run("custom errors are converted", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, `{}`)

		err := BindAndValidate(c, &customRequest{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, []errs.FieldError{{Field: "name", Error: "name is taken"}}, httpErr.Errors)
	})

	t.Run("http errors from Validate are returned as is", func(t *testing.T) {
		c, _ := newContext(http.MethodPost, `{}`)

		err := BindAndValidate(c, &plainRequest{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, "Invalid model", httpErr.Message)
		assert.True(t, httpErr.Plain)
	})

	t.Run("valid payload is bound", func(t *testing.T) {
		c, _ := newContext(http.MethodPut, `{"name":"Ann","birthDate":"1969-01-19"}`)
		c.SetParamNames("id")
		c.SetParamValues("7")

		req := &personRequest{}
		require.NoError(t, BindAndValidate(c, req))
		assert.Equal(t, 7, req.ID)
		assert.Equal(t, "Ann", req.Name)
	})
}
