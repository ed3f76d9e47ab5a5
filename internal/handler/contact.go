package handler

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/deppfellow/contacts/internal/errs"
	"github.com/deppfellow/contacts/internal/model"
	"github.com/deppfellow/contacts/internal/outcome"
	"github.com/deppfellow/contacts/internal/server"
	"github.com/deppfellow/contacts/internal/validation"
	"github.com/labstack/echo/v4"
)

// ContactsPath is the collection route of the contacts API.
const ContactsPath = "/api/contacts"

// ContactService is the business layer the contact endpoints talk to.
type ContactService interface {
	Add(ctx context.Context, contact model.Contact) outcome.Outcome
	GetByID(ctx context.Context, id int) outcome.Outcome
	GetAll(ctx context.Context) outcome.Outcome
	Update(ctx context.Context, id int, data model.Contact) outcome.Outcome
	Delete(ctx context.Context, id int) outcome.Outcome
}

// ContactSummary is the list view of a contact.
type ContactSummary struct {
	ID   int        `json:"id"`
	Name string     `json:"name"`
	Kind model.Kind `json:"kind"`
}

// ContactDetail is the full view of a contact.
type ContactDetail struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Address   *string     `json:"address,omitempty"`
	BirthDate *civil.Date `json:"birthDate,omitempty"`
	Email     *string     `json:"email,omitempty"`
	Kind      model.Kind  `json:"kind"`
}

func toSummaries(contacts []model.Contact) []ContactSummary {
	out := make([]ContactSummary, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, ContactSummary{ID: c.ID, Name: c.Name, Kind: c.Kind})
	}
	return out
}

func toDetail(c model.Contact) ContactDetail {
	return ContactDetail{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		BirthDate: c.BirthDate,
		Email:     c.Email,
		Kind:      c.Kind,
	}
}

type ListContactsRequest struct{}

func (r *ListContactsRequest) Validate() error {
	return nil
}

// ContactIDRequest addresses a contact by path only; a body id is ignored.
type ContactIDRequest struct {
	ID int `param:"id" json:"-"`
}

func (r *ContactIDRequest) Validate() error {
	return nil
}

// CreateContactRequest is only checked structurally. Any violation is
// answered with a bare "Invalid model".
type CreateContactRequest struct {
	Name      string `json:"name" validate:"required,notblank"`
	Address   string `json:"address"`
	BirthDate string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Email     string `json:"email"`
	Kind      string `json:"kind" validate:"omitempty,oneof=Work Personal Family"`
}

func (r *CreateContactRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return errs.NewPlainError(http.StatusBadRequest, "Invalid model")
	}
	return nil
}

func (r *CreateContactRequest) toModel() (model.Contact, error) {
	return buildContact(r.Name, r.Address, r.BirthDate, r.Email, r.Kind)
}

// UpdateContactRequest reports the first violation in field order as the
// response body. All violations are kept as field errors for logging.
type UpdateContactRequest struct {
	ID        int    `param:"id" json:"-"`
	Name      string `json:"name" validate:"required,notblank,max=50"`
	BirthDate string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Email     string `json:"email" validate:"omitempty,email,max=100"`
	Address   string `json:"address" validate:"omitempty,max=100"`
	Kind      string `json:"kind" validate:"omitempty,oneof=Work Personal Family"`
}

func (r *UpdateContactRequest) Validate() error {
	err := validation.Struct(r)
	if err == nil {
		return nil
	}

	msg, fieldErrors := validation.ExtractValidationErrors(err)
	if len(fieldErrors) > 0 {
		msg = fieldErrors[0].Error
	}
	return errs.NewPlainError(http.StatusBadRequest, msg).WithFieldErrors(fieldErrors)
}

func (r *UpdateContactRequest) toModel() (model.Contact, error) {
	return buildContact(r.Name, r.Address, r.BirthDate, r.Email, r.Kind)
}

func buildContact(name, address, birthDate, email, kind string) (model.Contact, error) {
	k, err := model.ParseKind(kind)
	if err != nil {
		return model.Contact{}, err
	}

	contact := model.Contact{
		Name:    name,
		Address: optional(address),
		Email:   optional(email),
		Kind:    k,
	}

	if birthDate != "" {
		d, err := civil.ParseDate(birthDate)
		if err != nil {
			return model.Contact{}, err
		}
		contact.BirthDate = &d
	}

	return contact, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ContactHandler serves the /api/contacts routes and turns every Outcome the
// service returns into exactly one HTTP response.
type ContactHandler struct {
	Handler
	contacts ContactService
}

func NewContactHandler(s *server.Server, contacts ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:  NewHandler(s),
		contacts: contacts,
	}
}

func (h *ContactHandler) List(c echo.Context, _ *ListContactsRequest) (*Response, error) {
	switch result := h.contacts.GetAll(c.Request().Context()).(type) {
	case outcome.Success[[]model.Contact]:
		return reply(result, http.StatusOK, toSummaries(result.Value)), nil
	case outcome.SystemError:
		return message(result, http.StatusInternalServerError, result.Message()), nil
	default:
		panic(outcome.Unhandled("list contacts", result))
	}
}

func (h *ContactHandler) Get(c echo.Context, req *ContactIDRequest) (*Response, error) {
	switch result := h.contacts.GetByID(c.Request().Context(), req.ID).(type) {
	case outcome.Success[model.Contact]:
		return reply(result, http.StatusOK, toDetail(result.Value)), nil
	case outcome.NotFound:
		return message(result, http.StatusNotFound, result.Message), nil
	case outcome.FailureDetails:
		return message(result, http.StatusBadRequest, result.Message), nil
	case outcome.Failure:
		return empty(result, http.StatusBadRequest), nil
	case outcome.SystemError:
		return message(result, http.StatusInternalServerError, result.Message()), nil
	default:
		panic(outcome.Unhandled("get contact", result))
	}
}

func (h *ContactHandler) Create(c echo.Context, req *CreateContactRequest) (*Response, error) {
	contact, err := req.toModel()
	if err != nil {
		return nil, errs.NewPlainError(http.StatusBadRequest, "Invalid model")
	}

	switch result := h.contacts.Add(c.Request().Context(), contact).(type) {
	case outcome.Success[model.Contact]:
		resp := reply(result, http.StatusCreated, toDetail(result.Value))
		resp.Location = fmt.Sprintf("%s/%d", ContactsPath, result.Value.ID)
		return resp, nil
	case outcome.SystemError:
		return message(result, http.StatusInternalServerError, result.Message()), nil
	default:
		panic(outcome.Unhandled("create contact", result))
	}
}

func (h *ContactHandler) Update(c echo.Context, req *UpdateContactRequest) (*Response, error) {
	data, err := req.toModel()
	if err != nil {
		return nil, errs.NewPlainError(http.StatusBadRequest, err.Error())
	}

	switch result := h.contacts.Update(c.Request().Context(), req.ID, data).(type) {
	case outcome.Success[model.Contact]:
		return reply(result, http.StatusOK, toDetail(result.Value)), nil
	case outcome.NotFound:
		return message(result, http.StatusNotFound, result.Message), nil
	case outcome.SystemError:
		return message(result, http.StatusInternalServerError, result.Message()), nil
	default:
		panic(outcome.Unhandled("update contact", result))
	}
}

func (h *ContactHandler) Delete(c echo.Context, req *ContactIDRequest) (*Response, error) {
	switch result := h.contacts.Delete(c.Request().Context(), req.ID).(type) {
	case outcome.Void:
		return empty(result, http.StatusNoContent), nil
	case outcome.NotFound:
		return message(result, http.StatusNotFound, result.Message), nil
	case outcome.SystemError:
		return message(result, http.StatusInternalServerError, result.Message()), nil
	default:
		panic(outcome.Unhandled("delete contact", result))
	}
}
