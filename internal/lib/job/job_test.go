package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/contacts/internal/lib/email"
	"github.com/deppfellow/contacts/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to      string
	contact email.ContactCreated
	err     error
}

func (f *fakeMailer) SendContactCreatedEmail(to string, contact email.ContactCreated) error {
	f.to = to
	f.contact = contact
	return f.err
}

func newTestService(mailer Mailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, mailer: mailer, notifyEmail: "ops@contacts.app"}
}

func TestNewContactCreatedTask(t *testing.T) {
	addr := "ann@example.com"
	task, err := NewContactCreatedTask("ops@contacts.app", model.Contact{ID: 3, Name: "Ann", Email: &addr, Kind: model.KindFamily})
	require.NoError(t, err)

	assert.Equal(t, TaskContactCreated, task.Type())

	var p ContactCreatedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, ContactCreatedPayload{
		To:        "ops@contacts.app",
		ContactID: 3,
		Name:      "Ann",
		Kind:      "Family",
		Email:     "ann@example.com",
	}, p)
}

func TestHandleContactCreatedTask(t *testing.T) {
	t.Run("sends the email", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := newTestService(mailer)
		task, err := NewContactCreatedTask(svc.notifyEmail, model.Contact{ID: 9, Name: "Bob", Kind: model.KindWork})
		require.NoError(t, err)

		require.NoError(t, svc.handleContactCreatedTask(context.Background(), task))

		assert.Equal(t, "ops@contacts.app", mailer.to)
		assert.Equal(t, email.ContactCreated{ID: 9, Name: "Bob", Kind: "Work"}, mailer.contact)
	})

	t.Run("returns mailer errors so the task is retried", func(t *testing.T) {
		svc := newTestService(&fakeMailer{err: errors.New("provider down")})
		task, err := NewContactCreatedTask(svc.notifyEmail, model.Contact{ID: 1, Name: "Bob"})
		require.NoError(t, err)

		assert.EqualError(t, svc.handleContactCreatedTask(context.Background(), task), "provider down")
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		svc := newTestService(&fakeMailer{})

		err := svc.handleContactCreatedTask(context.Background(), asynq.NewTask(TaskContactCreated, []byte("{")))
		assert.ErrorContains(t, err, "failed to unmarshal contact created payload")
	})
}
