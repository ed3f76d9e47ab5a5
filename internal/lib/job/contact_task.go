package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/contacts/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskContactCreated is the job type name stored in Redis.
	TaskContactCreated = "contact:created"
)

// ContactCreatedPayload is the JSON payload of a TaskContactCreated task.
type ContactCreatedPayload struct {
	To        string `json:"to"`
	ContactID int    `json:"contact_id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Email     string `json:"email,omitempty"`
}

// NewContactCreatedTask builds the notification task for contact, addressed to `to`.
//
// Options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("low"): notifications never compete with critical work
//   - Timeout(30s): kill the task if the handler runs longer
func NewContactCreatedTask(to string, contact model.Contact) (*asynq.Task, error) {
	p := ContactCreatedPayload{
		To:        to,
		ContactID: contact.ID,
		Name:      contact.Name,
		Kind:      string(contact.Kind),
	}
	if contact.Email != nil {
		p.Email = *contact.Email
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskContactCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
