package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/contacts/internal/lib/email"
	"github.com/hibiken/asynq"
)

// Mailer sends the notification emails job handlers produce.
type Mailer interface {
	SendContactCreatedEmail(to string, contact email.ContactCreated) error
}

// handleContactCreatedTask emails the operator about a new contact.
// Returning an error makes Asynq schedule a retry.
func (j *JobService) handleContactCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p ContactCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal contact created payload: %w", err)
	}

	j.logger.Info().
		Str("type", TaskContactCreated).
		Int("contact_id", p.ContactID).
		Msg("Processing contact created task")

	err := j.mailer.SendContactCreatedEmail(p.To, email.ContactCreated{
		ID:    p.ContactID,
		Name:  p.Name,
		Kind:  p.Kind,
		Email: p.Email,
	})
	if err != nil {
		j.logger.Error().
			Str("type", TaskContactCreated).
			Int("contact_id", p.ContactID).
			Err(err).
			Msg("Failed to send contact created email")
		return err
	}

	j.logger.Info().
		Str("type", TaskContactCreated).
		Int("contact_id", p.ContactID).
		Msg("Successfully sent contact created email")

	return nil
}
