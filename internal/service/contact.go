package service

import (
	"context"

	"github.com/deppfellow/contacts/internal/logger"
	"github.com/deppfellow/contacts/internal/model"
	"github.com/deppfellow/contacts/internal/outcome"
)

// ContactStore is the persistence contract the contact service depends on.
type ContactStore interface {
	Add(ctx context.Context, contact model.Contact) outcome.Outcome
	GetByID(ctx context.Context, id int) outcome.Outcome
	GetAll(ctx context.Context) outcome.Outcome
	Update(ctx context.Context, id int, data model.Contact) outcome.Outcome
	Delete(ctx context.Context, id int) outcome.Outcome
}

// ContactNotifier announces newly created contacts.
type ContactNotifier interface {
	EnqueueContactCreated(ctx context.Context, contact model.Contact) error
}

type ContactService struct {
	store    ContactStore
	notifier ContactNotifier
}

// NewContactService wires store and an optional notifier (nil disables notifications).
func NewContactService(store ContactStore, notifier ContactNotifier) *ContactService {
	return &ContactService{store: store, notifier: notifier}
}

// Add stores contact and, on success, enqueues a notification.
// A failed enqueue is logged and does not change the outcome.
func (s *ContactService) Add(ctx context.Context, contact model.Contact) outcome.Outcome {
	result := s.store.Add(ctx, contact)

	created, ok := result.(outcome.Success[model.Contact])
	if !ok || s.notifier == nil {
		return result
	}

	if err := s.notifier.EnqueueContactCreated(ctx, created.Value); err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Int("contact_id", created.Value.ID).
			Msg("could not enqueue contact created notification")
	}

	return result
}

func (s *ContactService) GetByID(ctx context.Context, id int) outcome.Outcome {
	return s.store.GetByID(ctx, id)
}

func (s *ContactService) GetAll(ctx context.Context) outcome.Outcome {
	return s.store.GetAll(ctx)
}

func (s *ContactService) Update(ctx context.Context, id int, data model.Contact) outcome.Outcome {
	return s.store.Update(ctx, id, data)
}

func (s *ContactService) Delete(ctx context.Context, id int) outcome.Outcome {
	return s.store.Delete(ctx, id)
}
