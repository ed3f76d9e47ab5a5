package service

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/contacts/internal/model"
	"github.com/deppfellow/contacts/internal/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Add(ctx context.Context, contact model.Contact) outcome.Outcome {
	return m.Called(ctx, contact).Get(0).(outcome.Outcome)
}

func (m *mockStore) GetByID(ctx context.Context, id int) outcome.Outcome {
	return m.Called(ctx, id).Get(0).(outcome.Outcome)
}

func (m *mockStore) GetAll(ctx context.Context) outcome.Outcome {
	return m.Called(ctx).Get(0).(outcome.Outcome)
}

func (m *mockStore) Update(ctx context.Context, id int, data model.Contact) outcome.Outcome {
	return m.Called(ctx, id, data).Get(0).(outcome.Outcome)
}

func (m *mockStore) Delete(ctx context.Context, id int) outcome.Outcome {
	return m.Called(ctx, id).Get(0).(outcome.Outcome)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) EnqueueContactCreated(ctx context.Context, contact model.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func TestContactService_Add(t *testing.T) {
	ctx := context.Background()
	input := model.Contact{Name: "John Doe", Kind: model.KindWork}
	saved := model.Contact{ID: 1, Name: "John Doe", Kind: model.KindWork}

	t.Run("Should notify after a successful add", func(t *testing.T) {
		store := &mockStore{}
		notifier := &mockNotifier{}
		store.On("Add", ctx, input).Return(outcome.Ok(saved))
		notifier.On("EnqueueContactCreated", ctx, saved).Return(nil)

		result := NewContactService(store, notifier).Add(ctx, input)

		assert.Equal(t, outcome.Ok(saved), result)
		store.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("Should keep the outcome when enqueueing fails", func(t *testing.T) {
		store := &mockStore{}
		notifier := &mockNotifier{}
		store.On("Add", ctx, input).Return(outcome.Ok(saved))
		notifier.On("EnqueueContactCreated", ctx, saved).Return(errors.New("redis down"))

		result := NewContactService(store, notifier).Add(ctx, input)

		assert.Equal(t, outcome.Ok(saved), result)
		notifier.AssertExpectations(t)
	})

	t.Run("Should not notify on failure", func(t *testing.T) {
		store := &mockStore{}
		notifier := &mockNotifier{}
		fault := outcome.Fault(errors.New("connection refused"))
		store.On("Add", ctx, input).Return(fault)

		result := NewContactService(store, notifier).Add(ctx, input)

		assert.Equal(t, fault, result)
		notifier.AssertNotCalled(t, "EnqueueContactCreated", mock.Anything, mock.Anything)
	})

	t.Run("Should work without a notifier", func(t *testing.T) {
		store := &mockStore{}
		store.On("Add", ctx, input).Return(outcome.Ok(saved))

		assert.Equal(t, outcome.Ok(saved), NewContactService(store, nil).Add(ctx, input))
	})
}

func TestContactService_PassThrough(t *testing.T) {
	ctx := context.Background()
	store := &mockStore{}
	svc := NewContactService(store, nil)
	missing := outcome.Missing("Contact %d not found", 4)
	data := model.Contact{Name: "New"}

	store.On("GetByID", ctx, 4).Return(missing)
	store.On("GetAll", ctx).Return(outcome.Ok([]model.Contact{}))
	store.On("Update", ctx, 4, data).Return(missing)
	store.On("Delete", ctx, 4).Return(outcome.Void{})

	assert.Equal(t, missing, svc.GetByID(ctx, 4))
	assert.Equal(t, outcome.Ok([]model.Contact{}), svc.GetAll(ctx))
	assert.Equal(t, missing, svc.Update(ctx, 4, data))
	assert.Equal(t, outcome.Void{}, svc.Delete(ctx, 4))
	store.AssertExpectations(t)
}
