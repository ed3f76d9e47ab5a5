// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/contacts/internal/config"
	"github.com/deppfellow/contacts/internal/lib/email"
	"github.com/deppfellow/contacts/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger
	mailer Mailer

	// notifyEmail receives "contact created" notifications.
	notifyEmail string
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the largest worker share:
//
//	critical: 6, default: 3, low: 1
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client:      asynq.NewClient(redisOpt),
		server:      server,
		logger:      logger,
		mailer:      email.NewClient(cfg, logger),
		notifyEmail: cfg.Integration.NotifyEmail,
	}
}

// Start registers task handlers and starts the worker server in the background.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskContactCreated, j.handleContactCreatedTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("Failed to close job client")
	}
}

// EnqueueContactCreated schedules the "contact created" email for contact.
func (j *JobService) EnqueueContactCreated(ctx context.Context, contact model.Contact) error {
	task, err := NewContactCreatedTask(j.notifyEmail, contact)
	if err != nil {
		return fmt.Errorf("failed to build contact created task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue contact created task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int("contact_id", contact.ID).
		Msg("Enqueued contact created task")

	return nil
}
