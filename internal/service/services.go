package service

import (
	"github.com/deppfellow/contacts/internal/lib/job"
	"github.com/deppfellow/contacts/internal/repository"
	"github.com/deppfellow/contacts/internal/server"
)

type Services struct {
	Contacts *ContactService
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier ContactNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Contacts: NewContactService(repos.Contacts, notifier),
		Job:      s.Job,
	}, nil
}
