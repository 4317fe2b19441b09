package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"samplemarine-backend/internal/domains/contact/model"
	"samplemarine-backend/internal/domains/contact/repository"
	"samplemarine-backend/internal/shared"
)

type ContactService interface {
	Submit(ctx context.Context, req model.CreateContactRequest) (*model.ContactMessage, error)
	List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error)
}

type contactService struct {
	repo        repository.ContactRepository
	asynqClient *asynq.Client
}

func NewContactService(repo repository.ContactRepository, asynqClient *asynq.Client) ContactService {
	return &contactService{repo: repo, asynqClient: asynqClient}
}

// Submit stores the inquiry, then enqueues the notification email. The email
// is best-effort: a broker failure is logged and the caller still gets 201,
// the message itself is already persisted.
func (s *contactService) Submit(ctx context.Context, req model.CreateContactRequest) (*model.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg := &model.ContactMessage{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.asynqClient != nil {
		payload, err := json.Marshal(msg)
		if err == nil {
			task := asynq.NewTask(shared.TypeSendContactEmail, payload)
			_, err = s.asynqClient.Enqueue(task, asynq.Queue(shared.QueueDefault), asynq.MaxRetry(5))
		}
		if err != nil {
			log.Warn().Err(err).Str("contact_id", msg.ID.String()).
				Msg("failed to enqueue contact notification")
		}
	}

	return msg, nil
}

func (s *contactService) List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx, limit, offset)
}
