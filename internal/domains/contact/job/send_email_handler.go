package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"samplemarine-backend/internal/domains/contact/model"
)

// EmailSender is the delivery capability the worker needs.
type EmailSender interface {
	Send(subject, body string) error
}

type SendEmailHandler struct {
	sender EmailSender
}

func NewSendEmailHandler(sender EmailSender) *SendEmailHandler {
	return &SendEmailHandler{sender: sender}
}

// ProcessTask mails the sales inbox about a new inquiry. Delivery failures
// bubble up so asynq retries with backoff.
func (h *SendEmailHandler) ProcessTask(_ context.Context, t *asynq.Task) error {
	var msg model.ContactMessage
	if err := json.Unmarshal(t.Payload(), &msg); err != nil {
		return fmt.Errorf("unmarshal contact payload: %v: %w", err, asynq.SkipRetry)
	}

	subject := fmt.Sprintf("New contact inquiry from %s", msg.Name)
	body := fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nCompany: %s\n\n%s\n",
		msg.Name, msg.Email, msg.Phone, msg.Company, msg.Message,
	)

	if err := h.sender.Send(subject, body); err != nil {
		return fmt.Errorf("send contact notification %s: %w", msg.ID, err)
	}

	log.Info().Str("contact_id", msg.ID.String()).Msg("contact notification sent")
	return nil
}
