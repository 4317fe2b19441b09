package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"samplemarine-backend/internal/domains/contact/model"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	query := `
        INSERT INTO contact_messages (id, name, email, phone, company, message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	msg.CreatedAt = time.Now()
	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Company, msg.Message, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (r *contactRepository) List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
        SELECT id, name, email, phone, company, message, created_at
        FROM contact_messages
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	messages := []*model.ContactMessage{}
	for rows.Next() {
		var msg model.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Phone,
			&msg.Company, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact messages: %w", err)
	}

	return messages, nil
}
