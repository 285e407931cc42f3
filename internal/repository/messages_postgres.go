package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kulhudhufushidive/site-server/internal/database"
	apperrors "github.com/kulhudhufushidive/site-server/internal/errors"
	"github.com/kulhudhufushidive/site-server/internal/model"
)

const messagesSchema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT NOT NULL DEFAULT '',
	service    TEXT NOT NULL DEFAULT '',
	message    TEXT NOT NULL,
	"timestamp" TEXT NOT NULL,
	"read"     BOOLEAN NOT NULL DEFAULT FALSE
)`

// PostgresMessageStore is the hardened message backend for deployments that
// outgrow the flat file.
type PostgresMessageStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresMessageStore(db *database.DB) (*PostgresMessageStore, error) {
	if _, err := db.Exec(messagesSchema); err != nil {
		return nil, err
	}
	return &PostgresMessageStore{db: db.DB, now: time.Now}, nil
}

func (s *PostgresMessageStore) Create(ctx context.Context, draft model.MessageDraft) (*model.Message, error) {
	draft, err := validateMessageDraft(draft)
	if err != nil {
		return nil, err
	}

	msg, err := newMessage(draft, s.now())
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, phone, service, message, "timestamp", "read")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, msg.ID, msg.Name, msg.Email, msg.Phone, msg.Service, msg.Message, msg.Timestamp, msg.Read)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return msg, nil
}

func (s *PostgresMessageStore) List(ctx context.Context) ([]model.Message, error) {
	messages := []model.Message{}
	// ids start with a fixed-width unix-millis prefix, so descending text
	// order is newest first. The RFC3339 timestamp column is not safe to
	// sort as text once fractional seconds vary.
	err := s.db.SelectContext(ctx, &messages, `
		SELECT * FROM contact_messages ORDER BY id DESC
	`)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return messages, nil
}

func (s *PostgresMessageStore) Get(ctx context.Context, id string) (*model.Message, error) {
	var msg model.Message
	err := s.db.GetContext(ctx, &msg, `
		SELECT * FROM contact_messages WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("Message")
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &msg, nil
}

func (s *PostgresMessageStore) MarkRead(ctx context.Context, id string, read bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE contact_messages SET "read" = $2 WHERE id = $1
	`, id, read)
	if err != nil {
		return apperrors.Storage(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.NotFound("Message")
	}
	return nil
}

func (s *PostgresMessageStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM contact_messages WHERE id = $1
	`, id)
	if err != nil {
		return apperrors.Storage(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.NotFound("Message")
	}
	return nil
}
