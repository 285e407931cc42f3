package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/kulhudhufushidive/site-server/internal/errors"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/util"
)

// MessageStore holds contact form submissions, newest first. It is the one
// repository whose data belongs to visitors rather than the site owner, and
// the only one with a server-side backing choice (file or postgres).
type MessageStore interface {
	Create(ctx context.Context, draft model.MessageDraft) (*model.Message, error)
	List(ctx context.Context) ([]model.Message, error)
	Get(ctx context.Context, id string) (*model.Message, error)
	MarkRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
}

func validateMessageDraft(draft model.MessageDraft) (model.MessageDraft, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Email = strings.TrimSpace(draft.Email)
	draft.Message = strings.TrimSpace(draft.Message)

	switch {
	case draft.Name == "":
		return draft, apperrors.MissingRequired("name")
	case draft.Email == "":
		return draft, apperrors.MissingRequired("email")
	case draft.Message == "":
		return draft, apperrors.MissingRequired("message")
	}
	return draft, nil
}

func newMessage(draft model.MessageDraft, now time.Time) (*model.Message, error) {
	suffix, err := util.GenerateShortID(9)
	if err != nil {
		return nil, err
	}
	return &model.Message{
		ID:        strconv.FormatInt(now.UnixMilli(), 10) + suffix,
		Name:      draft.Name,
		Email:     draft.Email,
		Phone:     draft.Phone,
		Service:   draft.Service,
		Message:   draft.Message,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Read:      false,
	}, nil
}
