package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/kulhudhufushidive/site-server/internal/errors"
	"github.com/kulhudhufushidive/site-server/internal/model"
)

// FileMessageStore keeps the whole message list in one JSON file. Every
// mutation is a full read-modify-write; the mutex makes this process the
// single writer so near-simultaneous submissions can't lose each other.
type FileMessageStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewFileMessageStore(dataDir string) (*FileMessageStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileMessageStore{
		path: filepath.Join(dataDir, "messages.json"),
		now:  time.Now,
	}, nil
}

func (s *FileMessageStore) load() []model.Message {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []model.Message{}
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to read messages file")
		return []model.Message{}
	}

	var messages []model.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		log.Error().Err(err).Msg("messages file unparseable, starting empty")
		return []model.Message{}
	}
	return messages
}

func (s *FileMessageStore) save(messages []model.Message) error {
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileMessageStore) Create(ctx context.Context, draft model.MessageDraft) (*model.Message, error) {
	draft, err := validateMessageDraft(draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := newMessage(draft, s.now())
	if err != nil {
		return nil, err
	}

	messages := append([]model.Message{*msg}, s.load()...)
	if err := s.save(messages); err != nil {
		return nil, apperrors.Storage(err)
	}
	return msg, nil
}

func (s *FileMessageStore) List(ctx context.Context) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *FileMessageStore) Get(ctx context.Context, id string) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, msg := range s.load() {
		if msg.ID == id {
			return &msg, nil
		}
	}
	return nil, apperrors.NotFound("Message")
}

func (s *FileMessageStore) MarkRead(ctx context.Context, id string, read bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := s.load()
	for i := range messages {
		if messages[i].ID == id {
			messages[i].Read = read
			if err := s.save(messages); err != nil {
				return apperrors.Storage(err)
			}
			return nil
		}
	}
	return apperrors.NotFound("Message")
}

func (s *FileMessageStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := s.load()
	for i := range messages {
		if messages[i].ID == id {
			messages = append(messages[:i], messages[i+1:]...)
			if err := s.save(messages); err != nil {
				return apperrors.Storage(err)
			}
			return nil
		}
	}
	return apperrors.NotFound("Message")
}
