package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kulhudhufushidive/site-server/internal/errors"
	"github.com/kulhudhufushidive/site-server/internal/model"
)

func newFileMessageStore(t *testing.T) *FileMessageStore {
	t.Helper()
	s, err := NewFileMessageStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func validMessageDraft() model.MessageDraft {
	return model.MessageDraft{
		Name:    "Aishath",
		Email:   "aishath@example.com",
		Phone:   "+960 999-0000",
		Service: "Open Water Course",
		Message: "When is the next course starting?",
	}
}

func TestMessagesCreateAssignsIDAndTimestamp(t *testing.T) {
	s := newFileMessageStore(t)

	before := time.Now().UnixMilli()
	msg, err := s.Create(context.Background(), validMessageDraft())
	require.NoError(t, err)

	// id is unix millis plus 9 random base36 characters.
	assert.Len(t, msg.ID, len("1756600000000")+9)
	assert.False(t, msg.Read)

	ts, err := time.Parse(time.RFC3339Nano, msg.Timestamp)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts.UnixMilli(), before)
}

func TestMessagesListNewestFirst(t *testing.T) {
	s := newFileMessageStore(t)

	at := time.Now()
	s.now = func() time.Time { return at }
	first, err := s.Create(context.Background(), validMessageDraft())
	require.NoError(t, err)

	s.now = func() time.Time { return at.Add(time.Minute) }
	second, err := s.Create(context.Background(), validMessageDraft())
	require.NoError(t, err)

	messages, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, second.ID, messages[0].ID)
	assert.Equal(t, first.ID, messages[1].ID)
}

func TestMessagesCreateRequiresFields(t *testing.T) {
	s := newFileMessageStore(t)

	for _, tc := range []struct {
		name  string
		edit  func(*model.MessageDraft)
		field string
	}{
		{"blank name", func(d *model.MessageDraft) { d.Name = "  " }, "name"},
		{"blank email", func(d *model.MessageDraft) { d.Email = "" }, "email"},
		{"blank message", func(d *model.MessageDraft) { d.Message = "\t" }, "message"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			draft := validMessageDraft()
			tc.edit(&draft)

			_, err := s.Create(context.Background(), draft)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
		})
	}
}

func TestMessagesCreateTrimsFields(t *testing.T) {
	s := newFileMessageStore(t)

	draft := validMessageDraft()
	draft.Name = "  Aishath  "

	msg, err := s.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "Aishath", msg.Name)
}

func TestMessagesGet(t *testing.T) {
	s := newFileMessageStore(t)

	created, err := s.Create(context.Background(), validMessageDraft())
	require.NoError(t, err)

	msg, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, msg.ID)

	_, err = s.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestMessagesMarkRead(t *testing.T) {
	s := newFileMessageStore(t)

	created, err := s.Create(context.Background(), validMessageDraft())
	require.NoError(t, err)

	require.NoError(t, s.MarkRead(context.Background(), created.ID, true))

	msg, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, msg.Read)

	require.NoError(t, s.MarkRead(context.Background(), created.ID, false))
	msg, err = s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, msg.Read)

	err = s.MarkRead(context.Background(), "missing", true)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestMessagesDelete(t *testing.T) {
	s := newFileMessageStore(t)

	created, err := s.Create(context.Background(), validMessageDraft())
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), created.ID))

	messages, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, messages)

	err = s.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
}

func TestMessagesSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileMessageStore(dir)
	require.NoError(t, err)
	created, err := s.Create(context.Background(), validMessageDraft())
	require.NoError(t, err)

	reopened, err := NewFileMessageStore(dir)
	require.NoError(t, err)

	messages, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, created.ID, messages[0].ID)
}

func TestMessagesCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "messages.json"), []byte("{broken"), 0o644))

	s, err := NewFileMessageStore(dir)
	require.NoError(t, err)

	messages, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, messages)
}
