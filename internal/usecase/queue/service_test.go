package queue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	usecaseErrors "github.com/clientwatch-team/clientwatch/internal/usecase/errors"
)

type fakeQueueRepo struct {
	queues map[uuid.UUID]*entities.ClientTranscriptQueue
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{queues: make(map[uuid.UUID]*entities.ClientTranscriptQueue)}
}

func (f *fakeQueueRepo) Find(_ context.Context, clientID uuid.UUID) (*entities.ClientTranscriptQueue, error) {
	q, ok := f.queues[clientID]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQueueRepo) Save(_ context.Context, q *entities.ClientTranscriptQueue) error {
	cp := *q
	f.queues[q.ClientID] = &cp
	return nil
}

func (f *fakeQueueRepo) MarkProcessed(_ context.Context, clientID uuid.UUID, at time.Time) error {
	if q, ok := f.queues[clientID]; ok {
		q.LastProcessed = &at
	}
	return nil
}

func TestQueueService_AppendTranscript_CreatesWindowOnFirstIngest(t *testing.T) {
	repo := newFakeQueueRepo()
	svc := NewService(repo, nil)
	clientID := uuid.New()

	q, err := svc.AppendTranscript(context.Background(), clientID, entities.TranscriptEntry{
		FathomMeetingID: "rec-1",
		Transcript:      "hello",
		MeetingDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, q.Transcripts, 1)
	assert.Equal(t, entities.SequenceRecent, q.Transcripts[0].Sequence)
	assert.True(t, q.AutoAnalysisEnabled)
	assert.False(t, q.Transcripts[0].AddedAt.IsZero(), "AddedAt should be stamped")

	saved, err := repo.Find(context.Background(), clientID)
	require.NoError(t, err)
	require.NotNil(t, saved, "window should be persisted")
}

func TestQueueService_AppendTranscript_RejectsEmptyTranscript(t *testing.T) {
	svc := NewService(newFakeQueueRepo(), nil)

	_, err := svc.AppendTranscript(context.Background(), uuid.New(), entities.TranscriptEntry{
		FathomMeetingID: "rec-1",
	})
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptyTranscript)
}

func TestQueueService_AppendTranscript_ReadyAfterThree(t *testing.T) {
	repo := newFakeQueueRepo()
	svc := NewService(repo, nil)
	clientID := uuid.New()

	for i, id := range []string{"a", "b", "c"} {
		q, err := svc.AppendTranscript(context.Background(), clientID, entities.TranscriptEntry{
			FathomMeetingID: id,
			Transcript:      "t-" + id,
			MeetingDate:     time.Date(2026, 3, i+1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, i == 2, q.IsReady())
	}
}

func TestQueueService_SetAutoAnalysis(t *testing.T) {
	repo := newFakeQueueRepo()
	svc := NewService(repo, nil)
	clientID := uuid.New()

	require.NoError(t, svc.SetAutoAnalysis(context.Background(), clientID, false))
	q, err := svc.Get(context.Background(), clientID)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.False(t, q.AutoAnalysisEnabled)
}

func TestQueueService_MarkProcessed(t *testing.T) {
	repo := newFakeQueueRepo()
	svc := NewService(repo, nil)
	clientID := uuid.New()

	_, err := svc.AppendTranscript(context.Background(), clientID, entities.TranscriptEntry{
		FathomMeetingID: "rec-1",
		Transcript:      "hello",
	})
	require.NoError(t, err)

	at := time.Now().UTC()
	require.NoError(t, svc.MarkProcessed(context.Background(), clientID, at))

	stored := repo.queues[clientID]
	require.NotNil(t, stored.LastProcessed)
	assert.Equal(t, at, *stored.LastProcessed)
}
