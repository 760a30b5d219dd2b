package entities

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Sequence labels for the 3-slot transcript window
const (
	SequenceOldest = "oldest"
	SequenceMiddle = "middle"
	SequenceRecent = "recent"
)

// QueueWindowSize is the number of transcripts kept per client
const QueueWindowSize = 3

// TranscriptEntry is one meeting transcript inside a client's window.
// Immutable once ingested except for the sequence label, which is
// recomputed on every queue change.
type TranscriptEntry struct {
	FathomMeetingID string    `json:"fathom_meeting_id"`
	Transcript      string    `json:"transcript"`
	MeetingDate     time.Time `json:"meeting_date"`
	MeetingTitle    string    `json:"meeting_title"`
	AddedAt         time.Time `json:"added_at"`
	Sequence        string    `json:"sequence"`
}

// ClientTranscriptQueue is the per-client bounded transcript window
type ClientTranscriptQueue struct {
	ClientID            uuid.UUID         `json:"client_id" gorm:"type:uuid;primary_key"`
	Transcripts         []TranscriptEntry `json:"transcripts" gorm:"type:jsonb;serializer:json"`
	LastProcessed       *time.Time        `json:"last_processed,omitempty"`
	AutoAnalysisEnabled bool              `json:"auto_analysis_enabled" gorm:"default:true"`
	CreatedAt           time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ClientTranscriptQueue
func (ClientTranscriptQueue) TableName() string {
	return "transcript_queues"
}

// NewClientTranscriptQueue creates an empty queue for a client
func NewClientTranscriptQueue(clientID uuid.UUID) *ClientTranscriptQueue {
	return &ClientTranscriptQueue{
		ClientID:            clientID,
		Transcripts:         []TranscriptEntry{},
		AutoAnalysisEnabled: true,
	}
}

// Append inserts a transcript into the window, keeping the invariants:
// entries sorted ascending by meeting date, at most 3 entries (oldest
// evicted first), sequence labels matching position. Re-ingesting a
// meeting id already in the window replaces that entry instead of
// duplicating it.
func (q *ClientTranscriptQueue) Append(entry TranscriptEntry) {
	replaced := false
	for i := range q.Transcripts {
		if q.Transcripts[i].FathomMeetingID != "" && q.Transcripts[i].FathomMeetingID == entry.FathomMeetingID {
			q.Transcripts[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		q.Transcripts = append(q.Transcripts, entry)
	}

	sort.SliceStable(q.Transcripts, func(i, j int) bool {
		return q.Transcripts[i].MeetingDate.Before(q.Transcripts[j].MeetingDate)
	})

	if len(q.Transcripts) > QueueWindowSize {
		q.Transcripts = q.Transcripts[len(q.Transcripts)-QueueWindowSize:]
	}

	q.relabel()
}

// relabel assigns sequence labels by position given the current count
func (q *ClientTranscriptQueue) relabel() {
	switch len(q.Transcripts) {
	case 1:
		q.Transcripts[0].Sequence = SequenceRecent
	case 2:
		q.Transcripts[0].Sequence = SequenceOldest
		q.Transcripts[1].Sequence = SequenceRecent
	case 3:
		q.Transcripts[0].Sequence = SequenceOldest
		q.Transcripts[1].Sequence = SequenceMiddle
		q.Transcripts[2].Sequence = SequenceRecent
	}
}

// IsReady reports whether the window holds a full 3-transcript sequence
// and auto-analysis has not been disabled for the client.
func (q *ClientTranscriptQueue) IsReady() bool {
	return len(q.Transcripts) >= QueueWindowSize && q.AutoAnalysisEnabled
}

// BySequence returns the transcript text for a sequence label, or ""
func (q *ClientTranscriptQueue) BySequence(label string) string {
	for _, t := range q.Transcripts {
		if t.Sequence == label {
			return t.Transcript
		}
	}
	return ""
}

// NewestAddedAt returns the most recent ingestion timestamp in the window
func (q *ClientTranscriptQueue) NewestAddedAt() time.Time {
	var newest time.Time
	for _, t := range q.Transcripts {
		if t.AddedAt.After(newest) {
			newest = t.AddedAt
		}
	}
	return newest
}
