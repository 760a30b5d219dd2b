package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(n int) time.Time {
	return time.Date(2026, 3, n, 10, 0, 0, 0, time.UTC)
}

func entry(id string, meetingDate time.Time) TranscriptEntry {
	return TranscriptEntry{
		FathomMeetingID: id,
		Transcript:      "transcript " + id,
		MeetingDate:     meetingDate,
		MeetingTitle:    "Sync " + id,
		AddedAt:         time.Now(),
	}
}

func TestQueue_Append_SequenceLabels(t *testing.T) {
	q := NewClientTranscriptQueue(uuid.New())

	q.Append(entry("a", day(1)))
	if q.Transcripts[0].Sequence != SequenceRecent {
		t.Errorf("single entry should be recent, got %s", q.Transcripts[0].Sequence)
	}

	q.Append(entry("b", day(2)))
	if q.Transcripts[0].Sequence != SequenceOldest || q.Transcripts[1].Sequence != SequenceRecent {
		t.Errorf("two entries should be oldest/recent, got %s/%s",
			q.Transcripts[0].Sequence, q.Transcripts[1].Sequence)
	}

	q.Append(entry("c", day(3)))
	want := []string{SequenceOldest, SequenceMiddle, SequenceRecent}
	for i, label := range want {
		if q.Transcripts[i].Sequence != label {
			t.Errorf("slot %d: got %s, want %s", i, q.Transcripts[i].Sequence, label)
		}
	}
}

func TestQueue_Append_SortsByMeetingDateNotArrival(t *testing.T) {
	q := NewClientTranscriptQueue(uuid.New())

	// arrive out of order
	q.Append(entry("c", day(3)))
	q.Append(entry("a", day(1)))
	q.Append(entry("b", day(2)))

	got := []string{q.Transcripts[0].FathomMeetingID, q.Transcripts[1].FathomMeetingID, q.Transcripts[2].FathomMeetingID}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("window order %v, want %v", got, want)
		}
	}
}

func TestQueue_Append_EvictsOldest(t *testing.T) {
	q := NewClientTranscriptQueue(uuid.New())
	q.Append(entry("a", day(1)))
	q.Append(entry("b", day(2)))
	q.Append(entry("c", day(3)))
	q.Append(entry("d", day(4)))

	if len(q.Transcripts) != QueueWindowSize {
		t.Fatalf("window should hold %d, got %d", QueueWindowSize, len(q.Transcripts))
	}
	if q.Transcripts[0].FathomMeetingID != "b" {
		t.Errorf("oldest entry should have been evicted, window starts with %s", q.Transcripts[0].FathomMeetingID)
	}
	if q.Transcripts[2].FathomMeetingID != "d" || q.Transcripts[2].Sequence != SequenceRecent {
		t.Errorf("newest entry should be recent: %+v", q.Transcripts[2])
	}
}

func TestQueue_Append_BackdatedMeetingOlderThanWindow(t *testing.T) {
	q := NewClientTranscriptQueue(uuid.New())
	q.Append(entry("b", day(2)))
	q.Append(entry("c", day(3)))
	q.Append(entry("d", day(4)))

	// a late-arriving transcript dated before everything in the window
	// sorts first and is evicted immediately
	q.Append(entry("a", day(1)))

	if len(q.Transcripts) != QueueWindowSize {
		t.Fatalf("window should hold %d, got %d", QueueWindowSize, len(q.Transcripts))
	}
	for _, tr := range q.Transcripts {
		if tr.FathomMeetingID == "a" {
			t.Error("backdated entry should not survive in a full window")
		}
	}
}

func TestQueue_Append_ReplacesDuplicateMeetingID(t *testing.T) {
	q := NewClientTranscriptQueue(uuid.New())
	q.Append(entry("a", day(1)))
	q.Append(entry("b", day(2)))

	updated := entry("a", day(1))
	updated.Transcript = "corrected transcript"
	q.Append(updated)

	if len(q.Transcripts) != 2 {
		t.Fatalf("re-ingest should replace, not duplicate; got %d entries", len(q.Transcripts))
	}
	if q.Transcripts[0].Transcript != "corrected transcript" {
		t.Errorf("entry should carry the replacement transcript, got %q", q.Transcripts[0].Transcript)
	}
}

func TestQueue_IsReady(t *testing.T) {
	q := NewClientTranscriptQueue(uuid.New())
	q.Append(entry("a", day(1)))
	q.Append(entry("b", day(2)))
	if q.IsReady() {
		t.Error("2 transcripts should not be ready")
	}

	q.Append(entry("c", day(3)))
	if !q.IsReady() {
		t.Error("3 transcripts should be ready")
	}

	q.AutoAnalysisEnabled = false
	if q.IsReady() {
		t.Error("disabled auto-analysis should not be ready")
	}
}

func TestQueue_BySequence(t *testing.T) {
	q := NewClientTranscriptQueue(uuid.New())
	q.Append(entry("a", day(1)))
	q.Append(entry("b", day(2)))
	q.Append(entry("c", day(3)))

	if got := q.BySequence(SequenceMiddle); got != "transcript b" {
		t.Errorf("middle slot: got %q", got)
	}
	if got := q.BySequence("bogus"); got != "" {
		t.Errorf("unknown label should return empty, got %q", got)
	}
}

func TestQueue_NewestAddedAt(t *testing.T) {
	q := NewClientTranscriptQueue(uuid.New())
	e1 := entry("a", day(1))
	e1.AddedAt = day(10)
	e2 := entry("b", day(2))
	e2.AddedAt = day(12)
	q.Append(e1)
	q.Append(e2)

	if got := q.NewestAddedAt(); !got.Equal(day(12)) {
		t.Errorf("NewestAddedAt = %v, want %v", got, day(12))
	}
}
