package entities

import "testing"

func TestMapping_MatchesParticipant(t *testing.T) {
	m := &ClientMeetingMapping{ParticipantEmails: []string{"sarah@acme.com", "mike@acme.com"}}

	if !m.MatchesParticipant([]string{"other@x.com", "SARAH@ACME.COM"}) {
		t.Error("participant match should be case-insensitive")
	}
	if m.MatchesParticipant([]string{"nobody@x.com"}) {
		t.Error("unknown email should not match")
	}
	if m.MatchesParticipant(nil) {
		t.Error("empty invitee list should not match")
	}
}

func TestMapping_MatchesTitle(t *testing.T) {
	m := &ClientMeetingMapping{TitlePattern: "acme.*(sync|qbr)"}

	if !m.MatchesTitle("Acme Corp Weekly Sync") {
		t.Error("title match should be case-insensitive")
	}
	if m.MatchesTitle("Globex Weekly Sync") {
		t.Error("non-matching title should not match")
	}

	empty := &ClientMeetingMapping{}
	if empty.MatchesTitle("Acme Corp Weekly Sync") {
		t.Error("empty pattern should never match")
	}

	invalid := &ClientMeetingMapping{TitlePattern: "acme[("}
	if invalid.MatchesTitle("acme[(") {
		t.Error("invalid pattern should never match")
	}
}

func TestMapping_MatchesMeetingID(t *testing.T) {
	m := &ClientMeetingMapping{FathomMeetingIDs: []string{"rec-1", "rec-2"}}
	if !m.MatchesMeetingID("rec-2") {
		t.Error("allowlisted id should match")
	}
	if m.MatchesMeetingID("rec-9") {
		t.Error("unknown id should not match")
	}
}
