package fathom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/clientwatch-team/clientwatch/pkg/config"
)

// Invitee is a calendar invitee on a recorded meeting
type Invitee struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsExternal bool   `json:"is_external"`
}

// Speaker identifies who said a transcript segment
type Speaker struct {
	DisplayName            string `json:"display_name"`
	MatchedCalendarInvitee string `json:"matched_calendar_invitee_email,omitempty"`
}

// TranscriptSegment is one utterance in a meeting transcript
type TranscriptSegment struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Meeting is a recorded meeting as returned by the Fathom API
type Meeting struct {
	RecordingID        int64               `json:"recording_id"`
	Title              string              `json:"title"`
	MeetingTitle       string              `json:"meeting_title"`
	URL                string              `json:"url"`
	CreatedAt          time.Time           `json:"created_at"`
	ScheduledStartTime time.Time           `json:"scheduled_start_time"`
	Invitees           []Invitee           `json:"calendar_invitees"`
	Transcript         []TranscriptSegment `json:"transcript,omitempty"`
}

type listResponse struct {
	Items      []Meeting `json:"items"`
	NextCursor string    `json:"next_cursor"`
}

// Client calls the Fathom REST API
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Fathom API client from config
func NewClient(cfg *config.FathomConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.fathom.video/v1"
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// IsConfigured reports whether an API key is present
func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

// ListMeetings returns all meetings created after the given time, following
// pagination cursors. When includeTranscript is set the API inlines each
// meeting's transcript segments.
func (c *Client) ListMeetings(ctx context.Context, createdAfter time.Time, includeTranscript bool) ([]Meeting, error) {
	var out []Meeting
	cursor := ""

	for {
		q := url.Values{}
		if !createdAfter.IsZero() {
			q.Set("created_after", createdAfter.UTC().Format(time.RFC3339))
		}
		if includeTranscript {
			q.Set("include_transcript", "true")
		}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var page listResponse
		if err := c.get(ctx, "/meetings?"+q.Encode(), &page); err != nil {
			return nil, err
		}

		out = append(out, page.Items...)
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	return out, nil
}

// GetMeeting fetches a single meeting by recording id
func (c *Client) GetMeeting(ctx context.Context, recordingID int64) (*Meeting, error) {
	var m Meeting
	if err := c.get(ctx, fmt.Sprintf("/meetings/%d", recordingID), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetTranscript fetches the transcript for a recording and flattens it to
// "Speaker: text" lines
func (c *Client) GetTranscript(ctx context.Context, recordingID int64) (string, error) {
	var segments []TranscriptSegment
	if err := c.get(ctx, fmt.Sprintf("/meetings/%d/transcript", recordingID), &segments); err != nil {
		return "", err
	}
	return FlattenTranscript(segments), nil
}

// FlattenTranscript renders transcript segments as plain text, one
// "Speaker: text" line per segment
func FlattenTranscript(segments []TranscriptSegment) string {
	var b strings.Builder
	for i, s := range segments {
		if i > 0 {
			b.WriteByte('\n')
		}
		name := s.Speaker.DisplayName
		if name == "" {
			name = "Unknown"
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(s.Text)
	}
	return b.String()
}

// get performs a GET with retry on transient failures
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("fathom API key not configured")
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("fathom returned status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("fathom returned status %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode fathom response: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(operation, policy)
}
