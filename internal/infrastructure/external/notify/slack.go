package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type slackButton struct {
	Type  string    `json:"type"`
	Text  slackText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style,omitempty"`
}

type slackBlock struct {
	Type     string        `json:"type"`
	Text     *slackText    `json:"text,omitempty"`
	Fields   []slackText   `json:"fields,omitempty"`
	Elements []slackButton `json:"elements,omitempty"`
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

// SlackSender posts Block Kit messages to incoming webhook URLs
type SlackSender struct {
	client *http.Client
}

// NewSlackSender creates a Slack webhook sender
func NewSlackSender() *SlackSender {
	return &SlackSender{client: &http.Client{Timeout: 10 * time.Second}}
}

// Send posts an analysis alert to the given Slack incoming webhook
func (s *SlackSender) Send(ctx context.Context, webhookURL string, alert AnalysisAlert) error {
	msg := slackMessage{
		Blocks: []slackBlock{
			{
				Type: "header",
				Text: &slackText{Type: "plain_text", Text: "🔔 New Sentiment Analysis Ready", Emoji: true},
			},
			{
				Type: "section",
				Fields: []slackText{
					{Type: "mrkdwn", Text: "*Client:*\n" + alert.ClientName},
					{Type: "mrkdwn", Text: "*Trajectory:*\n" + alert.Trajectory},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Churn Risk:*\n%s %s", riskEmoji(alert.ChurnRisk), alert.ChurnRisk)},
				},
			},
		},
	}

	if alert.DashboardURL != "" {
		msg.Blocks = append(msg.Blocks, slackBlock{
			Type: "actions",
			Elements: []slackButton{
				{
					Type:  "button",
					Text:  slackText{Type: "plain_text", Text: "View Analysis", Emoji: true},
					URL:   alert.DashboardURL,
					Style: buttonStyle(alert.ChurnRisk),
				},
			},
		})
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// SendText posts a single-section markdown message
func (s *SlackSender) SendText(ctx context.Context, webhookURL, text string) error {
	msg := slackMessage{
		Blocks: []slackBlock{
			{Type: "section", Text: &slackText{Type: "mrkdwn", Text: text}},
		},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func riskEmoji(risk string) string {
	switch risk {
	case entities.ChurnRiskLow:
		return "🟢"
	case entities.ChurnRiskMedium:
		return "🟡"
	case entities.ChurnRiskHigh:
		return "🟠"
	case entities.ChurnRiskImmediate:
		return "🔴"
	default:
		return "⚪"
	}
}

func buttonStyle(risk string) string {
	if risk == entities.ChurnRiskHigh || risk == entities.ChurnRiskImmediate {
		return "danger"
	}
	return "primary"
}
