package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
)

func TestSlackSender_Send(t *testing.T) {
	var got slackMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode slack payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	alert := AnalysisAlert{
		ClientName:   "Acme Corp",
		Trajectory:   entities.TrajectoryDeclining,
		ChurnRisk:    entities.ChurnRiskHigh,
		DashboardURL: "https://app.example.com/clients/abc",
	}
	if err := NewSlackSender().Send(context.Background(), server.URL, alert); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(got.Blocks) != 3 {
		t.Fatalf("expected header, section, actions blocks, got %d", len(got.Blocks))
	}
	if got.Blocks[0].Type != "header" {
		t.Errorf("first block should be header, got %s", got.Blocks[0].Type)
	}

	var riskField string
	for _, f := range got.Blocks[1].Fields {
		if strings.Contains(f.Text, "Churn Risk") {
			riskField = f.Text
		}
	}
	if !strings.Contains(riskField, "🟠") {
		t.Errorf("high risk should carry orange emoji, got %q", riskField)
	}

	actions := got.Blocks[2]
	if len(actions.Elements) != 1 || actions.Elements[0].Style != "danger" {
		t.Errorf("high risk button should be danger styled: %+v", actions.Elements)
	}
	if actions.Elements[0].URL != alert.DashboardURL {
		t.Errorf("button URL mismatch: %s", actions.Elements[0].URL)
	}
}

func TestSlackSender_Send_NoDashboardURL(t *testing.T) {
	var got slackMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer server.Close()

	alert := AnalysisAlert{ClientName: "Acme", Trajectory: entities.TrajectoryStable, ChurnRisk: entities.ChurnRiskLow}
	if err := NewSlackSender().Send(context.Background(), server.URL, alert); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if len(got.Blocks) != 2 {
		t.Errorf("expected no actions block without dashboard URL, got %d blocks", len(got.Blocks))
	}
}

func TestRiskEmoji(t *testing.T) {
	cases := map[string]string{
		entities.ChurnRiskLow:       "🟢",
		entities.ChurnRiskMedium:    "🟡",
		entities.ChurnRiskHigh:      "🟠",
		entities.ChurnRiskImmediate: "🔴",
		"unknown":                   "⚪",
	}
	for risk, want := range cases {
		if got := riskEmoji(risk); got != want {
			t.Errorf("riskEmoji(%s) = %s, want %s", risk, got, want)
		}
	}
}

func TestService_NotifyPodLeader_DisabledPrefs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected when notifications are disabled")
	}))
	defer server.Close()

	svc := NewService(NewSlackSender(), &EmailSender{}, nil)
	prefs := &entities.NotificationPreferences{
		SlackWebhookURL:      server.URL,
		NotifyOnAutoAnalysis: false,
	}
	if err := svc.NotifyPodLeader(context.Background(), prefs, AnalysisAlert{ClientName: "Acme"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
