package messenger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/domain"
)

type capturedMessage struct {
	UserID      string `json:"userId"`
	Text        string `json:"text"`
	Destination string `json:"destination"`
}

func newGateway(t *testing.T, status int) (*httptest.Server, func() []capturedMessage) {
	t.Helper()
	var (
		mu       sync.Mutex
		messages []capturedMessage
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var msg capturedMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		messages = append(messages, msg)
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []capturedMessage {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedMessage(nil), messages...)
	}
}

func TestNewNotifierDisabledWithoutEndpoint(t *testing.T) {
	if n := NewNotifier(Config{Endpoint: "  "}); n != nil {
		t.Fatal("expected nil notifier for empty endpoint")
	}

	var n *Notifier
	if err := n.NotifySubmission(context.Background(), domain.SurveyResponse{}); err != nil {
		t.Fatalf("nil notifier returned error: %v", err)
	}
}

func TestNotifySubmissionSendsToEachDestination(t *testing.T) {
	srv, messages := newGateway(t, http.StatusAccepted)
	notifier := NewNotifier(Config{
		Endpoint:           srv.URL + "/",
		DiscordDestination: "discord-admin",
		SlackDestination:   "slack-admin",
		ResultsBaseURL:     "https://survey.example.com/",
		Timeout:            time.Second,
	})

	feedback := "Loved it"
	err := notifier.NotifySubmission(context.Background(), domain.SurveyResponse{
		ID:           "abc123",
		Name:         "Jane",
		Satisfaction: 5,
		Feedback:     &feedback,
	})
	if err != nil {
		t.Fatalf("NotifySubmission returned error: %v", err)
	}

	got := messages()
	if len(got) != 2 {
		t.Fatalf("gateway received %d messages, want 2", len(got))
	}
	if got[0].Destination != "discord-admin" || got[1].Destination != "slack-admin" {
		t.Errorf("unexpected destinations: %+v", got)
	}
	for _, msg := range got {
		if msg.UserID != "abc123" {
			t.Errorf("userId = %q, want response id", msg.UserID)
		}
		if !strings.Contains(msg.Text, "Jane") || !strings.Contains(msg.Text, "Loved it") {
			t.Errorf("text missing submission details: %q", msg.Text)
		}
		if !strings.Contains(msg.Text, "https://survey.example.com/results") {
			t.Errorf("text missing results link: %q", msg.Text)
		}
	}
}

func TestNotifySubmissionReportsGatewayFailure(t *testing.T) {
	srv, messages := newGateway(t, http.StatusBadGateway)
	notifier := NewNotifier(Config{Endpoint: srv.URL, DiscordDestination: "discord-admin"})

	err := notifier.NotifySubmission(context.Background(), domain.SurveyResponse{ID: "x", Satisfaction: 2})
	if err == nil {
		t.Fatal("expected error from failing gateway")
	}
	if !strings.Contains(err.Error(), "status=502") {
		t.Errorf("error does not carry status: %v", err)
	}
	if len(messages()) != 1 {
		t.Errorf("expected a single attempt, got %d", len(messages()))
	}
}

func TestBuildDiscordMessageAnonymous(t *testing.T) {
	msg := buildDiscordMessage("", domain.SurveyResponse{Satisfaction: 3})
	if !strings.Contains(msg, "**Anonymous**") {
		t.Errorf("anonymous name not substituted: %q", msg)
	}
	if strings.Contains(msg, "Feedback") || strings.Contains(msg, "results") {
		t.Errorf("optional sections rendered: %q", msg)
	}
}
