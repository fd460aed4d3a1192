// Package messenger relays new survey submissions to the messenger gateway.
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/domain"
)

const defaultTimeout = 5 * time.Second

// Config は通知先ゲートウェイと宛先の設定。
type Config struct {
	Endpoint           string
	DiscordDestination string
	SlackDestination   string
	ResultsBaseURL     string
	Timeout            time.Duration
	HTTPClient         *http.Client
}

// Notifier はメッセンジャーゲートウェイの /messages へ新着回答を POST する。
type Notifier struct {
	endpoint       string
	discord        string
	slack          string
	resultsBaseURL string
	httpClient     *http.Client
}

// NewNotifier は Config から Notifier を構築する。Endpoint が空なら nil を返す。
func NewNotifier(cfg Config) *Notifier {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		return nil
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Notifier{
		endpoint:       endpoint,
		discord:        strings.TrimSpace(cfg.DiscordDestination),
		slack:          strings.TrimSpace(cfg.SlackDestination),
		resultsBaseURL: strings.TrimRight(strings.TrimSpace(cfg.ResultsBaseURL), "/"),
		httpClient:     client,
	}
}

// NotifySubmission は設定済みの各宛先へ 1 回だけ送信を試み、失敗をまとめて返す。
func (n *Notifier) NotifySubmission(ctx context.Context, response domain.SurveyResponse) error {
	if n == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	identifier := strings.TrimSpace(response.ID)
	if identifier == "" {
		identifier = "survey"
	}

	var errs []error
	if n.discord != "" {
		if err := n.send(ctx, n.discord, identifier, buildDiscordMessage(n.resultsBaseURL, response)); err != nil {
			errs = append(errs, fmt.Errorf("discord: %w", err))
		}
	}
	if n.slack != "" {
		if err := n.send(ctx, n.slack, identifier, buildSlackMessage(n.resultsBaseURL, response)); err != nil {
			errs = append(errs, fmt.Errorf("slack: %w", err))
		}
	}
	return errors.Join(errs...)
}

func buildDiscordMessage(resultsBaseURL string, response domain.SurveyResponse) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("**%s** submitted a new survey response.\n", displayName(response.Name)))
	builder.WriteString(fmt.Sprintf("- Satisfaction: %d / %d\n", response.Satisfaction, domain.MaxSatisfaction))
	if response.Feedback != nil {
		builder.WriteString(fmt.Sprintf("- Feedback: %s\n", *response.Feedback))
	}
	if resultsBaseURL != "" {
		builder.WriteString(fmt.Sprintf("[View results](%s/results)\n", resultsBaseURL))
	}
	return builder.String()
}

func buildSlackMessage(resultsBaseURL string, response domain.SurveyResponse) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(":memo: %s submitted a new survey response.\n", displayName(response.Name)))
	builder.WriteString(fmt.Sprintf("Satisfaction: %d / %d\n", response.Satisfaction, domain.MaxSatisfaction))
	if response.Feedback != nil {
		builder.WriteString(fmt.Sprintf("Feedback: %s\n", *response.Feedback))
	}
	if resultsBaseURL != "" {
		builder.WriteString(fmt.Sprintf("Results: %s/results\n", resultsBaseURL))
	}
	return builder.String()
}

func displayName(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return "Anonymous"
}

func (n *Notifier) send(ctx context.Context, destination, userID, text string) error {
	payload := map[string]any{
		"userId":      userID,
		"text":        text,
		"destination": destination,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信用ペイロードの作成に失敗: %w", err)
	}

	timeout := n.httpClient.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, n.endpoint+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("メッセンジャー送信でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
