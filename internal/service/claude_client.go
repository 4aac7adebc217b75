package service

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

	"selstudy/internal/config"
	"selstudy/internal/model"
)

// ChatOutcome is the end-of-chat summary produced by the AI
type ChatOutcome struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
}

// AIClient is the interface the services consume. ClaudeClient implements it
// against the live API; tests inject fakes.
type AIClient interface {
	AnalyzeResponse(ctx context.Context, situation, questionPrompt, answer string) (*model.SELAnalysis, string, error)
	ChatTurn(ctx context.Context, situation string, transcript []model.ChatMessage) (string, error)
	SummarizeChat(ctx context.Context, situation string, transcript []model.ChatMessage) (*ChatOutcome, error)
	ScoreSubmission(ctx context.Context, situation, answer string) (*model.SELAnalysis, int, error)
}

// ClaudeClient calls the Claude Messages API with per-task models. Every call
// carries the configured timeout and is retried once on transport or 5xx
// failure; errors surface as the typed ErrAI* values.
type ClaudeClient struct {
	config *config.AIConfig
	client *http.Client
}

// NewClaudeClient creates a new Claude API client
func NewClaudeClient() *ClaudeClient {
	cfg := config.DefaultAIConfig()
	return &ClaudeClient{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// NewClaudeClientWith creates a client with explicit config and transport,
// used by tests
func NewClaudeClientWith(cfg *config.AIConfig, client *http.Client) *ClaudeClient {
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond}
	}
	return &ClaudeClient{config: cfg, client: client}
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnalyzeResponse produces the structured SEL analysis for a free-text answer
func (c *ClaudeClient) AnalyzeResponse(ctx context.Context, situation, questionPrompt, answer string) (*model.SELAnalysis, string, error) {
	if !c.config.IsEnabled() {
		a := c.mockAnalysis(answer)
		return a, a.Summary, nil
	}

	system := analysisSystemPrompt()
	prompt := fmt.Sprintf("Scenario:\n%s\n\nQuestion:\n%s\n\nParticipant's answer:\n%s", situation, questionPrompt, answer)

	response, err := c.callClaude(ctx, c.config.Models.Analysis, system, []claudeMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, "", err
	}

	var analysis model.SELAnalysis
	if err := json.Unmarshal([]byte(extractJSON(response)), &analysis); err != nil {
		return nil, "", ErrAIBadPayload
	}
	return &analysis, analysis.Summary, nil
}

// ChatTurn produces the next Socratic reply given the full transcript
func (c *ClaudeClient) ChatTurn(ctx context.Context, situation string, transcript []model.ChatMessage) (string, error) {
	if !c.config.IsEnabled() {
		return c.mockChatReply(transcript), nil
	}

	system := fmt.Sprintf(`You are a Socratic tutor helping a student reflect on a social-emotional scenario.
Scenario: %s
Ask one short, open question per turn that pushes the student to examine feelings, perspectives, and choices.
Never lecture and never give away conclusions.`, situation)

	messages := make([]claudeMessage, 0, len(transcript))
	for _, msg := range transcript {
		role := "user"
		if msg.Sender == model.SenderAssistant {
			role = "assistant"
		}
		messages = append(messages, claudeMessage{Role: role, Content: msg.Text})
	}

	return c.callClaude(ctx, c.config.Models.Chat, system, messages)
}

// SummarizeChat produces the end-of-chat summary and recommendations
func (c *ClaudeClient) SummarizeChat(ctx context.Context, situation string, transcript []model.ChatMessage) (*ChatOutcome, error) {
	if !c.config.IsEnabled() {
		return c.mockOutcome(transcript), nil
	}

	var sb strings.Builder
	for _, msg := range transcript {
		fmt.Fprintf(&sb, "%s: %s\n", msg.Sender, msg.Text)
	}

	system := `Summarize a Socratic tutoring chat. Return ONLY valid JSON:
{
  "summary": "2-3 sentence summary of what the participant explored",
  "recommendations": ["concrete next step 1", "concrete next step 2"]
}`
	prompt := fmt.Sprintf("Scenario: %s\n\nTranscript:\n%s", situation, sb.String())

	response, err := c.callClaude(ctx, c.config.Models.Summary, system, []claudeMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, err
	}

	var outcome ChatOutcome
	if err := json.Unmarshal([]byte(extractJSON(response)), &outcome); err != nil {
		return nil, ErrAIBadPayload
	}
	return &outcome, nil
}

// ScoreSubmission analyzes and scores a student submission for the teacher view
func (c *ClaudeClient) ScoreSubmission(ctx context.Context, situation, answer string) (*model.SELAnalysis, int, error) {
	if !c.config.IsEnabled() {
		a := c.mockAnalysis(answer)
		return a, mockScore(answer), nil
	}

	system := analysisSystemPrompt()
	prompt := fmt.Sprintf("Scenario:\n%s\n\nStudent's answer:\n%s", situation, answer)

	response, err := c.callClaude(ctx, c.config.Models.Scoring, system, []claudeMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, 0, err
	}

	var analysis model.SELAnalysis
	if err := json.Unmarshal([]byte(extractJSON(response)), &analysis); err != nil {
		return nil, 0, ErrAIBadPayload
	}

	// Collapse the three 1-10 competency scores into a 0-100 overall mark
	score := (analysis.EmpathyScore + analysis.PerspectiveTakingScore + analysis.EmotionRegulationScore) * 100 / 30
	return &analysis, score, nil
}

// callClaude makes a request to the Claude Messages API, retrying once on
// transport errors and 5xx responses
func (c *ClaudeClient) callClaude(ctx context.Context, modelName, system string, messages []claudeMessage) (string, error) {
	reqBody := map[string]interface{}{
		"model":      modelName,
		"max_tokens": c.config.MaxTokens,
		"system":     system,
		"messages":   messages,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		text, retryable, err := c.doRequest(ctx, jsonBody)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (c *ClaudeClient) doRequest(ctx context.Context, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL, bytes.NewBuffer(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.config.APIKey)
	req.Header.Set("anthropic-version", c.config.Version)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", true, ErrAITimeout
		}
		return "", true, ErrAIUnavailable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, ErrAIUnavailable
	}

	if resp.StatusCode >= 500 {
		return "", true, ErrAIUnavailable
	}
	if resp.StatusCode >= 400 {
		return "", false, fmt.Errorf("%w: status %d", ErrAIUnavailable, resp.StatusCode)
	}

	var claudeResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &claudeResp); err != nil {
		return "", false, ErrAIBadPayload
	}

	for _, block := range claudeResp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, false, nil
		}
	}
	return "", false, ErrAIBadPayload
}

func isTimeout(err error) bool {
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}

func analysisSystemPrompt() string {
	return `You analyze a participant's response to a social-emotional scenario. Return ONLY valid JSON:
{
  "empathyScore": 1 to 10,
  "perspectiveTakingScore": 1 to 10,
  "emotionRegulationScore": 1 to 10,
  "strengths": ["observed strength"],
  "suggestions": ["concrete suggestion"],
  "summary": "2-3 sentence summary of the response quality"
}
Score generously but honestly; base everything on the answer text alone.`
}

// extractJSON trims any prose the model wraps around a JSON object
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// Mock implementations, used when no API key is configured
func (c *ClaudeClient) mockAnalysis(answer string) *model.SELAnalysis {
	wordCount := len(strings.Fields(answer))
	score := wordCount / 10
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}

	return &model.SELAnalysis{
		EmpathyScore:           score,
		PerspectiveTakingScore: score,
		EmotionRegulationScore: score,
		Strengths:              []string{"You engaged with the scenario"},
		Suggestions:            []string{"Consider how the other person might feel"},
		Summary:                "Mock analysis based on response length.",
	}
}

func (c *ClaudeClient) mockChatReply(transcript []model.ChatMessage) string {
	if len(transcript) <= 1 {
		return "What do you think the other person was feeling in that moment?"
	}
	return "What makes you say that? Can you think of another way to see it?"
}

func (c *ClaudeClient) mockOutcome(transcript []model.ChatMessage) *ChatOutcome {
	return &ChatOutcome{
		Summary:         fmt.Sprintf("Mock summary of a %d-message chat.", len(transcript)),
		Recommendations: []string{"Practice naming emotions before reacting"},
	}
}

func mockScore(answer string) int {
	score := len(strings.Fields(answer)) * 2
	if score > 100 {
		score = 100
	}
	return score
}
