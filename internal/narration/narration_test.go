package narration_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/taleweaver/internal/config"
	"github.com/cory-johannsen/taleweaver/internal/game/pacing"
	"github.com/cory-johannsen/taleweaver/internal/narration"
)

func turnContext() narration.Context {
	return narration.Context{
		Character: "Hero the level 1 fighter (HP 12/12)",
		Quest:     "The Lost Lantern",
		Pacing: pacing.Context{
			CurrentTurn:    3,
			MaxTurns:       50,
			TurnsRemaining: 47,
			Phase:          pacing.PhaseSetup,
			Directive:      "ESTABLISH - Introduce character and world",
		},
	}
}

func anthropicConfig(baseURL string) config.NarratorConfig {
	return config.NarratorConfig{
		Provider:  "anthropic",
		Model:     "claude-sonnet-4-5",
		MaxTokens: 256,
		APIKey:    "sk-test",
		BaseURL:   baseURL,
	}
}

func TestStaticNarrator_NarrativeAction(t *testing.T) {
	text, err := narration.StaticNarrator{}.Respond(context.Background(), "look around", turnContext())
	require.NoError(t, err)
	assert.Equal(t, "[SETUP | turn 3/50] ESTABLISH - Introduce character and world\nYou look around.", text)
}

func TestStaticNarrator_CombatAndClosure(t *testing.T) {
	nc := turnContext()
	nc.CombatLog = []string{"[Round 1] Hero attacks Goblin: 1d20(18)+5=23 vs AC 15 - HIT for 9 damage (Goblin HP 0/7); Goblin falls!"}
	nc.Outcome = "victory"
	nc.Closure = pacing.ClosureStatus{Triggered: true, Reason: pacing.ClosureQuestComplete}

	text, err := narration.StaticNarrator{}.Respond(context.Background(), "attack", nc)
	require.NoError(t, err)
	assert.Contains(t, text, "Goblin falls!")
	assert.Contains(t, text, "The way ahead is clear.")
	assert.True(t, strings.HasSuffix(text, "Your quest is complete. The tale draws to a close."))
	assert.NotContains(t, text, "You attack.")
}

func TestPrompt_IncludesTurnDetails(t *testing.T) {
	nc := turnContext()
	nc.CombatLog = []string{"line one"}
	nc.Closure = pacing.ClosureStatus{Triggered: true, Reason: pacing.ClosureHardCap}
	p := narration.Prompt("attack", nc)
	assert.Contains(t, p, "Character: Hero the level 1 fighter")
	assert.Contains(t, p, "Quest: The Lost Lantern")
	assert.Contains(t, p, "ESTABLISH - Introduce character and world")
	assert.Contains(t, p, "- line one")
	assert.Contains(t, p, "(hard_cap)")
	assert.Contains(t, p, "Player action: attack")
}

func TestNewAnthropicNarrator_Validation(t *testing.T) {
	cfg := anthropicConfig("")
	cfg.APIKey = ""
	_, err := narration.NewAnthropicNarrator(cfg)
	assert.Error(t, err)

	cfg = anthropicConfig("")
	cfg.Model = " "
	_, err = narration.NewAnthropicNarrator(cfg)
	assert.Error(t, err)

	cfg = anthropicConfig("")
	cfg.MaxTokens = 0
	_, err = narration.NewAnthropicNarrator(cfg)
	assert.Error(t, err)
}

func TestAnthropicNarrator_Respond(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5",
			"content": [{"type": "text", "text": "  The lighthouse looms above you.  "}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 12, "output_tokens": 7}
		}`))
	}))
	defer srv.Close()

	n, err := narration.NewAnthropicNarrator(anthropicConfig(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	text, err := n.Respond(context.Background(), "look around", turnContext())
	require.NoError(t, err)
	assert.Equal(t, "The lighthouse looms above you.", text)
	assert.Equal(t, "claude-sonnet-4-5", got.Model)
	assert.Equal(t, 256, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestAnthropicNarrator_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
	}))
	defer srv.Close()

	n, err := narration.NewAnthropicNarrator(anthropicConfig(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = n.Respond(context.Background(), "look around", turnContext())
	assert.Error(t, err)
}

type failingNarrator struct{}

func (failingNarrator) Respond(context.Context, string, narration.Context) (string, error) {
	return "", errors.New("provider down")
}

func TestWithFallback(t *testing.T) {
	n := narration.WithFallback(failingNarrator{}, narration.StaticNarrator{}, zap.NewNop())
	text, err := n.Respond(context.Background(), "wait", turnContext())
	require.NoError(t, err)
	assert.Contains(t, text, "You wait.")
}

func TestNew_SelectsProvider(t *testing.T) {
	n, err := narration.New(config.NarratorConfig{Provider: "static"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, narration.StaticNarrator{}, n)

	n, err = narration.New(anthropicConfig("http://127.0.0.1:1"), zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, n)

	_, err = narration.New(config.NarratorConfig{Provider: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}
