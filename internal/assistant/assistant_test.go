package assistant

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestKeywordResponder(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"mortgage", "How do MORTGAGE rates work?", mortgageReply},
		{"first time spaced", "tips for a first time buyer", firstTimeReply},
		{"first-time hyphenated", "First-time buyer programs?", firstTimeReply},
		{"renting", "Is renting smarter right now?", rentReply},
		{"market", "how is the market in Austin", marketReply},
		{"prices", "are prices going down", marketReply},
		{"mortgage wins over rent", "mortgage or rent?", mortgageReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeywordResponder{}.Reply(context.Background(), tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeywordResponder_GenericEchoesFirst30Characters(t *testing.T) {
	msg := "What should I know about homeowners associations and their fees?"

	got, err := KeywordResponder{}.Reply(context.Background(), msg)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "Thank you for your question about What should I know about homeow..."), got)
}

func TestKeywordResponder_GenericShortMessage(t *testing.T) {
	got, err := KeywordResponder{}.Reply(context.Background(), "HOA fees?")

	require.NoError(t, err)
	assert.Contains(t, got, "question about HOA fees?...")
}

func newChatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}}},
		})
	}))
}

func TestOpenAIResponder_UsesCompletion(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, "  Closing costs are usually 2-5% of the price.  ")
	defer srv.Close()

	r := NewOpenAIResponder(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL}, KeywordResponder{}, testLogger())

	got, err := r.Reply(context.Background(), "what are closing costs")

	require.NoError(t, err)
	assert.Equal(t, "Closing costs are usually 2-5% of the price.", got)
}

func TestOpenAIResponder_FallsBackOnError(t *testing.T) {
	srv := newChatServer(t, http.StatusTooManyRequests, "")
	defer srv.Close()

	r := NewOpenAIResponder(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL}, KeywordResponder{}, testLogger())

	got, err := r.Reply(context.Background(), "mortgage question")

	require.NoError(t, err)
	assert.Equal(t, mortgageReply, got)
}

func TestOpenAIResponder_FallsBackOnEmptyContent(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, "   ")
	defer srv.Close()

	r := NewOpenAIResponder(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL}, KeywordResponder{}, testLogger())

	got, err := r.Reply(context.Background(), "is the market cooling")

	require.NoError(t, err)
	assert.Equal(t, marketReply, got)
}
