package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/prompts"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const completionJSON = `{"id":"cmpl-1","object":"chat.completion","created":1,"model":"gpt-4o",
"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":%q}}]}`

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestVLMGatewayAnalyze(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		if !strings.Contains(string(body), "data:image/png;base64,") {
			t.Error("request does not carry a png data URL")
		}
		writeJSON(w, http.StatusOK, strings.Replace(completionJSON, "%q", `"이 음식은 김밥 입니다."`, 1))
	}))
	defer srv.Close()

	g := NewVLMGateway(&VLMConfig{Model: "gpt-4o", APIKey: "sk-test", BaseURL: srv.URL + "/", MaxTokens: 500})

	got, err := g.Analyze(context.Background(), testPNG(t))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got != "이 음식은 김밥 입니다." {
		t.Errorf("Analyze() = %q", got)
	}
	if captured.Model != "gpt-4o" || captured.MaxTokens != 500 {
		t.Errorf("request model/max_tokens = %q/%d", captured.Model, captured.MaxTokens)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
	text, _ := captured.Messages[0].Content[0].(map[string]interface{})
	if text["text"] != prompts.AnalyzeInstruction {
		t.Error("request does not carry the analysis instruction")
	}
}

func TestVLMGatewayErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":{"message":"boom","type":"server"}}`, wantErr: domain.ErrUpstream},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`, wantErr: domain.ErrUpstream},
		{name: "error in 200 body", status: http.StatusOK, body: `{"error":{"message":"quota"}}`, wantErr: domain.ErrUpstream},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: domain.ErrEmptyResponse},
		{name: "blank content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"  "}}]}`, wantErr: domain.ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				writeJSON(w, tt.status, tt.body)
			}))
			defer srv.Close()

			g := NewVLMGateway(&VLMConfig{Model: "gpt-4o", BaseURL: srv.URL})
			_, err := g.Analyze(context.Background(), testPNG(t))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.wantErr)
			}
			if calls.Load() != 1 {
				t.Errorf("remote calls = %d, want exactly 1", calls.Load())
			}
		})
	}
}

func TestVLMGatewayEmptyInput(t *testing.T) {
	g := NewVLMGateway(&VLMConfig{Model: "gpt-4o", BaseURL: "http://127.0.0.1:0"})
	if _, err := g.Analyze(context.Background(), nil); !errors.Is(err, domain.ErrEmptyInput) {
		t.Errorf("Analyze(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestVLMGatewayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewVLMGateway(&VLMConfig{Model: "gpt-4o", BaseURL: url})
	if _, err := g.Analyze(context.Background(), testPNG(t)); !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("Analyze() error = %v, want ErrUpstream", err)
	}
}

func TestOpenAIGatewayAnalyze(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, strings.Replace(completionJSON, "%q", `"칼로리: 300kcal"`, 1))
	}))
	defer srv.Close()

	g, err := NewGateway(&VLMConfig{Provider: ProviderOpenAI, Model: "gpt-4o", APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGateway() error = %v", err)
	}

	got, err := g.Analyze(context.Background(), testPNG(t))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got != "칼로리: 300kcal" {
		t.Errorf("Analyze() = %q", got)
	}
	if g.Model() != "gpt-4o" {
		t.Errorf("Model() = %q", g.Model())
	}
}

func TestOpenAIGatewayDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusInternalServerError, `{"error":{"message":"boom"}}`)
	}))
	defer srv.Close()

	g := NewOpenAIGateway(&VLMConfig{Model: "gpt-4o", APIKey: "sk-test", BaseURL: srv.URL})
	if _, err := g.Analyze(context.Background(), testPNG(t)); !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("Analyze() error = %v, want ErrUpstream", err)
	}
	if calls.Load() != 1 {
		t.Errorf("remote calls = %d, want 1", calls.Load())
	}
}

func TestNewGatewayUnknownProvider(t *testing.T) {
	if _, err := NewGateway(&VLMConfig{Provider: "gemini"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
