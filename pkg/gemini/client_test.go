package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bankbot/pkg/gemini"
)

func TestNew_Validate(t *testing.T) {
	if _, err := gemini.New(gemini.Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
	c, err := gemini.New(gemini.Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Model() != gemini.DefaultModel {
		t.Errorf("Model() = %q, want %q", c.Model(), gemini.DefaultModel)
	}
}

func TestGenerateContent(t *testing.T) {
	var captured map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-test:generateContent" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		captured = nil
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		contents := captured["contents"].([]any)
		text := contents[0].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"]
		if text == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
			return
		}

		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Savings accounts earn interest."}]}}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 5, "totalTokenCount": 17}
		}`))
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{APIKey: "test-api-key", Model: "gemini-test", APIURL: ts.URL})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Success Flow", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), &gemini.Request{
			SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: "be brief"}}},
			Messages:          []gemini.Content{{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: "what is a savings account"}}}},
			Temperature:       0.3,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := resp.Content.Parts[0].Text; got != "Savings accounts earn interest." {
			t.Errorf("text = %q", got)
		}
		if resp.Usage.TotalTokens != 17 {
			t.Errorf("TotalTokens = %d, want 17", resp.Usage.TotalTokens)
		}
		if _, ok := captured["system_instruction"]; !ok {
			t.Error("system instruction not sent")
		}
		if cfg := captured["generationConfig"].(map[string]any); cfg["temperature"] != 0.3 {
			t.Errorf("generationConfig = %v", cfg)
		}
	})

	t.Run("Server Error Flow", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages: []gemini.Content{{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: "cause_500"}}}},
		})
		if err == nil {
			t.Fatal("expected error from 500 response")
		}
	})
}
