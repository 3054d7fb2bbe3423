package reasoning

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpenRouterClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Expected test-key authorization")
		}

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		msgs, _ := body["messages"].([]interface{})
		if len(msgs) != 2 {
			t.Errorf("Expected system+user messages, got %d", len(msgs))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"choices": [
				{"message": {"content": "  shortlisted sellers  "}}
			]
		}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient("test-key")
	client.baseURL = server.URL

	resp, err := client.Complete(context.Background(), Completion{
		Role: "Junior Seller Agent",
		Goal: "Shortlist up to 3 matching sellers",
		Task: "pick sellers",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp != "shortlisted sellers" {
		t.Errorf("Expected trimmed content, got %q", resp)
	}
}

func TestOpenRouterClient_RetryOn429(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient("test-key")
	client.baseURL = server.URL

	start := time.Now()
	resp, err := client.Complete(context.Background(), Completion{Role: "r", Task: "t"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp != "ok" {
		t.Errorf("Expected ok, got %q", resp)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
	// two backoffs: 1s + 2s
	if elapsed := time.Since(start); elapsed < 3*time.Second {
		t.Errorf("Expected backoff delays, finished in %v", elapsed)
	}
}

func TestOpenRouterClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"error": {"message": "quota exhausted"}}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient("test-key")
	client.baseURL = server.URL

	_, err := client.Complete(context.Background(), Completion{Role: "r", Task: "t"})
	if err == nil {
		t.Fatal("Expected error")
	}
}

func TestOpenRouterClient_MissingKey(t *testing.T) {
	client := NewOpenRouterClient("")
	_, err := client.Complete(context.Background(), Completion{Role: "r", Task: "t"})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
}
