package reasoning

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Error("Expected x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("Expected anthropic-version header")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"content": [
				{"type": "text", "text": "approved: "},
				{"type": "text", "text": "seller s1"}
			]
		}`))
	}))
	defer server.Close()

	client := NewAnthropicClient("test-key")
	client.baseURL = server.URL

	resp, err := client.Complete(context.Background(), Completion{
		Role: "Senior Buyer Review Agent",
		Task: "review the chosen seller",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp != "approved: seller s1" {
		t.Errorf("Expected concatenated text blocks, got %q", resp)
	}
}

func TestAnthropicClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`upstream down`))
	}))
	defer server.Close()

	client := NewAnthropicClient("test-key")
	client.baseURL = server.URL

	_, err := client.Complete(context.Background(), Completion{Role: "r", Task: "t"})
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}
}
