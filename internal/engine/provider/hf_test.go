package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func scoresFor(n int) [][]RawScore {
	out := make([][]RawScore, n)
	for i := range out {
		out[i] = []RawScore{
			{Label: "joy", Score: 0.9},
			{Label: "sadness", Score: 0.02},
		}
	}
	return out
}

func TestHuggingFaceClassifyBatch(t *testing.T) {
	var gotAuth, gotContentType string
	var gotInputs []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		var req struct {
			Inputs []string `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		gotInputs = req.Inputs
		json.NewEncoder(w).Encode(scoresFor(len(req.Inputs)))
	}))
	defer srv.Close()

	h := NewHuggingFace(srv.URL, "secret")
	out, err := h.ClassifyBatch(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("ClassifyBatch failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 result sets, got %d", len(out))
	}
	if out[0][0].Label != "joy" || out[0][0].Score != 0.9 {
		t.Fatalf("unexpected first score: %+v", out[0][0])
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected Bearer auth, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotContentType)
	}
	if len(gotInputs) != 2 || gotInputs[0] != "a" {
		t.Fatalf("unexpected inputs: %v", gotInputs)
	}
}

func TestHuggingFaceRetriesOnModelLoading(t *testing.T) {
	if testing.Short() {
		t.Skip("retry backoff sleeps")
	}
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			// Hugging Face answers 503 while a cold model loads.
			http.Error(w, `{"error":"model loading"}`, http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(scoresFor(1))
	}))
	defer srv.Close()

	h := NewHuggingFace(srv.URL, "")
	out, err := h.Classify(context.Background(), "text")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if len(out) != 2 {
		t.Fatalf("unexpected scores: %+v", out)
	}
}

func TestHuggingFaceClientErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad input", http.StatusBadRequest)
	}))
	defer srv.Close()

	h := NewHuggingFace(srv.URL, "")
	_, err := h.Classify(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected StatusError 400, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no retries for 400, got %d calls", calls)
	}
}

func TestHuggingFaceResultCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(scoresFor(1))
	}))
	defer srv.Close()

	h := NewHuggingFace(srv.URL, "")
	if _, err := h.ClassifyBatch(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error when result count does not match input count")
	}
}

func TestHuggingFaceEmptyBatch(t *testing.T) {
	h := NewHuggingFace("http://unused", "")
	out, err := h.ClassifyBatch(context.Background(), nil)
	if err != nil || out != nil {
		t.Fatalf("expected nil,nil for empty batch, got %v, %v", out, err)
	}
}
