package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondFailure(rec, http.StatusBadRequest, "No question provided")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false || body["error"] != "No question provided" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	var payload struct{ Question string }

	if err := DecodeJSON(req, &payload); err != nil {
		t.Fatalf("expected empty body to decode, got %v", err)
	}
}

func TestDecodeJSONMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	var payload struct{ Question string }

	if err := DecodeJSON(req, &payload); err == nil {
		t.Fatal("expected malformed body to fail")
	}
}

func TestSendSSEEvent(t *testing.T) {
	rec := httptest.NewRecorder()

	SetupSSEHeaders(rec)
	SendSSEEvent(rec, rec, "answer", map[string]string{"response": "hi"})

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.Contains(rec.Body.String(), "event: answer\ndata: {\"response\":\"hi\"}\n\n") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
