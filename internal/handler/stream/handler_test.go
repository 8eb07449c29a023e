package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/interview-bot/backend/internal/service/dispatch"
	"github.com/zhouzirui/interview-bot/backend/internal/service/tracker"
)

type sseEvent struct {
	name string
	data Event
}

func parseEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	for _, block := range strings.Split(strings.TrimSpace(body), "\n\n") {
		var ev sseEvent
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev.data))
			}
		}
		events = append(events, ev)
	}
	return events
}

func serve(answer dispatch.AnswererFunc, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	New(dispatch.New(tracker.New(), answer)).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))
	return resp
}

func TestAskStreamAnswer(t *testing.T) {
	resp := serve(func(_ context.Context, q string) (string, error) {
		return "I love Go.", nil
	}, "/ask/stream?question=Favourite+language%3F&session_id=s1")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/event-stream", resp.Header().Get("Content-Type"))

	events := parseEvents(t, resp.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, EventStart, events[0].name)
	assert.Equal(t, "s1", events[0].data.SessionID)
	assert.Equal(t, EventAnswer, events[1].name)
	assert.Equal(t, "I love Go.", events[1].data.Response)
	assert.Equal(t, "completed", events[1].data.Outcome)
	assert.Equal(t, EventEnd, events[2].name)
}

func TestAskStreamFailure(t *testing.T) {
	resp := serve(func(context.Context, string) (string, error) {
		return "", errors.New("model offline")
	}, "/ask/stream?question=hello")

	events := parseEvents(t, resp.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, "default", events[0].data.SessionID)
	assert.Equal(t, EventError, events[1].name)
	assert.Contains(t, events[1].data.Response, "model offline")
}

func TestAskStreamRejectsBlankQuestion(t *testing.T) {
	resp := serve(func(context.Context, string) (string, error) {
		t.Fatal("answerer must not be called")
		return "", nil
	}, "/ask/stream?question=%20%20")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "No question provided")
}

func TestEventForOutcome(t *testing.T) {
	assert.Equal(t, EventAnswer, eventFor(dispatch.Completed))
	assert.Equal(t, EventCancelled, eventFor(dispatch.Cancelled))
	assert.Equal(t, EventError, eventFor(dispatch.Failed))
}
