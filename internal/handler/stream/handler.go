package stream

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	errx "github.com/zhouzirui/interview-bot/backend/internal/core/error"
	"github.com/zhouzirui/interview-bot/backend/internal/service/dispatch"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
	"github.com/zhouzirui/interview-bot/backend/pkg/utils"
)

// SSE event names, in the order a client sees them.
const (
	EventStart     = "start"
	EventAnswer    = "answer"
	EventCancelled = "cancelled"
	EventError     = "error"
	EventEnd       = "end"
)

// Handler serves answers as Server-Sent Events so a browser can keep the
// connection open while generation runs.
type Handler struct {
	dispatcher *dispatch.Dispatcher
}

// New creates a new stream handler
func New(dispatcher *dispatch.Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// RegisterRoutes mounts the streaming ask endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ask/stream", h.handleAskStream)
}

// Event is the payload of every SSE message.
type Event struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
}

func (h *Handler) handleAskStream(w http.ResponseWriter, r *http.Request) {
	question := r.URL.Query().Get("question")
	sessionID := dispatch.NormalizeSessionID(r.URL.Query().Get("session_id"))

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondFailure(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// Blank questions get a 400 before the stream starts.
	if strings.TrimSpace(question) == "" {
		utils.RespondFailure(w, http.StatusBadRequest, errx.EmptyQuestionMessage)
		return
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, EventStart, Event{SessionID: sessionID})

	result, err := h.dispatcher.HandleQuestion(r.Context(), question, sessionID)
	if err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("stream ask rejected")
		utils.SendSSEEvent(w, flusher, EventError, Event{SessionID: sessionID, Response: errx.MessageOf(err)})
		utils.SendSSEEvent(w, flusher, EventEnd, Event{SessionID: sessionID})
		return
	}

	utils.SendSSEEvent(w, flusher, eventFor(result.Outcome), Event{
		SessionID: result.SessionID,
		Response:  result.Answer,
		Outcome:   string(result.Outcome),
	})
	utils.SendSSEEvent(w, flusher, EventEnd, Event{SessionID: result.SessionID})
}

func eventFor(outcome dispatch.Outcome) string {
	switch outcome {
	case dispatch.Cancelled:
		return EventCancelled
	case dispatch.Failed:
		return EventError
	default:
		return EventAnswer
	}
}
