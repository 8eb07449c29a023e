package dispatch

import (
	"context"
	"fmt"
	"strings"

	errx "github.com/zhouzirui/interview-bot/backend/internal/core/error"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
)

const (
	// DefaultSessionID is used when the caller does not name a session.
	DefaultSessionID = "default"
	// CancelledAnswer replaces the answer of a request cancelled while in flight.
	CancelledAnswer = "Request was cancelled"

	failurePrefix = "I'm sorry, I'm having trouble generating a response right now: "
)

// Outcome is the terminal state of a dispatched question.
type Outcome string

const (
	Completed Outcome = "completed"
	Cancelled Outcome = "cancelled"
	Failed    Outcome = "failed"
)

// Answerer produces an answer for a validated question. It may block for a
// long time and is never interrupted by cancellation.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// AnswererFunc adapts a function to Answerer.
type AnswererFunc func(ctx context.Context, question string) (string, error)

// Answer calls f.
func (f AnswererFunc) Answer(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// SessionTracker is the liveness registry the dispatcher coordinates through.
// *tracker.Tracker satisfies it.
type SessionTracker interface {
	Register(id string)
	SignalCancel(id string) bool
	IsLive(id string) (live bool, found bool)
	Retire(id string)
	Len() int
}

// Result is what the dispatcher hands back to the transport layer.
type Result struct {
	SessionID string
	Answer    string
	Outcome   Outcome
	// Err holds the generation failure behind a Failed outcome.
	Err error
}

// Dispatcher runs the per-request lifecycle: register, check, generate,
// check again, and always retire.
type Dispatcher struct {
	tracker  SessionTracker
	answerer Answerer
}

// New wires a Dispatcher to its tracker and answerer.
func New(tracker SessionTracker, answerer Answerer) *Dispatcher {
	return &Dispatcher{tracker: tracker, answerer: answerer}
}

// NormalizeSessionID maps a blank id to DefaultSessionID.
func NormalizeSessionID(id string) string {
	if strings.TrimSpace(id) == "" {
		return DefaultSessionID
	}
	return id
}

// HandleQuestion answers question on behalf of sessionID. The only error it
// returns is errx.ErrEmptyQuestion; generation failures come back as a Failed
// Result whose Answer is user-presentable.
func (d *Dispatcher) HandleQuestion(ctx context.Context, question, sessionID string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, errx.ErrEmptyQuestion
	}

	sessionID = NormalizeSessionID(sessionID)
	result := Result{SessionID: sessionID}

	d.tracker.Register(sessionID)
	defer func() {
		d.tracker.Retire(sessionID)
		logx.Debug().Str("session_id", sessionID).Str("outcome", string(result.Outcome)).Msg("request retired")
	}()
	logx.Debug().Str("session_id", sessionID).Msg("request registered")

	if !d.live(sessionID) {
		result.Outcome, result.Answer = Cancelled, CancelledAnswer
		return result, nil
	}

	answer, err := d.generate(ctx, question)

	// A cancel that lands after this check is ignored and the answer is delivered.
	if !d.live(sessionID) {
		result.Outcome, result.Answer = Cancelled, CancelledAnswer
		return result, nil
	}

	if err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("answer generation failed")
		result.Outcome, result.Answer, result.Err = Failed, failurePrefix+err.Error(), err
		return result, nil
	}

	result.Outcome, result.Answer = Completed, answer
	return result, nil
}

// CancelQuestion flags the in-flight request for sessionID as unwanted and
// reports whether one was found.
func (d *Dispatcher) CancelQuestion(sessionID string) bool {
	sessionID = NormalizeSessionID(sessionID)
	found := d.tracker.SignalCancel(sessionID)
	logx.Debug().Str("session_id", sessionID).Bool("found", found).Msg("cancel signalled")
	return found
}

// InFlight returns the number of sessions currently being answered.
func (d *Dispatcher) InFlight() int {
	return d.tracker.Len()
}

func (d *Dispatcher) live(sessionID string) bool {
	live, _ := d.tracker.IsLive(sessionID)
	return live
}

// generate calls the answerer, converting a panic into an error so the
// request still retires.
func (d *Dispatcher) generate(ctx context.Context, question string) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			answer, err = "", fmt.Errorf("answerer panicked: %v", r)
		}
	}()
	return d.answerer.Answer(ctx, question)
}
