package interview

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/zhouzirui/interview-bot/backend/internal/analysis/fallback"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
)

// Status values reported by Responder.Status.
const (
	StatusActive      = "active"
	StatusBreakerOpen = "breaker_open"
	StatusFallback    = "fallback"
)

// BreakerSettings controls when the model is skipped in favour of the fallback.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker. Zero disables tripping.
	ConsecutiveFailures uint32
	// Cooldown is how long the breaker stays open before a trial call.
	Cooldown time.Duration
}

// Responder picks between the model-backed assistant and the keyword
// fallback. It implements dispatch.Answerer.
type Responder struct {
	assistant QuestionAnswerer
	fallback  *fallback.Responder
	breaker   *gobreaker.CircuitBreaker
}

// NewResponder returns a Responder. A nil assistant means every question is
// answered by fb.
func NewResponder(assistant QuestionAnswerer, fb *fallback.Responder, bs BreakerSettings) *Responder {
	r := &Responder{assistant: assistant, fallback: fb}
	if assistant == nil {
		return r
	}

	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "answer-generator",
		MaxRequests: 1,
		Timeout:     bs.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return bs.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= bs.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logx.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return r
}

// Answer tries the assistant once. Its errors are returned as is; when the
// breaker is open the fallback answers instead.
func (r *Responder) Answer(ctx context.Context, question string) (string, error) {
	if r.assistant == nil {
		return r.fallback.Respond(question), nil
	}

	out, err := r.breaker.Execute(func() (interface{}, error) {
		return r.assistant.AnswerQuestion(ctx, question)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logx.Info().Msg("answer generator unavailable, using fallback responder")
		return r.fallback.Respond(question), nil
	}
	if err != nil {
		return "", err
	}

	answer, _ := out.(string)
	return answer, nil
}

// ModelEnabled reports whether a model-backed assistant is configured.
func (r *Responder) ModelEnabled() bool {
	return r.assistant != nil
}

// Status describes which path answers questions right now.
func (r *Responder) Status() string {
	switch {
	case r.assistant == nil:
		return StatusFallback
	case r.breaker.State() == gobreaker.StateOpen:
		return StatusBreakerOpen
	default:
		return StatusActive
	}
}
