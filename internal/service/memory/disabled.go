package memory

import (
	"context"

	"github.com/zhouzirui/interview-bot/backend/internal/model/conversation"
)

// Disabled is the Store used when memory is switched off.
type Disabled struct{}

func (Disabled) Available() bool { return false }

func (Disabled) RecordInteraction(context.Context, string, string, map[string]string) error {
	return ErrUnavailable
}

func (Disabled) RelevantContext(context.Context, string, int) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) Summary(context.Context) (conversation.Summary, error) {
	return conversation.Summary{}, ErrUnavailable
}

func (Disabled) Clear(context.Context) error {
	return ErrUnavailable
}

func (Disabled) Export(context.Context) (conversation.Export, error) {
	return conversation.Export{}, ErrUnavailable
}

var _ Store = Disabled{}
