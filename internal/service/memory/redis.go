package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/zhouzirui/interview-bot/backend/internal/analysis/topic"
	errx "github.com/zhouzirui/interview-bot/backend/internal/core/error"
	"github.com/zhouzirui/interview-bot/backend/internal/model/conversation"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
)

// recentCap bounds the long-term list used for recall.
const recentCap = 200

// Redis keeps the transcript of the current session plus a long-term recall
// list per user. The current session id is stored in Redis so restarts resume it.
type Redis struct {
	rdb    redis.Cmdable
	userID string
	ttl    time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	sessionID string
}

// NewRedis resumes the user's current session or starts a new one.
func NewRedis(ctx context.Context, rdb redis.Cmdable, userID string, ttl time.Duration) (*Redis, error) {
	r := &Redis{rdb: rdb, userID: userID, ttl: ttl, now: time.Now}

	sessionID, err := rdb.Get(ctx, r.sessionKey()).Result()
	switch {
	case errors.Is(err, redis.Nil):
		sessionID = conversation.NewSessionID(r.now())
		if err := r.storeSession(ctx, sessionID); err != nil {
			return nil, err
		}
	case err != nil:
		logx.Error().Err(err).Str("key", r.sessionKey()).Msg("failed to load memory session")
		return nil, errx.WrapRedis(err)
	}

	r.sessionID = sessionID
	return r, nil
}

func (r *Redis) sessionKey() string {
	return fmt.Sprintf("interview:memory:%s:session", r.userID)
}

func (r *Redis) historyKey(sessionID string) string {
	return fmt.Sprintf("interview:memory:%s:%s:history", r.userID, sessionID)
}

func (r *Redis) recentKey() string {
	return fmt.Sprintf("interview:memory:%s:recent", r.userID)
}

func (r *Redis) currentSession() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessionID
}

func (r *Redis) storeSession(ctx context.Context, sessionID string) error {
	if err := r.rdb.Set(ctx, r.sessionKey(), sessionID, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", r.sessionKey()).Msg("failed to store memory session")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *Redis) Available() bool { return true }

func (r *Redis) RecordInteraction(ctx context.Context, question, response string, metadata map[string]string) error {
	sessionID := r.currentSession()
	item := conversation.Interaction{
		ID:        uuid.NewString(),
		Timestamp: r.now().UTC(),
		Question:  question,
		Response:  response,
		SessionID: sessionID,
		Category:  topic.Categorize(question),
		Metadata:  copyMetadata(metadata),
	}

	b, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	historyKey := r.historyKey(sessionID)
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, historyKey, b)
	pipe.RPush(ctx, r.recentKey(), b)
	pipe.LTrim(ctx, r.recentKey(), -recentCap, -1)
	if r.ttl > 0 {
		pipe.Expire(ctx, historyKey, r.ttl)
		pipe.Expire(ctx, r.recentKey(), r.ttl)
		pipe.Expire(ctx, r.sessionKey(), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Error().Err(err).Str("key", historyKey).Msg("failed to record interaction")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *Redis) RelevantContext(ctx context.Context, question string, limit int) (string, error) {
	recent, err := r.load(ctx, r.recentKey())
	if err != nil {
		return "", err
	}

	category := topic.Categorize(question)
	related := make([]conversation.Interaction, 0, len(recent))
	for _, item := range recent {
		if item.Category == category {
			related = append(related, item)
		}
	}
	related = lastN(related, limit)
	if len(related) == 0 {
		return "", nil
	}

	lines := make([]string, 0, len(related)+1)
	lines = append(lines, remoteContextHeader)
	for _, item := range related {
		text := fmt.Sprintf("%s -> %s", item.Question, item.Response)
		lines = append(lines, "Previous: "+truncate(text, remoteSnippetLimit)+"...")
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Redis) Summary(ctx context.Context) (conversation.Summary, error) {
	history, err := r.load(ctx, r.historyKey(r.currentSession()))
	if err != nil {
		return conversation.Summary{}, err
	}
	return conversation.Summarize(history, topic.Extract(questionsOf(history))), nil
}

func (r *Redis) Clear(ctx context.Context) error {
	old := r.currentSession()
	if err := r.rdb.Del(ctx, r.historyKey(old)).Err(); err != nil {
		logx.Error().Err(err).Str("key", r.historyKey(old)).Msg("failed to delete session history")
		return errx.WrapRedis(err)
	}

	next := conversation.NewSessionID(r.now())
	if next == old {
		next = next + "_" + uuid.NewString()[:8]
	}
	if err := r.storeSession(ctx, next); err != nil {
		return err
	}

	r.mu.Lock()
	r.sessionID = next
	r.mu.Unlock()
	logx.Info().Str("user_id", r.userID).Str("session_id", next).Msg("memory session cleared")
	return nil
}

func (r *Redis) Export(ctx context.Context) (conversation.Export, error) {
	sessionID := r.currentSession()
	history, err := r.load(ctx, r.historyKey(sessionID))
	if err != nil {
		return conversation.Export{}, err
	}
	return conversation.Export{
		UserID:     r.userID,
		SessionID:  sessionID,
		History:    history,
		Summary:    conversation.Summarize(history, topic.Extract(questionsOf(history))),
		ExportedAt: r.now().UTC(),
	}, nil
}

func (r *Redis) load(ctx context.Context, key string) ([]conversation.Interaction, error) {
	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		logx.Error().Err(err).Str("key", key).Msg("failed to load interactions from redis")
		return nil, errx.WrapRedis(err)
	}

	items := make([]conversation.Interaction, 0, len(rows))
	for i, row := range rows {
		var item conversation.Interaction
		if err := json.Unmarshal([]byte(row), &item); err != nil {
			logx.Error().Err(err).Str("key", key).Int("index", i).Msg("failed to unmarshal interaction")
			return nil, fmt.Errorf("unmarshal interaction at index %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

var _ Store = (*Redis)(nil)
