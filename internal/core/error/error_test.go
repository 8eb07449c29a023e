package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyQuestionIsValidationError(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", ErrEmptyQuestion)

	require.ErrorIs(t, wrapped, ErrEmptyQuestion)
	assert.Equal(t, http.StatusBadRequest, StatusOf(wrapped))
	assert.Equal(t, "No question provided", MessageOf(wrapped))
}

func TestStatusOfPlainError(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, SystemErrorMessage, MessageOf(err))
}

func TestWrapRedis(t *testing.T) {
	assert.NoError(t, WrapRedis(nil))

	notFound := WrapRedis(redis.Nil)
	assert.Equal(t, http.StatusNotFound, StatusOf(notFound))
	assert.ErrorIs(t, notFound, redis.Nil)

	failure := WrapRedis(errors.New("connection refused"))
	assert.Equal(t, http.StatusBadGateway, StatusOf(failure))
	assert.Contains(t, failure.Error(), RedisErrorMessage)
}
