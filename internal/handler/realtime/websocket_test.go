package realtime

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/interview-bot/backend/internal/service/dispatch"
	"github.com/zhouzirui/interview-bot/backend/internal/service/tracker"
)

func dial(t *testing.T, answer dispatch.AnswererFunc) (*websocket.Conn, *dispatch.Dispatcher) {
	t.Helper()
	d := dispatch.New(tracker.New(), answer)
	r := chi.NewRouter()
	New(d).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello Outbound
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, TypeConnected, hello.Type)
	require.NotEmpty(t, hello.ConnectionID)
	return conn, d
}

func read(t *testing.T, conn *websocket.Conn) Outbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Outbound
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestAskOverWebSocket(t *testing.T) {
	conn, _ := dial(t, func(_ context.Context, q string) (string, error) {
		return "echo: " + q, nil
	})

	require.NoError(t, conn.WriteJSON(Inbound{Type: TypeAsk, Question: "hello", SessionID: "ws-1"}))

	msg := read(t, conn)
	assert.Equal(t, TypeAnswer, msg.Type)
	assert.Equal(t, "ws-1", msg.SessionID)
	assert.Equal(t, "echo: hello", msg.Response)
	assert.Equal(t, "completed", msg.Outcome)
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	conn, _ := dial(t, func(context.Context, string) (string, error) {
		return "unreachable", nil
	})

	require.NoError(t, conn.WriteJSON(Inbound{Type: TypeAsk, Question: "  "}))

	msg := read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Equal(t, "default", msg.SessionID)
	assert.Equal(t, "No question provided", msg.Message)
}

func TestCancelWhileAnswering(t *testing.T) {
	release := make(chan struct{})
	conn, d := dial(t, func(context.Context, string) (string, error) {
		<-release
		return "late answer", nil
	})

	require.NoError(t, conn.WriteJSON(Inbound{Type: TypeAsk, Question: "long one", SessionID: "ws-2"}))
	require.Eventually(t, func() bool { return d.InFlight() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Inbound{Type: TypeCancel, SessionID: "ws-2"}))
	ack := read(t, conn)
	assert.Equal(t, TypeCancel, ack.Type)
	require.NotNil(t, ack.Success)
	assert.True(t, *ack.Success)

	close(release)

	msg := read(t, conn)
	assert.Equal(t, TypeCancelled, msg.Type)
	assert.Equal(t, "Request was cancelled", msg.Response)
	assert.Zero(t, d.InFlight())
}

func TestCancelWithoutRequest(t *testing.T) {
	conn, _ := dial(t, func(context.Context, string) (string, error) { return "", nil })

	require.NoError(t, conn.WriteJSON(Inbound{Type: TypeCancel}))

	ack := read(t, conn)
	require.NotNil(t, ack.Success)
	assert.False(t, *ack.Success)
	assert.Equal(t, "No ongoing request to cancel", ack.Message)
}

func TestUnsupportedFrame(t *testing.T) {
	conn, _ := dial(t, func(context.Context, string) (string, error) { return "", nil })

	require.NoError(t, conn.WriteJSON(Inbound{Type: "audio"}))

	msg := read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, msg.Message, "audio")
}
