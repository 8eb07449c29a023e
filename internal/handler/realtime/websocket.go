package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	errx "github.com/zhouzirui/interview-bot/backend/internal/core/error"
	"github.com/zhouzirui/interview-bot/backend/internal/service/dispatch"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
)

// Frame types exchanged over the socket.
const (
	TypeAsk       = "ask"
	TypeCancel    = "cancel"
	TypeConnected = "connected"
	TypeAnswer    = "answer"
	TypeCancelled = "cancelled"
	TypeError     = "error"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// Handler WebSocket问答处理器，同一连接上可以在回答生成期间发送取消
type Handler struct {
	dispatcher *dispatch.Dispatcher
	upgrader   websocket.Upgrader
}

// New 创建WebSocket处理器
func New(dispatcher *dispatch.Dispatcher) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

// Inbound is a client frame.
type Inbound struct {
	Type      string `json:"type"`
	Question  string `json:"question,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// Outbound is a server frame.
type Outbound struct {
	Type         string `json:"type"`
	ConnectionID string `json:"connection_id,omitempty"`
	SessionID    string `json:"session_id,omitempty"`
	Response     string `json:"response,omitempty"`
	Outcome      string `json:"outcome,omitempty"`
	Success      *bool  `json:"success,omitempty"`
	Message      string `json:"message,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// connection 串行化写操作；gorilla 只允许一个并发写者
type connection struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *connection) send(msg Outbound) {
	msg.Timestamp = time.Now().Unix()

	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(msg); err != nil {
		logx.Warn().Err(err).Str("connection_id", c.id).Str("type", msg.Type).Msg("websocket write failed")
	}
}

func (c *connection) sendError(sessionID, message string) {
	c.send(Outbound{Type: TypeError, SessionID: sessionID, Message: message})
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer ws.Close()

	c := &connection{id: uuid.NewString(), conn: ws}
	logx.Info().Str("connection_id", c.id).Msg("websocket connected")

	ctx, cancel := context.WithCancel(r.Context())
	var inflight sync.WaitGroup
	defer func() {
		cancel()
		inflight.Wait()
		logx.Info().Str("connection_id", c.id).Msg("websocket closed")
	}()

	_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readTimeout))
	})
	go pingLoop(ctx, ws)

	c.send(Outbound{Type: TypeConnected, ConnectionID: c.id})

	for {
		var msg Inbound
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logx.Warn().Err(err).Str("connection_id", c.id).Msg("websocket read failed")
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))

		switch msg.Type {
		case TypeAsk:
			// 回答在独立 goroutine 中生成，读循环继续接收取消帧
			inflight.Add(1)
			go func(msg Inbound) {
				defer inflight.Done()
				h.answer(ctx, c, msg)
			}(msg)
		case TypeCancel:
			h.cancel(c, msg)
		default:
			c.sendError(msg.SessionID, "unsupported message type: "+msg.Type)
		}
	}
}

func (h *Handler) answer(ctx context.Context, c *connection, msg Inbound) {
	result, err := h.dispatcher.HandleQuestion(ctx, msg.Question, msg.SessionID)
	if err != nil {
		c.sendError(dispatch.NormalizeSessionID(msg.SessionID), errx.MessageOf(err))
		return
	}

	frame := Outbound{
		Type:      TypeAnswer,
		SessionID: result.SessionID,
		Response:  result.Answer,
		Outcome:   string(result.Outcome),
	}
	switch result.Outcome {
	case dispatch.Cancelled:
		frame.Type = TypeCancelled
	case dispatch.Failed:
		frame.Type = TypeError
	}
	c.send(frame)
}

func (h *Handler) cancel(c *connection, msg Inbound) {
	sessionID := dispatch.NormalizeSessionID(msg.SessionID)
	found := h.dispatcher.CancelQuestion(sessionID)

	message := "No ongoing request to cancel"
	if found {
		message = "Response generation cancelled"
	}
	c.send(Outbound{Type: TypeCancel, SessionID: sessionID, Success: &found, Message: message})
}

// pingLoop 定期发送ping消息
func pingLoop(ctx context.Context, ws *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
