package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"workspace-service/internal/middleware"
	"workspace-service/internal/realtime"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	userID uuid.UUID
}

// WSHandler streams a user's realtime notification envelopes over websocket,
// bridging from the per-user Redis pub/sub channel.
type WSHandler struct {
	redis     *redis.Client
	jwtSecret string
	logger    *zap.Logger
}

func NewWSHandler(redisClient *redis.Client, jwtSecret string, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		redis:     redisClient,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// HandleNotificationStream godoc
// @Summary Open the realtime notification stream
// @Tags Notifications
// @Param token query string true "JWT Access Token"
// @Success 101
// @Router /ws/notifications [get]
func (h *WSHandler) HandleNotificationStream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	userID, err := middleware.ParseToken(token, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	if h.redis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Realtime delivery unavailable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	client := &wsClient{
		conn:   conn,
		send:   make(chan []byte, 64),
		done:   make(chan struct{}),
		userID: userID,
	}

	h.logger.Info("Notification stream opened",
		zap.String("userId", userID.String()),
	)

	go h.subscribeToRedis(client)
	go h.writePump(client)
	go h.readPump(client)
}

// subscribeToRedis forwards the user's pub/sub channel into the socket's
// send queue until the subscription closes or readPump signals done. It is
// the only sender on client.send and closes it on exit.
func (h *WSHandler) subscribeToRedis(client *wsClient) {
	defer close(client.send)

	pubsub := h.redis.Subscribe(context.Background(), realtime.UserChannel(client.userID))
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			select {
			case client.send <- []byte(msg.Payload):
			case <-client.done:
				return
			case <-time.After(1 * time.Second):
				h.logger.Warn("Slow notification stream client, dropping connection",
					zap.String("userId", client.userID.String()))
				return
			}
		case <-client.done:
			return
		}
	}
}

func (h *WSHandler) readPump(client *wsClient) {
	defer func() {
		client.conn.Close()
		close(client.done)
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The stream is server-push only; reads exist to surface close frames
	// and keep pong handling alive.
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}
	}
}

func (h *WSHandler) writePump(client *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
