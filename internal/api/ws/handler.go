package ws

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/juanjsts/game-catalog-service/internal/events"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Handler upgrades live-update connections and registers them with the
// change-event registry.
type Handler struct {
	registry *events.Registry
	logger   *zap.Logger
}

// NewHandler constructs the websocket handler.
func NewHandler(registry *events.Registry, logger *zap.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// Upgrade rejects plain HTTP requests on the websocket route.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Updates serves GET /ws/updates. Each connection gets a channel ID and
// a serialized send function; the connection is unregistered when the
// read loop ends or the registry evicts it after repeated send failures.
func (h *Handler) Updates() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		channelID := uuid.NewString()

		var writeMu sync.Mutex
		send := func(payload []byte) error {
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			return conn.WriteMessage(websocket.TextMessage, payload)
		}

		h.registry.Register(channelID, send)
		h.logger.Info("ws client connected", zap.String("channel_id", channelID))

		done := make(chan struct{})
		defer func() {
			close(done)
			h.registry.Unregister(channelID)
			_ = conn.Close()
			h.logger.Info("ws client disconnected", zap.String("channel_id", channelID))
		}()

		go h.pingLoop(conn, &writeMu, done)

		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		// Clients only listen; the read loop exists to detect disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Warn("ws read failed", zap.String("channel_id", channelID), zap.Error(err))
				}
				return
			}
		}
	})
}

func (h *Handler) pingLoop(conn *websocket.Conn, writeMu *sync.Mutex, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			writeMu.Lock()
			err := conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err == nil {
				err = conn.WriteMessage(websocket.PingMessage, nil)
			}
			writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
