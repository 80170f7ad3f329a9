package ws

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/profile-engine/internal/domain/engine"
	"github.com/GriffinCanCode/profile-engine/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/profile-engine/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

// DefaultWriteTimeout bounds a single frame write
const DefaultWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced by the CORS layer
	},
}

// message is a control frame sent by the server
type message struct {
	Type         string `json:"type"`
	SubscriberID string `json:"subscriber_id,omitempty"`
	Message      string `json:"message,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// Handler manages WebSocket connections
type Handler struct {
	engine       *engine.Engine
	metrics      *monitoring.Metrics
	logger       *zap.Logger
	buffer       int
	writeTimeout time.Duration
}

// NewHandler creates a new WebSocket handler
func NewHandler(eng *engine.Engine, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:       eng,
		logger:       logger,
		writeTimeout: DefaultWriteTimeout,
	}
}

// WithMetrics records subscriber counts and drops
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// WithStream sets the per-connection buffer and write deadline
func (h *Handler) WithStream(buffer int, writeTimeout time.Duration) *Handler {
	h.buffer = buffer
	if writeTimeout > 0 {
		h.writeTimeout = writeTimeout
	}
	return h
}

// conn serialises writes from the event pump and the reader
type conn struct {
	ws           *websocket.Conn
	writeTimeout time.Duration
	mu           sync.Mutex
}

func (c *conn) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteJSON(v)
}

// HandleConnection upgrades the request and streams events until either
// side goes away
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	subscriberID := uuid.NewString()
	logger := h.logger.With(zap.String("subscriber_id", subscriberID))
	sc := &conn{ws: ws, writeTimeout: h.writeTimeout}

	sub := h.engine.Subscribe(h.buffer)
	if h.metrics != nil {
		h.metrics.IncStreamSubscribers()
	}
	logger.Info("stream subscriber connected")

	done := make(chan struct{})
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer close(done)
		h.read(sc, logger)
	}()

	defer func() {
		sub.Close()
		ws.Close()
		<-readerDone
		if h.metrics != nil {
			h.metrics.DecStreamSubscribers()
		}
		logger.Info("stream subscriber disconnected")
	}()

	if err := sc.send(message{
		Type:         "system",
		SubscriberID: subscriberID,
		Timestamp:    time.Now().UnixMilli(),
	}); err != nil {
		logger.Warn("failed to send welcome", zap.Error(err))
		return
	}

	breaker := resilience.New("stream-"+subscriberID, resilience.DeliverySettings())
	for {
		select {
		case <-done:
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			if !h.deliver(sc, breaker, ev, logger) {
				return
			}
		}
	}
}

// deliver writes one event. It returns false once the breaker has opened.
func (h *Handler) deliver(sc *conn, breaker *resilience.Breaker, ev types.Event, logger *zap.Logger) bool {
	err := breaker.Do(func() error { return sc.send(ev) })
	if err == nil {
		return true
	}

	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		h.recordDrop("breaker_open")
		logger.Warn("delivery breaker open, dropping subscriber",
			zap.Uint32("failures", breaker.Counts().ConsecutiveFailures))
		return false
	}

	h.recordDrop("write_error")
	logger.Debug("event write failed",
		zap.String("event", string(ev.Type)),
		zap.Error(err))
	return true
}

func (h *Handler) read(sc *conn, logger *zap.Logger) {
	for {
		var msg types.WSMessage
		if err := sc.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		var reply message
		switch msg.Type {
		case "ping":
			reply = message{Type: "pong"}
		default:
			reply = message{Type: "error", Message: "unknown message type"}
		}
		reply.Timestamp = time.Now().UnixMilli()

		if err := sc.send(reply); err != nil {
			return
		}
	}
}

func (h *Handler) recordDrop(reason string) {
	if h.metrics != nil {
		h.metrics.RecordStreamDrop(reason)
	}
}
