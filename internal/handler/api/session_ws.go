package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	models "FinCompare/internal/domain/models"
	"FinCompare/internal/usecase"
	xhttp "FinCompare/pkg/http"
	xlogger "FinCompare/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait    = 10 * time.Second
	wsPongWait     = 60 * time.Second
	wsPingInterval = 50 * time.Second
	wsMaxMessage   = 8 << 10
)

// SessionWSHandler serves comparison sessions over WebSocket. Each
// connection owns one usecase.Session.
type SessionWSHandler struct {
	logger   *xlogger.Logger
	svc      *usecase.ComparisonService
	upgrader websocket.Upgrader
}

func NewSessionWSHandler(logger *xlogger.Logger, svc *usecase.ComparisonService) *SessionWSHandler {
	return &SessionWSHandler{
		logger: logger,
		svc:    svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *SessionWSHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/compare", h.Serve)
}

func (h *SessionWSHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	session := usecase.NewSession(uuid.New().String(), h.svc)
	log := h.logger.With(xlogger.String("session", session.ID))
	log.Info("comparison session opened")
	defer log.Info("comparison session closed")

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go h.pingLoop(conn, done)

	ctx := c.Request().Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read error", xlogger.Error(err))
			}
			return nil
		}

		reply := h.handle(ctx, session, data)
		if reply.Type == models.MsgError {
			log.Debug("rejected session message", xlogger.String("error", reply.Error))
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			log.Warn("websocket write error", xlogger.Error(err))
			return nil
		}
	}
}

func (h *SessionWSHandler) handle(ctx context.Context, session *usecase.Session, data []byte) models.SessionReply {
	fail := func(msg string) models.SessionReply {
		return models.SessionReply{Type: models.MsgError, SessionID: session.ID, Error: msg}
	}

	var msg models.SessionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fail("invalid JSON message")
	}
	if verr := xhttp.ValidateStruct(ctx, &msg); verr != nil {
		return fail(verr[0].Field + ": " + verr[0].Message)
	}

	cmp, err := session.Apply(ctx, msg)
	if err != nil {
		if errors.Is(err, usecase.ErrBadMessage) {
			return fail(err.Error())
		}
		h.logger.Error("session apply error", xlogger.String("session", session.ID), xlogger.Error(err))
		return fail("internal error")
	}
	return models.SessionReply{Type: models.MsgComparison, SessionID: session.ID, Data: cmp}
}

// pingLoop keeps idle connections alive. WriteControl may run concurrently
// with the reader's WriteJSON.
func (h *SessionWSHandler) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
