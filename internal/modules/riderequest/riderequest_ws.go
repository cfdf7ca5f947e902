package riderequest

import (
	"net/http"
	"time"

	"ride-hailing/internal/models"
	"ride-hailing/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Credentials are checked by the JWT middleware before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Stream serves GET /api/rides/ride-requests/:id/ws. It sends the current state, then
// every change, and closes once the request reaches a terminal status.
func (h *Handler) Stream(c echo.Context) error {
	riderID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	current, updates, unsubscribe, err := h.service.Watch(c.Request().Context(), c.Param("id"), riderID)
	if err != nil {
		return h.handleError(c, err)
	}
	defer unsubscribe()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		c.Logger().Warnf("websocket upgrade for ride request %s: %v", current.ID, err)
		return nil
	}
	defer conn.Close()

	// The client never sends anything useful; reading only processes pongs and notices
	// when the peer goes away.
	closed := make(chan struct{})
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(view models.RideRequestView) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(models.Envelope{Status: models.StatusSuccess, Data: view})
	}

	if err := send(*current); err != nil {
		return nil
	}
	if IsTerminal(current.Status) {
		closeNormally(conn)
		return nil
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case view, ok := <-updates:
			if !ok {
				return nil
			}
			if err := send(view); err != nil {
				c.Logger().Debugf("websocket write for ride request %s: %v", view.ID, err)
				return nil
			}
			if IsTerminal(view.Status) {
				closeNormally(conn)
				return nil
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		case <-closed:
			return nil
		case <-c.Request().Context().Done():
			return nil
		}
	}
}

func closeNormally(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "ride request finished")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
