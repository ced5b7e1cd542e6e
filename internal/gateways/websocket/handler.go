package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"backend/internal/app/member"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// clientFrame is what a connected client may send: board subscription
// management only. Everything else flows server to client.
type clientFrame struct {
	Action  string `json:"action"`
	BoardID uint64 `json:"board_id"`
}

func (h *Hub) ServeWS(c *gin.Context) {
	sessionKey := c.Query("session_key")
	if sessionKey == "" {
		h.logger.Warnw("WebSocket connection rejected: session_key missing",
			"client_ip", c.ClientIP(),
			"user_agent", c.GetHeader("User-Agent"),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_key is required"})
		return
	}

	session, err := h.sessionSvc.GetSessionByKey(sessionKey)
	if err != nil {
		h.logger.Warnw("WebSocket connection rejected: session not found",
			"client_ip", c.ClientIP(),
		)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return
	}

	user, err := h.userRepo.GetUserByID(session.UserID)
	if err != nil {
		h.logger.Warnw("WebSocket connection rejected: user not found",
			"user_id", session.UserID,
		)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorw("Failed to upgrade connection", "error", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		ID:     generateClientID(),
		UserID: user.ID,
		send:   make(chan []byte, sendBuffer),
		boards: make(map[uint64]bool),
	}

	h.logger.Infow("WebSocket connection established",
		"client_id", client.ID,
		"user_id", client.UserID,
		"client_ip", c.ClientIP(),
	)

	h.register <- client
	go client.writePump(conn)
	client.readPump()
}

// readPump handles inbound subscription frames until the connection drops.
// The board view check runs here, off the hub goroutine.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.hub.logger.Debugw("Ignoring malformed frame", "client_id", c.ID)
			continue
		}

		switch frame.Action {
		case "subscribe":
			ok, err := c.hub.memberSvc.HasPermission(c.UserID, frame.BoardID, member.ActionViewBoard)
			if err != nil {
				c.hub.logger.Errorw("Subscription permission check failed",
					"client_id", c.ID, "board_id", frame.BoardID, "error", err)
				continue
			}
			if !ok {
				c.reply("subscription_denied", frame.BoardID)
				continue
			}
			c.hub.subscribe <- subscription{client: c, boardID: frame.BoardID}
			c.reply("subscribed", frame.BoardID)

		case "unsubscribe":
			c.hub.unsubscribe <- subscription{client: c, boardID: frame.BoardID}
			c.reply("unsubscribed", frame.BoardID)

		default:
			c.hub.logger.Debugw("Ignoring unknown action",
				"client_id", c.ID, "action", frame.Action)
		}
	}
}

func (c *Client) reply(event string, boardID uint64) {
	payload, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  map[string]interface{}{"board_id": boardID},
	})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// writePump owns all writes to the connection, including keepalive pings.
func (c *Client) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
