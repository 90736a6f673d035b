package socket

import (
	"net/http"
	"time"

	"sintesi/pkg/logger"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin allows connections from the web client's dev server.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWs upgrades the request and joins the owner's room. The connection is
// receive-only from the client's perspective: the server pushes refresh
// signals and ignores anything the client writes.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, ownerID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Sugar.Error(err)
		return
	}

	client := &Client{
		Hub:     hub,
		Conn:    conn,
		OwnerID: ownerID,
		Send:    make(chan []byte, 16),
	}

	client.Hub.Register <- client

	go client.writePump()
	go client.readPump()
}

// readPump exists only to detect the peer closing the connection. Inbound
// frames carry no meaning in this protocol and are discarded.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Sugar.Errorf("error: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	// A ping every 30s keeps the connection alive and detects dead peers.
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.Conn.WriteMessage(websocket.TextMessage, message)
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
