package handlers

import (
	"log"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/tutorly/api/websocket"
)

// ServeWs registers the connection under the caller-supplied user id and
// keeps it open until the peer goes away. Events are pushed by the hub;
// inbound frames are only read to detect disconnects.
func ServeWs(c *websocketcontrib.Conn) {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		log.Printf("WebSocket rejected: invalid user id %q", c.Params("userId"))
		_ = c.WriteJSON(map[string]string{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
