package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs streams the events of one guide session to the peer. It returns
// when the peer disconnects or the hub shuts down.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID, userID string) {
	client := newClient(hub, c, sessionID, userID)
	if !hub.join(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
