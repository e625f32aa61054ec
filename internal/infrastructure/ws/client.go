package ws

import (
	"log"

	"github.com/gorilla/websocket"
)

type Client struct {
	conn    *connWrapper
	Message chan *FeedMessage
	ID      string `json:"id"`
}

func NewClient(conn *websocket.Conn, id string) *Client {
	return &Client{
		conn:    newConnWrapper(conn),
		Message: make(chan *FeedMessage, 64), // buffered to avoid dead-locks on slow clients
		ID:      id,
	}
}

// ReadMessage drains the connection until the peer goes away. The feed is
// one-directional; inbound frames are discarded, but the read loop is what
// notices a disconnect and tears the client down.
func (c *Client) ReadMessage(core *Core) {
	defer func() {
		core.Unregister() <- c
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error (client %s): %v", c.ID, err)
			}
			break
		}
	}
}

func (c *Client) WriteMessage() {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.Message {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error (client %s): %v", c.ID, err)
			break
		}
	}
}
