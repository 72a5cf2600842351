package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 50 * time.Second
	sendBuffer   = 16
	maxFrameSize = 512
)

// Client is one websocket subscriber. The reader owns done and closes it
// when the peer goes away; the writer owns the connection and closes it.
type Client struct {
	conn    *websocket.Conn
	hub     *Hub
	userID  string
	send    chan []byte
	done    chan struct{}
	stopped chan struct{}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and streams balance updates for userID
// (or every user when userID is AllUsers) until the peer goes away.
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{
		conn:    conn,
		hub:     hub,
		userID:  userID,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	hub.Register(userID, client)
	go client.write()
	client.read()
}

// read discards inbound frames; it exists to process pongs and notice
// disconnects.
func (c *Client) read() {
	defer func() {
		c.hub.Unregister(c.userID, c)
		close(c.done)
	}()
	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) write() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.hub.Unregister(c.userID, c)
		_ = c.conn.Close()
		close(c.stopped)
	}()
	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case payload := <-c.send:
			if err := c.writeFrame(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.writeFrame(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) writeFrame(kind int, payload []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(kind, payload)
}
