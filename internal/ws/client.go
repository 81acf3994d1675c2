package ws

import (
	"net/http"
	"strconv"
	"time"

	"nextcut/internal/apperr"
	"nextcut/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client is one websocket subscriber.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	barberID uint
}

// readPump only watches for disconnects; clients have nothing to say.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeQueue godoc
// @Summary      Live queue updates
// @Description  Upgrades to a websocket that receives every change to the barber's queue as JSON
// @Tags         barbers
// @Param        id   path  int  true  "Barber ID"
// @Success      101
// @Failure      400  {object}  response.ErrorResponse
// @Router       /barbers/{id}/ws [get]
func (h *Hub) ServeQueue(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || barberID == 0 {
		response.Fail(c, apperr.Invalid("VALIDATION_ERROR", "barber id must be a positive integer"))
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		return
	}
	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 256),
		barberID: uint(barberID),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
