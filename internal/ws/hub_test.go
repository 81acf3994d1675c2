package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nextcut/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*Hub, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/barbers/:id/ws", hub.ServeQueue)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_DeliversToBarberSubscribers(t *testing.T) {
	hub, srv := newServer(t)
	mine := dial(t, srv, "/barbers/1/ws")
	other := dial(t, srv, "/barbers/2/ws")

	require.Eventually(t, func() bool {
		return hub.Subscribers(1) == 1 && hub.Subscribers(2) == 1
	}, time.Second, 10*time.Millisecond)

	err := hub.Publish(context.Background(), events.Event{EventType: events.UserJoined, BarberID: 1})
	require.NoError(t, err)

	mine.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := mine.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"event_type":"user_joined","barber_id":1}`, string(msg))

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, srv := newServer(t)
	conn := dial(t, srv, "/barbers/4/ws")
	require.Eventually(t, func() bool { return hub.Subscribers(4) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers(4) == 0 }, time.Second, 10*time.Millisecond)
}

func TestServeQueue_RejectsBadID(t *testing.T) {
	_, srv := newServer(t)
	resp, err := http.Get(srv.URL + "/barbers/abc/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPublish_AfterStop(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	// Fill the buffer so Publish has to notice the stopped hub.
	for i := 0; i < cap(hub.broadcast)+1; i++ {
		assert.NoError(t, hub.Publish(context.Background(), events.Event{EventType: events.UserLeft, BarberID: 1}))
	}
}
