package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/schooladmin/internal/app/models"
)

func newFeedServer(t *testing.T, actor ActorFunc) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/feed", NewHandler(hub, actor, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(router)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/feed"
}

func TestHub_StreamsPublishedEvents(t *testing.T) {
	admin := func(*gin.Context) (models.Actor, bool) {
		return models.Actor{Username: "admin", Known: true, IsSuperAdmin: true}, true
	}
	hub, srv := newFeedServer(t, admin)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(models.ActivityEvent{
		Type:  models.EventActivityRecorded,
		Entry: models.ActivityLogEntry{ID: "log-1", Action: models.ActionAddStudent},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event models.ActivityEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, models.EventActivityRecorded, event.Type)
	assert.Equal(t, "log-1", event.Entry.ID)
}

func TestHub_UnregistersClosedClients(t *testing.T) {
	admin := func(*gin.Context) (models.Actor, bool) {
		return models.Actor{Username: "admin", Known: true}, true
	}
	hub, srv := newFeedServer(t, admin)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_RejectsAnonymous(t *testing.T) {
	anonymous := func(*gin.Context) (models.Actor, bool) { return models.Actor{}, false }
	_, srv := newFeedServer(t, anonymous)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHub_PublishWithoutClientsDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < publishBuffer*2; i++ {
			hub.Publish(models.ActivityEvent{Type: models.EventActivityUndone})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no running hub")
	}
}
