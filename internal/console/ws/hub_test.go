package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/your-org/frfront/internal/models"
	"github.com/your-org/frfront/pkg/dto"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("only %d of %d clients registered", hub.ClientCount(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) dto.WSEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var evt dto.WSEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	return evt
}

func TestHub_ScreenFilter(t *testing.T) {
	hub, url := startHub(t)
	all := dial(t, url)
	searchOnly := dial(t, url+"?screen=search")
	waitForClients(t, hub, 2)

	hub.BroadcastActivity(models.NewActivity("home", "load", "", "req-1"))
	search := models.NewActivity("search", "search_by_email", "a@x.com", "req-2")
	if err := hub.RecordActivity(context.Background(), search); err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}

	if evt := readEvent(t, all); evt.Screen != "home" || evt.Data.RequestID != "req-1" {
		t.Fatalf("unfiltered client got %+v first", evt)
	}
	if evt := readEvent(t, all); evt.Screen != "search" {
		t.Fatalf("unfiltered client got %+v second", evt)
	}
	// The filtered client never sees the home activity.
	if evt := readEvent(t, searchOnly); evt.Screen != "search" || evt.Data.Subject != "a@x.com" {
		t.Fatalf("filtered client got %+v", evt)
	}
}

func TestHub_MatchEventType(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	a := models.NewActivity("recognition", "recognize_by_email", "e@x.com", "req-3")
	a.Match = &models.Match{PersonID: 4, Name: "Eva Luna", Similarity: 0.9, IsMatch: true}
	hub.BroadcastActivity(a)

	evt := readEvent(t, conn)
	if evt.Type != "match" || evt.Data.Match == nil || evt.Data.Match.PersonID != 4 {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestHub_UnregistersClosedClients(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitForClients(t, hub, 1)

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client not unregistered after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
