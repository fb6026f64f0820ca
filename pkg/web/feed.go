package web

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed carries no secrets and no write path, any origin may watch.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Feed broadcasts telemetry events to connected websocket clients. It
// implements telemetry.Sink.
type Feed struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewFeed creates an empty feed hub.
func NewFeed() *Feed {
	return &Feed{clients: make(map[*websocket.Conn]struct{})}
}

// SetupFeedRoute mounts the live feed at /api/feed.
func SetupFeedRoute(s *Server, feed *Feed) {
	s.Group("/api").GET("/feed", feed.handleConnection)
}

// handleConnection upgrades the request and keeps the socket registered until
// the client goes away.
func (f *Feed) handleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(fmt.Sprintf("웹소켓 업그레이드 실패: %v", err), "Feed")
		return
	}

	f.mu.Lock()
	f.clients[conn] = struct{}{}
	count := len(f.clients)
	f.mu.Unlock()
	logger.Debug(fmt.Sprintf("피드 구독 시작 (현재 %d명)", count), "Feed")

	// Inbound frames are ignored; the read loop only notices disconnects.
	go func() {
		defer f.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (f *Feed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	conn.Close()
}

// Publish fans the event out to every connected client. A client that cannot
// keep up is dropped.
func (f *Feed) Publish(evt telemetry.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}

	f.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(f.clients))
	for conn := range f.clients {
		conns = append(conns, conn)
	}
	f.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			f.drop(conn)
		}
	}
}

// ClientCount reports how many clients are subscribed.
func (f *Feed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}
