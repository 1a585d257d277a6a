package qos

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/junsooki/yuvview/internal/logger"
)

const (
	writeWait  = 5 * time.Second
	pingPeriod = 25 * time.Second
	clientBuf  = 16
)

// Feed broadcasts notifications as JSON Events to websocket clients.
// Slow clients lose events rather than stalling the producer.
type Feed struct {
	Recorder

	upgrader websocket.Upgrader
	log      *logger.Logger

	mu      sync.Mutex
	clients map[string]chan Event
	last    map[Kind]Event

	done      chan struct{}
	closeOnce sync.Once
}

func NewFeed(log *logger.Logger) *Feed {
	f := &Feed{
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		log:      log.Component("feed"),
		clients:  make(map[string]chan Event),
		last:     make(map[Kind]Event),
		done:     make(chan struct{}),
	}
	f.Recorder = f.broadcast
	return f
}

func (f *Feed) broadcast(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last[e.Kind] = e
	for _, ch := range f.clients {
		select {
		case ch <- e:
		default:
		}
	}
}

// Close disconnects every client and refuses new ones.
// http.Server.Shutdown does not wait for hijacked connections, so the
// server owning the feed calls Close when it shuts down.
func (f *Feed) Close() {
	f.closeOnce.Do(func() { close(f.done) })
}

// Clients returns the number of connected clients.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// ServeHTTP upgrades the request and streams events until the client
// goes away. New clients first receive the latest event of each kind.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-f.done:
		http.Error(w, "feed closed", http.StatusServiceUnavailable)
		return
	default:
	}
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn().Err(err).Msg("upgrade")
		return
	}
	id := uuid.NewString()
	ch := make(chan Event, clientBuf)

	f.mu.Lock()
	for _, k := range []Kind{KindCodec, KindBitrate, KindKeyFrameRequest} {
		if e, ok := f.last[k]; ok {
			ch <- e
		}
	}
	f.clients[id] = ch
	f.mu.Unlock()
	f.log.Debug().Str("id", id).Str("addr", r.RemoteAddr).Msg("client connected")

	defer func() {
		f.mu.Lock()
		delete(f.clients, id)
		f.mu.Unlock()
		_ = conn.Close()
		f.log.Debug().Str("id", id).Msg("client disconnected")
	}()

	// reads only detect the close
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-gone:
			return
		case <-f.done:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		case e := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
