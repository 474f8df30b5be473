package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/rwamarket/auctiond/internal/core/ports"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type eventsHandler struct {
	pubsub ports.PubSub
}

// serveFeed streams domain events to the client as JSON messages, optionally
// filtered by auction id via the ?auction= query parameter.
func (h eventsHandler) serveFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("websocket upgrade failed")
		return
	}
	defer conn.Close()

	auctionFilter := r.URL.Query().Get("auction")

	id, events := h.pubsub.Subscribe()
	defer h.pubsub.Unsubscribe(id)

	// Drain reads so close frames are processed; the feed is write-only.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if auctionFilter != "" && event.AuctionId != auctionFilter {
				continue
			}
			// nolint:errcheck
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				log.WithError(err).Debug("closing event feed subscriber")
				return
			}
		case <-ticker.C:
			// nolint:errcheck
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
