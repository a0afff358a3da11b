package events

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
)

// feedMessage is the wire frame pushed to change-feed clients.
type feedMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// clientMessage is what a feed client may send: an optional entity filter
// ({"type":"subscribe","entities":[...]}) or a ping.
type clientMessage struct {
	Type     string   `json:"type"`
	Entities []string `json:"entities,omitempty"`
}

// FeedHandler upgrades connections to WebSocket and streams change events
// from the bus. Each connection gets its own bus subscription, removed when
// the connection goes away.
type FeedHandler struct {
	bus *Bus
}

// NewFeedHandler creates a change-feed handler over bus.
func NewFeedHandler(bus *Bus) *FeedHandler {
	return &FeedHandler{bus: bus}
}

// ServeHTTP upgrades to WebSocket and runs until the client disconnects.
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("events: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	subID := "feed-" + uuid.NewString()

	var mu sync.Mutex
	filter := map[string]bool{} // empty filter means all entities

	h.bus.Subscribe(subID, HandlerFunc(func(hctx context.Context, chg Change) error {
		mu.Lock()
		wanted := len(filter) == 0 || filter[chg.Entity]
		mu.Unlock()
		if !wanted {
			return nil
		}
		return wsjson.Write(hctx, conn, feedMessage{Type: "change", Data: chg})
	}))
	defer h.bus.Unsubscribe(subID)

	if err := wsjson.Write(ctx, conn, feedMessage{Type: "hello"}); err != nil {
		return
	}

	// Message loop: the feed is push-mostly, clients only adjust the filter
	// or keep the connection alive.
	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("events: connection closed: %v", websocket.CloseStatus(err))
			}
			return
		}

		switch msg.Type {
		case "subscribe":
			mu.Lock()
			filter = map[string]bool{}
			for _, e := range msg.Entities {
				filter[e] = true
			}
			mu.Unlock()
			h.sendAck(ctx, conn, msg.Entities)
		case "ping":
			if err := wsjson.Write(ctx, conn, feedMessage{Type: "pong"}); err != nil {
				return
			}
		}
	}
}

func (h *FeedHandler) sendAck(ctx context.Context, conn *websocket.Conn, entities []string) {
	if err := wsjson.Write(ctx, conn, feedMessage{
		Type: "subscribed",
		Data: map[string]any{"entities": entities},
	}); err != nil {
		log.Printf("events: write error: %v", err)
	}
}
