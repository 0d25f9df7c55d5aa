package gateway

import (
	"context"
	stdsync "sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/petrichor-games/duelist/internal/domain/combat"
	roomsync "github.com/petrichor-games/duelist/internal/sync"
)

// Hub fans canonical combat records out to every websocket client
// connected to a room. A room's sync coordinator starts with its first
// client and stops with its last; clients always re-render from the pushed
// record, never from local optimistic state.
type Hub struct {
	coordinator *roomsync.Coordinator
	log         zerolog.Logger

	mu    stdsync.Mutex
	rooms map[string]*room
}

type room struct {
	clients map[*client]bool
	cancel  context.CancelFunc
}

type client struct {
	conn *websocket.Conn
	send chan *combat.Combat
}

// NewHub creates a hub backed by the given sync coordinator
func NewHub(coordinator *roomsync.Coordinator, log zerolog.Logger) *Hub {
	if coordinator == nil {
		panic("sync coordinator is required")
	}
	return &Hub{
		coordinator: coordinator,
		log:         log,
		rooms:       make(map[string]*room),
	}
}

// Serve attaches a websocket connection to a room until the peer hangs up
func (h *Hub) Serve(roomID string, conn *websocket.Conn) {
	cl := &client{
		conn: conn,
		send: make(chan *combat.Combat, 16),
	}

	h.join(roomID, cl)
	defer h.leave(roomID, cl)

	go cl.writePump()

	// The read loop only watches for the peer closing; intents arrive over
	// the REST surface.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) join(roomID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rm, ok := h.rooms[roomID]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		rm = &room{
			clients: make(map[*client]bool),
			cancel:  cancel,
		}
		h.rooms[roomID] = rm

		go func() {
			err := h.coordinator.Run(ctx, roomID, func(c *combat.Combat) {
				h.broadcast(roomID, c)
			})
			if err != nil && ctx.Err() == nil {
				h.log.Error().Err(err).Str("room_id", roomID).Msg("room sync stopped")
			}
		}()
	}

	rm.clients[cl] = true
}

func (h *Hub) leave(roomID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rm, ok := h.rooms[roomID]
	if !ok {
		return
	}

	delete(rm.clients, cl)
	close(cl.send)

	if len(rm.clients) == 0 {
		rm.cancel()
		delete(h.rooms, roomID)
	}
}

// broadcast queues a record for every client in the room. Clients that
// cannot keep up miss intermediate versions; the next push or poll carries
// the latest state anyway.
func (h *Hub) broadcast(roomID string, c *combat.Combat) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rm, ok := h.rooms[roomID]
	if !ok {
		return
	}
	for cl := range rm.clients {
		select {
		case cl.send <- c:
		default:
		}
	}
}

func (cl *client) writePump() {
	for c := range cl.send {
		if err := cl.conn.WriteJSON(c); err != nil {
			return
		}
	}
	_ = cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
