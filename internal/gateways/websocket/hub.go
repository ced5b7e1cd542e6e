package websocket

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"

	"backend/internal/app/member"
	"backend/internal/app/session"
	"backend/internal/app/user"
	"backend/internal/utils"

	"go.uber.org/zap"
)

type Client struct {
	hub    *Hub
	conn   ClientConn
	ID     string
	UserID uint64
	send   chan []byte
	boards map[uint64]bool
}

type ClientConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

func generateClientID() string {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "xxxxx"
	}
	return base64.URLEncoding.EncodeToString(bytes)
}

type subscription struct {
	client  *Client
	boardID uint64
}

// Hub routes live events to clients by board. A client only receives events
// for boards it subscribed to, and subscribing requires view permission on
// that board. All map access happens on the Run goroutine.
type Hub struct {
	clients     map[*Client]bool
	boards      map[uint64]map[*Client]bool
	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription
	events      <-chan utils.Event

	sessionSvc session.Service
	userRepo   user.Repository
	memberSvc  member.Service
	logger     *zap.SugaredLogger
}

func NewHub(
	eventBus *utils.EventBus,
	sessionSvc session.Service,
	userRepo user.Repository,
	memberSvc member.Service,
	logger *zap.Logger,
) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		boards:      make(map[uint64]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		events:      eventBus.SubscribeCh(),
		sessionSvc:  sessionSvc,
		userRepo:    userRepo,
		memberSvc:   memberSvc,
		logger:      logger.Sugar(),
	}
}

func (h *Hub) Run() {
	h.logger.Info("WebSocket Hub started")

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Infow("Client connected",
				"client_id", client.ID,
				"user_id", client.UserID,
				"clients_count", len(h.clients),
			)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.dropClient(client)
				close(client.send)
				h.logger.Infow("Client disconnected",
					"client_id", client.ID,
					"clients_count", len(h.clients),
				)
			}

		case sub := <-h.subscribe:
			room, ok := h.boards[sub.boardID]
			if !ok {
				room = make(map[*Client]bool)
				h.boards[sub.boardID] = room
			}
			room[sub.client] = true
			sub.client.boards[sub.boardID] = true
			h.logger.Debugw("Client subscribed to board",
				"client_id", sub.client.ID,
				"board_id", sub.boardID,
			)

		case sub := <-h.unsubscribe:
			if room, ok := h.boards[sub.boardID]; ok {
				delete(room, sub.client)
				if len(room) == 0 {
					delete(h.boards, sub.boardID)
				}
			}
			delete(sub.client.boards, sub.boardID)

		case event := <-h.events:
			h.dispatch(event)
		}
	}
}

// dispatch fans one event out to every client subscribed to the board the
// event carries. Events without a board_id are not routable and are dropped.
func (h *Hub) dispatch(event utils.Event) {
	boardID, ok := boardIDOf(event)
	if !ok {
		h.logger.Debugw("Dropping event without a board", "event", event.Event)
		return
	}
	room := h.boards[boardID]
	if len(room) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorw("Failed to marshal event", "event", event.Event, "error", err)
		return
	}

	for client := range room {
		select {
		case client.send <- payload:
		default:
			// Slow consumer: drop this event rather than block the hub.
			h.logger.Warnw("Dropping event for slow client",
				"client_id", client.ID, "event", event.Event)
		}
	}
}

func (h *Hub) dropClient(client *Client) {
	delete(h.clients, client)
	for boardID := range client.boards {
		if room, ok := h.boards[boardID]; ok {
			delete(room, client)
			if len(room) == 0 {
				delete(h.boards, boardID)
			}
		}
	}
}

func boardIDOf(event utils.Event) (uint64, bool) {
	data, ok := event.Data.(map[string]interface{})
	if !ok {
		return 0, false
	}
	switch v := data["board_id"].(type) {
	case uint64:
		return v, true
	case float64:
		return uint64(v), true
	default:
		return 0, false
	}
}
