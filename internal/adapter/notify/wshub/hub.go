package wshub

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

var ErrClosed = errors.New("notification hub closed")

// Message is what subscribers receive after each committed pass.
type Message struct {
	StationID string          `json:"station_id"`
	Events    []station.Event `json:"events"`
}

type envelope struct {
	stationID string
	payload   []byte
}

// Hub fans committed accounting events out to websocket subscribers. A
// subscriber picks one station with ?station_id= or receives every station.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan envelope
	register   chan *client
	unregister chan *client
	done       chan struct{}
	upgrader   websocket.Upgrader
	logger     *slog.Logger
	count      atomic.Int64
}

func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan envelope, sendBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Run owns the subscriber set until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.count.Store(0)
			h.logger.Info("notification hub stopped")
			return
		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int64(len(h.clients)))
			h.logger.Debug("subscriber connected", "station", c.stationID)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.count.Store(int64(len(h.clients)))
				h.logger.Debug("subscriber disconnected", "station", c.stationID)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				if c.stationID != "" && c.stationID != msg.stationID {
					continue
				}
				select {
				case c.send <- msg.payload:
				default:
					close(c.send)
					delete(h.clients, c)
					h.logger.Warn("dropping slow subscriber", "station", c.stationID)
				}
			}
			h.count.Store(int64(len(h.clients)))
		}
	}
}

// Subscribers is the number of connected clients as last seen by Run.
func (h *Hub) Subscribers() int {
	return int(h.count.Load())
}

func (h *Hub) Publish(ctx context.Context, stationID string, events []station.Event) error {
	if len(events) == 0 {
		return nil
	}
	select {
	case <-h.done:
		return ErrClosed
	default:
	}
	payload, err := json.Marshal(Message{StationID: stationID, Events: events})
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- envelope{stationID: stationID, payload: payload}:
		return nil
	case <-h.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	c := &client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		stationID: strings.TrimSpace(r.URL.Query().Get("station_id")),
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}
