// Package live pushes order events to connected shopkeeper dashboards over
// WebSocket. Each shop is a room; the bridge feeds the hub from the
// marketplace event channel.
package live

import (
	"context"
	"log"
	"net/http"
	"sync"

	"mandi/db"
	"mandi/models"
	"mandi/mq"
	"mandi/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	Room   string
	UserID string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	quit       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

// Broadcast sends data to every client in the room.
func (h *Hub) Broadcast(room string, data []byte) {
	h.broadcast <- broadcastMsg{Room: room, Data: data}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ShopFeed upgrades the connection and subscribes the shopkeeper to their own
// shop's room.
func ShopFeed(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var shop models.Shop
		if err := db.ShopsCollection.FindOne(r.Context(), bson.M{"ownerid": userID}).Decode(&shop); err != nil {
			http.Error(w, "No shop for this account", http.StatusNotFound)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   shop.ShopID,
			UserID: userID,
		}
		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// The feed is one-way; reads only serve to detect the close.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// StartBridge drains marketplace events into the hub, routing shop-scoped
// events to the shop's room.
func StartBridge(ctx context.Context, hub *Hub) {
	go func() {
		for event := range mq.Subscribe(ctx) {
			if event.ShopID == "" {
				continue
			}
			data, err := encodeEvent(event)
			if err != nil {
				log.Println("bridge encode:", err)
				continue
			}
			hub.Broadcast(event.ShopID, data)
		}
	}()
}
