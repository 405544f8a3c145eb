package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// Event is a one-way push to a connected student, e.g. a certificate that
// finished generating after their submission response was already sent.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type userEvent struct {
	userID uuid.UUID
	event  Event
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var events = make(chan userEvent, 32)

// NotifyUser queues an event for the user's open connection. Users without a
// connection simply miss the push; everything pushed here is also readable
// over the REST API.
func NotifyUser(userID uuid.UUID, event Event) {
	select {
	case events <- userEvent{userID: userID, event: event}:
	default:
		log.Printf("Event queue full, dropping %s event for user %s", event.Type, userID)
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case ev := <-events:
			clientsMu.RLock()
			conn, ok := clients[ev.userID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(ev.event); err != nil {
				log.Printf("Error sending %s event to client %s: %v", ev.event.Type, ev.userID, err)
				conn.Close()
				clientsMu.Lock()
				delete(clients, ev.userID)
				clientsMu.Unlock()
			}
		}
	}
}
