package websocket

import (
	"log"

	"github.com/google/uuid"
)

// Conn is the slice of a websocket connection the hub needs. The fiber
// contrib connection satisfies it; tests substitute their own.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	UserID uuid.UUID
	Conn   Conn
}

// Event is pushed to a connected user when something happens to their
// requests, bids or payments.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventBidReceived     = "bid.received"
	EventBidAccepted     = "bid.accepted"
	EventBidRejected     = "bid.rejected"
	EventPaymentReleased = "payment.released"
)

type delivery struct {
	userID uuid.UUID
	event  Event
}

var clients = make(map[uuid.UUID]Conn)
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var deliveries = make(chan delivery, 256)

// RunHub owns the client table and performs every socket write itself, so
// each connection only ever has a single writer.
func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clients[client.UserID] = client.Conn
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
		case d := <-deliveries:
			conn, ok := clients[d.userID]
			if !ok {
				continue
			}
			if err := conn.WriteJSON(d.event); err != nil {
				log.Printf("Error pushing %s event to user %s: %v", d.event.Type, d.userID, err)
				delete(clients, d.userID)
				conn.Close()
			}
		}
	}
}

// Notify queues an event for the user. The hub skips users who are
// offline; when the queue is full the event is dropped instead of
// blocking the caller.
func Notify(userID uuid.UUID, event Event) {
	select {
	case deliveries <- delivery{userID: userID, event: event}:
	default:
	}
}
