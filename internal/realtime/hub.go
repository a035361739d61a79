// Package realtime fans newly created messages out to connected clients of
// the same group. Delivery is best effort: there is no acknowledgment, no
// replay of missed events and no ordering guarantee relative to the persisted
// message list, which stays the source of truth.
package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/tsukihara/groupboard-api/internal/dto"
	"github.com/tsukihara/groupboard-api/internal/models"
)

// EventMessageNew is the event name carried by message broadcasts.
const EventMessageNew = "message:new"

const broadcastBuffer = 64

// Event is the wire envelope for hub broadcasts.
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data"`
}

type broadcastJob struct {
	groupID uint64
	payload []byte
}

// Hub tracks connected clients per group channel and fans broadcasts out to
// them. All room state is owned by the Run goroutine; producers only touch
// the channels.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastJob
	rooms      map[uint64]map[*Client]struct{}
}

// NewHub creates a new Hub. Call Run before registering clients.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastJob, broadcastBuffer),
		rooms:      make(map[uint64]map[*Client]struct{}),
	}
}

// Run owns the room state until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			room, ok := h.rooms[client.groupID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.groupID] = room
			}
			room[client] = struct{}{}

		case client := <-h.unregister:
			h.drop(client)

		case job := <-h.broadcast:
			for client := range h.rooms[job.groupID] {
				select {
				case client.send <- job.payload:
				default:
					// Slow client: drop it rather than stall the hub.
					h.drop(client)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

// Register subscribes a client to its group channel.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client. Safe to call for an already-removed client.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast enqueues a payload for every client on the group's channel.
// Never blocks: if the queue is full the event is dropped.
func (h *Hub) Broadcast(groupID uint64, payload []byte) {
	select {
	case h.broadcast <- broadcastJob{groupID: groupID, payload: payload}:
	default:
		log.Println("realtime: broadcast queue full, dropping event")
	}
}

// MessageCreated implements services.Notifier. A broadcast with zero
// listeners is not an error, and a failed broadcast never surfaces to the
// write path that produced the message.
func (h *Hub) MessageCreated(groupID uint64, message models.Message) {
	payload, err := json.Marshal(Event{
		Name: EventMessageNew,
		Data: dto.ToMessageDTO(message),
	})
	if err != nil {
		log.Printf("realtime: failed to encode message event: %v", err)
		return
	}

	h.Broadcast(groupID, payload)
}

func (h *Hub) drop(client *Client) {
	room, ok := h.rooms[client.groupID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}

	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.groupID)
	}
}
