package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/acadmatch/academic-matchmaker/models"
)

// Event types
const (
	EventChatMessage  = "chat_message"
	EventChatUpdate   = "chat_update"
	EventNotification = "notification"
	EventPostUpdate   = "post_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks every connected client and which user it belongs to, so chat
// and notification events can be delivered to one party instead of
// broadcast to the room.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> user id
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection for the given user.
func RegisterClient(conn *websocket.Conn, userID string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = userID
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// PushChatMessage delivers a new message to both chat participants.
func PushChatMessage(msg models.Message, participants ...string) {
	sendTo(Message{Event: EventChatMessage, Data: msg}, participants...)
}

// PushChatUpdate delivers a chat summary change (last message, pin).
func PushChatUpdate(chat models.Chat) {
	sendTo(Message{Event: EventChatUpdate, Data: chat}, chat.ParticipantA, chat.ParticipantB)
}

// PushNotification delivers a notification to its recipient only.
func PushNotification(notif models.Notification) {
	sendTo(Message{Event: EventNotification, Data: notif}, notif.RecipientID)
}

// BroadcastPostUpdate fans a feed change out to every connected client.
func BroadcastPostUpdate(post models.Post) {
	broadcast(Message{Event: EventPostUpdate, Data: post})
}

func sendTo(msg Message, userIDs ...string) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	targets := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		targets[id] = true
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn, userID := range hub.clients {
		if !targets[userID] {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s event to user %s: %v", msg.Event, userID, err)
		}
	}
}

func broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn, userID := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s event to user %s: %v", msg.Event, userID, err)
		}
	}
}
