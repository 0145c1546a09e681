package websocket

import (
	"encoding/json"

	"foodreview/internal/microservices/http-api/models"
)

// Message protocol: the server only pushes, clients never send payloads.

type MessageType string

const (
	TypeSnapshot MessageType = "snapshot" // first frame after subscribing
	TypeUpdate   MessageType = "update"   // a committed change
)

type Message struct {
	Type  MessageType        `json:"type"`
	Event models.ReviewEvent `json:"event"`
}

func encode(msgType MessageType, ev models.ReviewEvent) ([]byte, error) {
	return json.Marshal(Message{Type: msgType, Event: ev})
}
