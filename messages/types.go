package messages

import "encoding/json"

// MessageType defines the type of message being sent
type MessageType string

const (
	MessageTypeStart    MessageType = "start"
	MessageTypeStarted  MessageType = "started"
	MessageTypeCommand  MessageType = "command"
	MessageTypeUpdate   MessageType = "update"
	MessageTypeRejected MessageType = "rejected"
	MessageTypeError    MessageType = "error"
	MessageTypeBye      MessageType = "bye"
)

// BaseMessage is the envelope for everything on the wire
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// InboundMessage is BaseMessage with the payload left undecoded
type InboundMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// StartMessage asks for a new game on a named layout
type StartMessage struct {
	Layout string `json:"layout"`
}

type StartedMessage struct {
	SessionID string `json:"session_id"`
	Layout    string `json:"layout"`
}

// CommandMessage carries one turn of input, e.g. "h" or ","
type CommandMessage struct {
	Input string `json:"input"`
}

// PlayerStatus is the status line shown under the map
type PlayerStatus struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	HP     int `json:"hp"`
	Damage int `json:"damage"`
	Gold   int `json:"gold"`
}

// UpdateMessage is the rendered map after a turn
type UpdateMessage struct {
	Rows     []string     `json:"rows"`
	Player   PlayerStatus `json:"player"`
	Hostiles int          `json:"hostiles"`
	Turn     int          `json:"turn"`
}

// ErrorMessage is used for both rejected turns and hard errors
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
