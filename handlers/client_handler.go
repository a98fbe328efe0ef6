package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gorilla/websocket"

	"gridcrawl/server/messages"
	"gridcrawl/server/network"
	"gridcrawl/server/services"
)

// ClientHandler manages a single client connection and its game
type ClientHandler struct {
	conn          *network.Connection
	worldService  *services.WorldService
	clientManager *ClientManager
	defaultLayout string
	sessionID     string
}

// HandleClientConnection serves one client until it quits or disconnects
func HandleClientConnection(wsConn *websocket.Conn, worldService *services.WorldService, clientManager *ClientManager, defaultLayout string) {
	clientManager.active.Add(1)
	defer clientManager.active.Done()

	conn := network.NewConnection(wsConn)
	handler := &ClientHandler{
		conn:          conn,
		worldService:  worldService,
		clientManager: clientManager,
		defaultLayout: defaultLayout,
	}
	log.Printf("New connection from %s", conn.RemoteAddr())

	writeDone := make(chan struct{})
	go func() {
		conn.WritePump()
		close(writeDone)
	}()

	conn.ReadPump(handler)
	<-writeDone

	if handler.sessionID != "" {
		worldService.EndSession(handler.sessionID)
		clientManager.RemoveClient(handler.sessionID)
		log.Printf("Session %s ended", handler.sessionID)
	}
}

// HandleMessage handles one message from the client. It returns false
// once the client has quit.
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) bool {
	var msg messages.InboundMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		h.sendError("BAD_MESSAGE", "Message is not valid JSON")
		return true
	}

	switch msg.Type {
	case messages.MessageTypeStart:
		h.handleStart(msg.Payload)
	case messages.MessageTypeCommand:
		return h.handleCommand(msg.Payload)
	default:
		log.Printf("Unknown message type: %s", msg.Type)
		h.sendError("UNKNOWN_MESSAGE_TYPE", "Unknown message type received")
	}
	return true
}

// handleStart loads a layout and starts the client's game
func (h *ClientHandler) handleStart(payload json.RawMessage) {
	if h.sessionID != "" {
		h.sendError("ALREADY_STARTED", "A game is already running on this connection")
		return
	}

	var startMsg messages.StartMessage
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &startMsg); err != nil {
			log.Printf("Error unmarshaling start message: %v", err)
			h.sendError("BAD_MESSAGE", "Invalid start payload")
			return
		}
	}
	if startMsg.Layout == "" {
		startMsg.Layout = h.defaultLayout
	}

	snap, err := h.worldService.StartSession(startMsg.Layout)
	if err != nil {
		log.Printf("Error starting session on %s: %v", startMsg.Layout, err)
		h.sendError("START_FAILED", err.Error())
		return
	}

	h.sessionID = snap.SessionID
	h.clientManager.AddClient(snap.SessionID, h)
	log.Printf("Session %s started on layout %s", snap.SessionID, startMsg.Layout)

	h.conn.SendMessage(messages.BaseMessage{
		Type: messages.MessageTypeStarted,
		Payload: messages.StartedMessage{
			SessionID: snap.SessionID,
			Layout:    startMsg.Layout,
		},
	})
	h.sendUpdate(snap)
}

// handleCommand runs one turn
func (h *ClientHandler) handleCommand(payload json.RawMessage) bool {
	if h.sessionID == "" {
		h.sendError("NOT_STARTED", "Send a start message first")
		return true
	}

	var cmdMsg messages.CommandMessage
	if err := json.Unmarshal(payload, &cmdMsg); err != nil {
		log.Printf("Error unmarshaling command message: %v", err)
		h.sendError("BAD_MESSAGE", "Invalid command payload")
		return true
	}

	// Empty input only means quit at the end of a terminal's input stream.
	if cmdMsg.Input == "" {
		h.sendRejected("UNKNOWN_COMMAND", "Empty command")
		if snap, err := h.worldService.Snapshot(h.sessionID); err == nil {
			h.sendUpdate(snap)
		}
		return true
	}

	snap, outcome, err := h.worldService.Execute(h.sessionID, cmdMsg.Input)
	switch {
	case errors.Is(err, services.ErrOutOfBounds):
		h.sendRejected("OUT_OF_BOUNDS", "You can't go that way")
	case errors.Is(err, services.ErrUnknownCommand):
		h.sendRejected("UNKNOWN_COMMAND", fmt.Sprintf("I don't know how to %s", cmdMsg.Input[:1]))
	case err != nil:
		log.Printf("Error executing command for %s: %v", h.sessionID, err)
		h.sendError("COMMAND_FAILED", err.Error())
		return true
	}

	if outcome.Quit {
		h.conn.SendMessage(messages.BaseMessage{Type: messages.MessageTypeBye})
		return false
	}

	h.sendUpdate(snap)
	return true
}

func (h *ClientHandler) sendUpdate(snap *services.Snapshot) {
	msg := messages.BaseMessage{
		Type: messages.MessageTypeUpdate,
		Payload: messages.UpdateMessage{
			Rows: snap.Rows,
			Player: messages.PlayerStatus{
				X:      snap.Player.Pos.X,
				Y:      snap.Player.Pos.Y,
				HP:     snap.Player.HP,
				Damage: snap.Player.Damage,
				Gold:   snap.Player.Gold,
			},
			Hostiles: snap.Hostiles,
			Turn:     snap.Turn,
		},
	}

	if err := h.conn.SendMessage(msg); err != nil {
		log.Printf("Error sending update: %v", err)
	}
}

func (h *ClientHandler) sendRejected(code, message string) {
	h.conn.SendMessage(messages.BaseMessage{
		Type:    messages.MessageTypeRejected,
		Payload: messages.ErrorMessage{Code: code, Message: message},
	})
}

func (h *ClientHandler) sendError(code, message string) {
	h.conn.SendMessage(messages.BaseMessage{
		Type:    messages.MessageTypeError,
		Payload: messages.ErrorMessage{Code: code, Message: message},
	})
}
