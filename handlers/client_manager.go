package handlers

import (
	"context"
	"log"
	"sync"

	"gridcrawl/server/messages"
)

// ClientManager tracks connected clients by session ID
type ClientManager struct {
	clients map[string]*ClientHandler
	mutex   sync.RWMutex
	active  sync.WaitGroup
}

// NewClientManager creates a new client manager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients: make(map[string]*ClientHandler),
	}
}

// AddClient adds a client to the manager
func (cm *ClientManager) AddClient(sessionID string, handler *ClientHandler) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.clients[sessionID] = handler
}

// RemoveClient removes a client from the manager
func (cm *ClientManager) RemoveClient(sessionID string) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	delete(cm.clients, sessionID)
}

func (cm *ClientManager) Count() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.clients)
}

// CloseAll says goodbye to every client and closes their connections.
// Used on server shutdown.
func (cm *ClientManager) CloseAll() {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	for id, client := range cm.clients {
		if err := client.conn.SendMessage(messages.BaseMessage{Type: messages.MessageTypeBye}); err != nil {
			log.Printf("Error saying goodbye to %s: %v", id, err)
		}
		client.conn.Close()
	}
}

// Wait blocks until every connection handler has returned or ctx is done.
func (cm *ClientManager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		cm.active.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
