package ws

import (
	"context"
	"sync"
	"time"
)

// Manager tracks live connections.
type Manager struct {
	mu           sync.RWMutex
	connections  map[string]*Connection
	pingInterval time.Duration
}

// NewManager builds connection manager.
func NewManager(pingInterval time.Duration) *Manager {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Manager{
		connections:  make(map[string]*Connection),
		pingInterval: pingInterval,
	}
}

// Add registers new connection.
func (m *Manager) Add(conn *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connections[conn.ID()] = conn
	activeConnections.Set(float64(len(m.connections)))
}

// Remove removes connection.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.connections, id)
	activeConnections.Set(float64(len(m.connections)))
}

// Count returns the number of live connections.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// Start begins ping loop to keep connections active.
func (m *Manager) Start(ctx context.Context) {
	ticker := time.NewTicker(m.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, conn := range m.snapshot() {
				_ = conn.Ping()
			}
		}
	}
}

// CloseAll closes every connection. Each one removes itself as its read
// pump exits.
func (m *Manager) CloseAll() {
	for _, conn := range m.snapshot() {
		conn.Close()
	}
}

func (m *Manager) snapshot() []*Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conns := make([]*Connection, 0, len(m.connections))
	for _, conn := range m.connections {
		conns = append(conns, conn)
	}
	return conns
}
