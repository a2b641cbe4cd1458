package panel

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// SafeWriter serialises writes to a websocket connection.
type SafeWriter struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	timeout time.Duration
}

// NewSafeWriter wraps conn. A zero timeout means no write deadline.
func NewSafeWriter(conn *websocket.Conn, timeout time.Duration) *SafeWriter {
	return &SafeWriter{conn: conn, timeout: timeout}
}

// WriteJSON writes v as one JSON text frame.
func (w *SafeWriter) WriteJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timeout > 0 {
		_ = w.conn.SetWriteDeadline(time.Now().Add(w.timeout))
	}
	return w.conn.WriteJSON(v)
}

// WriteControl sends a control frame such as a ping.
func (w *SafeWriter) WriteControl(messageType int, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	deadline := time.Time{}
	if w.timeout > 0 {
		deadline = time.Now().Add(w.timeout)
	}
	return w.conn.WriteControl(messageType, data, deadline)
}

// Close closes the connection.
func (w *SafeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.Close()
}
