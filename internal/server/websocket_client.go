package server

import (
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketClient wraps a WebSocket connection for browser-based play.
type WebSocketClient struct {
	conn    *websocket.Conn
	readBuf []string   // lines queued when one message held several
	mu      sync.Mutex // protects readBuf
	writeMu sync.Mutex // serializes writes; gorilla allows one writer
}

// NewWebSocketClient creates a new WebSocketClient from a WebSocket connection.
func NewWebSocketClient(conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		conn:    conn,
		readBuf: make([]string, 0),
	}
}

// ReadLine reads a line from the WebSocket connection (blocking). A
// message containing multiple lines is buffered and drained one line at
// a time.
func (c *WebSocketClient) ReadLine() (string, error) {
	c.mu.Lock()
	if len(c.readBuf) > 0 {
		line := c.readBuf[0]
		c.readBuf = c.readBuf[1:]
		c.mu.Unlock()
		return line, nil
	}
	c.mu.Unlock()

	_, message, err := c.conn.ReadMessage()
	if err != nil {
		return "", err
	}

	lines := strings.Split(string(message), "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			filtered = append(filtered, trimmed)
		}
	}

	if len(filtered) == 0 {
		// Empty message, try again
		return c.ReadLine()
	}

	c.mu.Lock()
	if len(filtered) > 1 {
		c.readBuf = append(c.readBuf, filtered[1:]...)
	}
	c.mu.Unlock()

	return filtered[0], nil
}

// WriteLine writes a message to the WebSocket client. The message is
// self-contained, so no line ending is added.
func (c *WebSocketClient) WriteLine(message string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// Write writes raw bytes to the WebSocket client as a text message.
func (c *WebSocketClient) Write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close closes the WebSocket connection.
func (c *WebSocketClient) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote address as a string.
func (c *WebSocketClient) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
