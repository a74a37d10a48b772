package server

// Client abstracts the connection layer so the session loop can treat
// telnet and WebSocket connections the same way.
type Client interface {
	// ReadLine blocks until a complete line is received (without newline).
	ReadLine() (string, error)

	// WriteLine sends a line to the client. For telnet this appends a
	// line ending; for WebSocket the message is self-contained.
	WriteLine(message string) error

	// Write sends raw bytes to the client.
	Write(data []byte) error

	// Close closes the connection.
	Close() error

	// RemoteAddr returns the client's address for logging.
	RemoteAddr() string
}
