// Package server accepts telnet and WebSocket connections, runs the
// login flow, and drives each connected character's session.
package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/blackbirdsmud/blackbirds/internal/character"
	"github.com/blackbirdsmud/blackbirds/internal/config"
	"github.com/blackbirdsmud/blackbirds/internal/database"
	"github.com/blackbirdsmud/blackbirds/internal/logger"
	"github.com/blackbirdsmud/blackbirds/internal/world"
)

const autoSaveInterval = 5 * time.Minute

// Server owns the listeners, the session registry, and the glue between
// connected characters, the world, and the database.
type Server struct {
	address      string
	listener     net.Listener
	gameWorld    *world.World
	db           *database.Database
	cfg          *config.ServerConfig
	sessions     map[string]*Session
	mu           sync.RWMutex
	shutdown     chan struct{}
	shutdownOnce sync.Once
	StartTime    time.Time
	connLimiter  *ConnLimiter
	httpServer   *http.Server

	reloadMu     sync.Mutex
	reloadReason string
	reloading    bool
}

// NewServer creates a server. The config may be nil, in which case
// defaults apply.
func NewServer(address string, w *world.World, db *database.Database, cfg *config.ServerConfig) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		address:     address,
		gameWorld:   w,
		db:          db,
		cfg:         cfg,
		sessions:    make(map[string]*Session),
		shutdown:    make(chan struct{}),
		StartTime:   time.Now(),
		connLimiter: NewConnLimiter(cfg.Connections),
	}
}

// Config returns the server configuration.
func (s *Server) Config() *config.ServerConfig {
	return s.cfg
}

// Start listens for telnet connections and blocks until shutdown.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener

	logger.Info("server listening", "address", s.address)

	go s.startAutoSaveTicker()

	for {
		select {
		case <-s.shutdown:
			return nil
		default:
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.shutdown:
					return nil
				default:
					logger.Error("error accepting connection", "error", err)
					continue
				}
			}
			go s.handleConnection(conn)
		}
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	remoteAddr := conn.RemoteAddr().String()
	ip := extractIP(remoteAddr)

	if !s.connLimiter.TryAcquire(ip) {
		logger.Warning("connection rejected, limit exceeded", "remote_addr", remoteAddr, "ip", ip)
		conn.Write([]byte("Too many connections. Please try again later.\r\n"))
		conn.Close()
		return
	}

	defer func() {
		s.connLimiter.Release(ip)
		conn.Close()
	}()

	s.handleClient(NewTelnetClient(conn))
}

// handleClient is the shared client handling logic for both telnet and
// WebSocket connections.
func (s *Server) handleClient(client Client) {
	logger.Info("client connected", "remote_addr", client.RemoteAddr())

	result, err := s.handleAuth(client)
	if err != nil {
		logger.Info("authentication failed", "remote_addr", client.RemoteAddr(), "error", err)
		return
	}

	session, err := s.newSession(client, result)
	if err != nil {
		logger.Error("failed to start session", "character", result.Character.Name, "error", err)
		client.WriteLine("Failed to load character. Please try again.")
		return
	}

	name := session.char.Name

	s.mu.Lock()
	if other, online := s.sessions[name]; online {
		s.mu.Unlock()
		other.client.WriteLine("Your character has been taken over by another connection.")
		other.client.Close()
		s.mu.Lock()
	}
	s.sessions[name] = session
	s.mu.Unlock()

	defer func() {
		session.saveCharacter()
		// The character may have been renamed in chargen since connect.
		current := session.char.Name
		if room := session.char.Location(); room != nil {
			room.OnLeave(current, nil)
		}
		logger.Info("client disconnected", "character", current)

		s.mu.Lock()
		if s.sessions[current] == session {
			delete(s.sessions, current)
		}
		s.mu.Unlock()
	}()

	session.Run()
}

// StartWebSocket serves the WebSocket endpoint on the given address and
// blocks until shutdown.
func (s *Server) StartWebSocket(address string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocketUpgrade)

	s.httpServer = &http.Server{Addr: address, Handler: mux}

	logger.Info("websocket server listening", "address", address)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	clientIP := getRealIP(r)

	if !s.connLimiter.TryAcquire(clientIP) {
		logger.Warning("websocket connection rejected, limit exceeded",
			"remote_addr", r.RemoteAddr, "client_ip", clientIP)
		http.Error(w, "Too many connections. Please try again later.", http.StatusTooManyRequests)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("websocket origin rejected",
					"origin", origin, "host", r.Host, "remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		s.connLimiter.Release(clientIP)
		return
	}

	go func() {
		defer func() {
			s.connLimiter.Release(clientIP)
			wsConn.Close()
		}()
		s.handleClient(NewWebSocketClient(wsConn))
	}()
}

// getRealIP extracts the client IP from an HTTP request, honoring
// X-Forwarded-For and X-Real-IP for reverse proxy setups.
func getRealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the original client.
		if ips := strings.Split(xff, ","); len(ips) > 0 {
			if clientIP := strings.TrimSpace(ips[0]); clientIP != "" {
				return clientIP
			}
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return extractIP(r.RemoteAddr)
}

// Shutdown stops the listener and disconnects every session after
// saving.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdown)
		if s.listener != nil {
			s.listener.Close()
		}
		if s.httpServer != nil {
			s.httpServer.Close()
		}

		s.mu.RLock()
		sessions := make([]*Session, 0, len(s.sessions))
		for _, session := range s.sessions {
			sessions = append(sessions, session)
		}
		s.mu.RUnlock()

		for _, session := range sessions {
			session.saveCharacter()
			session.client.WriteLine("The world fades out.")
			session.client.Close()
		}
		logger.Info("server shut down", "sessions_closed", len(sessions))
	})
}

// ReloadRequested reports whether the last shutdown was a reload, and
// the reason given.
func (s *Server) ReloadRequested() (bool, string) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()
	return s.reloading, s.reloadReason
}

// RequestReload schedules a server restart. The admin reload command
// calls this after announcing; the outer run loop picks it up once
// Start returns.
func (s *Server) RequestReload(reason string) {
	s.reloadMu.Lock()
	s.reloading = true
	s.reloadReason = reason
	s.reloadMu.Unlock()

	// Let the announcement flush before connections drop.
	go func() {
		time.Sleep(250 * time.Millisecond)
		s.Shutdown()
	}()
}

// AnnounceAll sends a message to every connected session.
func (s *Server) AnnounceAll(message string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, session := range s.sessions {
		session.char.Echo(message)
	}
}

// BroadcastToRoom delivers a message to every character in the room
// except the excluded names. Satisfies character.BroadcastFunc.
func (s *Server) BroadcastToRoom(room *world.Room, exclude []string, message string) {
	if room == nil {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
outer:
	for name, session := range s.sessions {
		if session.char.Location() != room {
			continue
		}
		for _, skip := range exclude {
			if name == skip {
				continue outer
			}
		}
		session.char.EchoPrompt(message)
	}
}

// renameSession re-keys a session after a chargen rename so that
// lookups by character name keep working.
func (s *Server) renameSession(oldName, newName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[oldName]; ok {
		delete(s.sessions, oldName)
		s.sessions[newName] = session
	}
}

// World returns the room registry.
func (s *Server) World() *world.World {
	return s.gameWorld
}

// OnlineCharacters returns every connected character.
func (s *Server) OnlineCharacters() []*character.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chars := make([]*character.Character, 0, len(s.sessions))
	for _, session := range s.sessions {
		chars = append(chars, session.char)
	}
	return chars
}

// FindCharacter returns the connected character with the given name, or
// nil. Matching is case-insensitive.
func (s *Server) FindCharacter(name string) *character.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for online, session := range s.sessions {
		if strings.EqualFold(online, name) {
			return session.char
		}
	}
	return nil
}

// AccountNames lists all persisted account names.
func (s *Server) AccountNames() ([]string, error) {
	return s.db.AccountNames()
}

// CharacterNames lists all persisted character names.
func (s *Server) CharacterNames() ([]string, error) {
	return s.db.CharacterNames()
}

// UpdateAccounts re-normalizes all persisted accounts.
func (s *Server) UpdateAccounts() error {
	return s.db.UpdateAccounts()
}

// Disconnect ends the actor's session. Output already queued on the
// actor has been written synchronously, so closing here is safe.
func (s *Server) Disconnect(actor *character.Character) {
	s.mu.RLock()
	session := s.sessions[actor.Name]
	s.mu.RUnlock()
	if session != nil {
		session.client.Close()
	}
}

// Uptime returns how long the server has been running.
func (s *Server) Uptime() time.Duration {
	return time.Since(s.StartTime)
}

func (s *Server) startAutoSaveTicker() {
	ticker := time.NewTicker(autoSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.shutdown:
			return
		case <-ticker.C:
			s.saveAllCharacters()
		}
	}
}

func (s *Server) saveAllCharacters() {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.RUnlock()

	saved := 0
	for _, session := range sessions {
		if err := session.saveCharacter(); err != nil {
			logger.Error("auto-save failed", "character", session.char.Name, "error", err)
			continue
		}
		saved++
	}
	if saved > 0 {
		logger.Debug("auto-save complete", "characters", saved)
	}
}
