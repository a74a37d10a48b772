package server

import (
	"fmt"
	"strings"

	"github.com/blackbirdsmud/blackbirds/internal/character"
	"github.com/blackbirdsmud/blackbirds/internal/chargen"
	"github.com/blackbirdsmud/blackbirds/internal/command"
	"github.com/blackbirdsmud/blackbirds/internal/database"
	"github.com/blackbirdsmud/blackbirds/internal/species"
)

// Session ties one authenticated connection to its embodied character.
type Session struct {
	server  *Server
	client  Client
	account *database.Account
	record  *database.Character
	char    *character.Character
	menu    *chargen.Menu
}

// newSession builds the runtime character from its stored record and
// places it in the world.
func (s *Server) newSession(client Client, result *AuthResult) (*Session, error) {
	char := result.Character.ToRuntime()
	char.IsAdmin = result.Account.IsAdmin
	char.SetOutput(func(text string) {
		client.WriteLine(text)
	})
	char.SetResolver(s.gameWorld)
	char.SetBroadcast(s.BroadcastToRoom)
	char.SetRenameHook(s.renameSession)

	room := s.gameWorld.Room(result.Character.RoomID)
	if room == nil {
		// The saved room no longer exists; fall back by completion state.
		if char.Species == species.None {
			room = s.gameWorld.ChargenRoom()
		} else {
			room = s.gameWorld.SpawnRoom()
		}
	}
	if room == nil {
		return nil, fmt.Errorf("no room to place character %q", char.Name)
	}

	char.SetLocation(room)
	room.OnArrive(char.Name, nil)

	return &Session{
		server:  s,
		client:  client,
		account: result.Account,
		record:  result.Character,
		char:    char,
	}, nil
}

// Run drives the session until the connection drops.
func (s *Session) Run() {
	s.char.Echof("Welcome, %s.", s.char.Name)
	s.char.Look()

	if s.char.Species == species.None {
		s.startChargen()
	}

	for {
		line, err := s.client.ReadLine()
		if err != nil {
			return
		}

		if s.menu != nil {
			s.menuInput(line)
			continue
		}
		s.dispatch(line)
	}
}

// startChargen opens the generation dialogue.
func (s *Session) startChargen() {
	flow := chargen.NewFlow(s.server.db)
	s.menu = chargen.NewMenu(s.char, flow)
	s.char.Echo(s.menu.Render())
}

// menuInput feeds one line to the generation dialogue.
func (s *Session) menuInput(line string) {
	s.menu.Input(line)
	if s.menu.Done() {
		s.menu = nil
		s.char.ErrorEcho("You step back from the shaping of yourself.")
		s.char.Look()
		return
	}
	s.char.Echo(s.menu.Render())
}

// dispatch routes one line of normal play input.
func (s *Session) dispatch(line string) {
	// Re-entry into the generation dialogue, for characters that quit
	// it unfinished.
	if strings.EqualFold(strings.TrimSpace(line), "chargen") && s.char.InChargen() {
		s.startChargen()
		return
	}

	cmd := command.ParseCommand(line)
	cmd.Execute(s.char, s.server)
}

// saveCharacter snapshots the runtime character into its record and
// persists it.
func (s *Session) saveCharacter() error {
	s.record.Snapshot(s.char)
	return s.server.db.SaveCharacter(s.record)
}
