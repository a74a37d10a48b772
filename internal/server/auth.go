package server

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/blackbirdsmud/blackbirds/internal/chargen"
	"github.com/blackbirdsmud/blackbirds/internal/color"
	"github.com/blackbirdsmud/blackbirds/internal/database"
	"github.com/blackbirdsmud/blackbirds/internal/display"
	"github.com/blackbirdsmud/blackbirds/internal/logger"
)

// AuthResult carries the authenticated account and selected character
// out of the login flow.
type AuthResult struct {
	Account   *database.Account
	Character *database.Character
}

// handleAuth runs the login/registration flow for a new connection.
func (s *Server) handleAuth(client Client) (*AuthResult, error) {
	client.WriteLine("")
	client.WriteLine(display.Header(s.cfg.Game.Name))
	client.WriteLine("")
	client.WriteLine("  " + color.ACyan + "[L]" + color.Reset + " Login")
	client.WriteLine("  " + color.ACyan + "[R]" + color.Reset + " Register")
	client.WriteLine("")
	client.WriteLine("Enter choice: ")

	choice, err := client.ReadLine()
	if err != nil {
		return nil, errors.New("connection closed")
	}

	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "l", "login":
		return s.handleLogin(client)
	case "r", "register":
		return s.handleRegister(client)
	default:
		client.WriteLine("Invalid choice. Disconnecting.")
		return nil, errors.New("invalid choice")
	}
}

// handleLogin validates credentials and hands off to character
// selection.
func (s *Server) handleLogin(client Client) (*AuthResult, error) {
	client.WriteLine("")
	client.WriteLine("--- Login ---")

	ipAddress := getIPFromAddr(client.RemoteAddr())

	client.WriteLine("Username: ")
	username, err := client.ReadLine()
	if err != nil {
		return nil, errors.New("connection closed")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		client.WriteLine("Username cannot be empty.")
		return nil, errors.New("empty username")
	}

	client.WriteLine("Password: ")
	password, err := client.ReadLine()
	if err != nil {
		return nil, errors.New("connection closed")
	}

	account, err := s.db.ValidateLogin(username, password, ipAddress)
	if err != nil {
		if errors.Is(err, database.ErrAccountBanned) {
			logger.Info("login attempt on banned account",
				"username", username, "ip", ipAddress, "event", "login_banned")
			client.WriteLine("")
			client.WriteLine("*** YOUR ACCOUNT HAS BEEN BANNED ***")
			client.WriteLine("Contact an administrator if you believe this is an error.")
			return nil, errors.New("account banned")
		}
		if errors.Is(err, database.ErrInvalidCredentials) {
			logger.Info("failed login attempt",
				"username", username, "ip", ipAddress, "event", "login_failed")
			client.WriteLine("Invalid username or password.")
			return nil, errors.New("invalid credentials")
		}
		client.WriteLine("An error occurred. Please try again.")
		return nil, err
	}

	logger.Info("successful login",
		"username", account.Username, "account_id", account.ID,
		"ip", ipAddress, "event", "login_success")

	client.WriteLine("")
	client.WriteLine(fmt.Sprintf("Welcome back, %s.", account.Username))

	record, err := s.handleCharacterSelection(client, account)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: account, Character: record}, nil
}

// handleRegister creates a new account and goes straight to character
// creation.
func (s *Server) handleRegister(client Client) (*AuthResult, error) {
	client.WriteLine("")
	client.WriteLine("--- Register ---")

	client.WriteLine("Choose a username: ")
	username, err := client.ReadLine()
	if err != nil {
		return nil, errors.New("connection closed")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		client.WriteLine("Username cannot be empty.")
		return nil, errors.New("empty username")
	}
	if len(username) < 3 {
		client.WriteLine("Username must be at least 3 characters.")
		return nil, errors.New("username too short")
	}
	if len(username) > 20 {
		client.WriteLine("Username must be 20 characters or less.")
		return nil, errors.New("username too long")
	}

	exists, err := s.db.AccountExists(username)
	if err != nil {
		client.WriteLine("An error occurred. Please try again.")
		return nil, err
	}
	if exists {
		client.WriteLine("That username is already taken.")
		return nil, errors.New("username taken")
	}

	pwConfig := s.cfg.Password
	client.WriteLine(fmt.Sprintf("Choose a password (%s): ", pwConfig.GetRequirementsText()))
	password, err := client.ReadLine()
	if err != nil {
		return nil, errors.New("connection closed")
	}
	if validationErr := pwConfig.ValidatePassword(password); validationErr != "" {
		client.WriteLine(validationErr)
		return nil, errors.New("password requirements not met")
	}

	client.WriteLine("Confirm password: ")
	confirm, err := client.ReadLine()
	if err != nil {
		return nil, errors.New("connection closed")
	}
	if password != confirm {
		client.WriteLine("Passwords do not match.")
		return nil, errors.New("password mismatch")
	}

	ipAddress := getIPFromAddr(client.RemoteAddr())
	account, err := s.db.CreateAccount(username, password)
	if err != nil {
		if errors.Is(err, database.ErrAccountExists) {
			client.WriteLine("That username is already taken.")
			return nil, errors.New("username taken")
		}
		client.WriteLine("An error occurred. Please try again.")
		return nil, err
	}

	logger.Info("account registered",
		"username", account.Username, "account_id", account.ID,
		"ip", ipAddress, "event", "account_register")

	client.WriteLine("")
	client.WriteLine(fmt.Sprintf("Account created. Welcome, %s.", account.Username))

	record, err := s.handleCharacterCreation(client, account)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: account, Character: record}, nil
}

// handleCharacterSelection lists the account's characters and lets the
// player pick one or make a new one.
func (s *Server) handleCharacterSelection(client Client, account *database.Account) (*database.Character, error) {
	characters, err := s.db.GetCharactersByAccount(account.ID)
	if err != nil {
		client.WriteLine("An error occurred. Please try again.")
		return nil, err
	}

	if len(characters) == 0 {
		return s.handleCharacterCreation(client, account)
	}

	client.WriteLine("")
	client.WriteLine("Your characters:")
	for i, c := range characters {
		name := c.Name
		if c.Surname != "" {
			name += " " + c.Surname
		}
		client.WriteLine(fmt.Sprintf("  %s[%d]%s %s", color.ACyan, i+1, color.Reset, name))
	}
	client.WriteLine("  " + color.ACyan + "[N]" + color.Reset + " New character")
	client.WriteLine("")
	client.WriteLine("Enter choice: ")

	choice, err := client.ReadLine()
	if err != nil {
		return nil, errors.New("connection closed")
	}
	choice = strings.ToLower(strings.TrimSpace(choice))

	if choice == "n" || choice == "new" {
		return s.handleCharacterCreation(client, account)
	}

	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(characters) {
		client.WriteLine("Invalid choice. Disconnecting.")
		return nil, errors.New("invalid character choice")
	}
	return characters[index-1], nil
}

// handleCharacterCreation asks for a name and creates the character
// record. Everything else about the character is decided in-game, in
// the generation rooms.
func (s *Server) handleCharacterCreation(client Client, account *database.Account) (*database.Character, error) {
	client.WriteLine("")
	client.WriteLine("--- New Character ---")

	chargenRoom := "chargen"
	if room := s.gameWorld.ChargenRoom(); room != nil {
		chargenRoom = room.ID
	}

	for attempts := 0; attempts < 3; attempts++ {
		client.WriteLine("Name your character: ")
		name, err := client.ReadLine()
		if err != nil {
			return nil, errors.New("connection closed")
		}
		name = strings.TrimSpace(name)

		ok, reason := chargen.ValidateName(name, false, s.db)
		if !ok {
			client.WriteLine(reason)
			continue
		}
		name = chargen.CapitalizePlain(name)

		record, err := s.db.CreateCharacter(account.ID, name, chargenRoom)
		if err != nil {
			if errors.Is(err, database.ErrNameTaken) {
				client.WriteLine("Sorry, that name is taken.")
				continue
			}
			client.WriteLine("An error occurred. Please try again.")
			return nil, err
		}

		logger.Info("character created",
			"character", record.Name, "account_id", account.ID, "event", "character_create")
		return record, nil
	}

	client.WriteLine("Too many attempts. Disconnecting.")
	return nil, errors.New("character creation failed")
}

// getIPFromAddr extracts the IP address from an ip:port address string.
func getIPFromAddr(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
