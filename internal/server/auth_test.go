package server

import (
	"testing"
)

func TestRegisterCreatesAccountAndCharacter(t *testing.T) {
	s := newTestServer(t)

	client := newFakeClient(
		"r",
		"keeper",
		"Password1",
		"Password1",
		"vex",
	)

	result, err := s.handleAuth(client)
	if err != nil {
		t.Fatalf("handleAuth() failed: %v", err)
	}

	if result.Account.Username != "keeper" {
		t.Errorf("account = %q, want keeper", result.Account.Username)
	}
	if result.Character.Name != "Vex" {
		t.Errorf("character = %q, want capitalized Vex", result.Character.Name)
	}
	if result.Character.RoomID != "chargen" {
		t.Errorf("new character room = %q, want chargen", result.Character.RoomID)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	s := newTestServer(t)

	client := newFakeClient("r", "keeper", "weak")
	if _, err := s.handleAuth(client); err == nil {
		t.Error("weak password should fail registration")
	}
	if !client.sawText("Password must") {
		t.Error("client never saw the password requirement error")
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	s := newTestServer(t)

	client := newFakeClient("r", "keeper", "Password1", "Password2")
	if _, err := s.handleAuth(client); err == nil {
		t.Error("mismatched confirmation should fail registration")
	}
	if !client.sawText("Passwords do not match.") {
		t.Error("client never saw the mismatch error")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.db.CreateAccount("keeper", "Password1"); err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}

	client := newFakeClient("r", "keeper")
	if _, err := s.handleAuth(client); err == nil {
		t.Error("duplicate username should fail registration")
	}
	if !client.sawText("already taken") {
		t.Error("client never saw the taken-name error")
	}
}

func TestLoginSelectsExistingCharacter(t *testing.T) {
	s := newTestServer(t)
	account, err := s.db.CreateAccount("keeper", "Password1")
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	if _, err := s.db.CreateCharacter(account.ID, "Vex", "chargen"); err != nil {
		t.Fatalf("CreateCharacter() failed: %v", err)
	}

	client := newFakeClient("l", "keeper", "Password1", "1")
	result, err := s.handleAuth(client)
	if err != nil {
		t.Fatalf("handleAuth() failed: %v", err)
	}
	if result.Character.Name != "Vex" {
		t.Errorf("selected character = %q, want Vex", result.Character.Name)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.db.CreateAccount("keeper", "Password1"); err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}

	client := newFakeClient("l", "keeper", "wrongpass")
	if _, err := s.handleAuth(client); err == nil {
		t.Error("wrong password should fail login")
	}
	if !client.sawText("Invalid username or password.") {
		t.Error("client never saw the credentials error")
	}
}

func TestLoginBannedAccount(t *testing.T) {
	s := newTestServer(t)
	account, err := s.db.CreateAccount("keeper", "Password1")
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	if err := s.db.BanAccount(account.ID); err != nil {
		t.Fatalf("BanAccount() failed: %v", err)
	}

	client := newFakeClient("l", "keeper", "Password1")
	if _, err := s.handleAuth(client); err == nil {
		t.Error("banned account should fail login")
	}
	if !client.sawText("BANNED") {
		t.Error("client never saw the ban notice")
	}
}

func TestLoginNoCharactersGoesToCreation(t *testing.T) {
	s := newTestServer(t)
	if _, err := s.db.CreateAccount("keeper", "Password1"); err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}

	client := newFakeClient("l", "keeper", "Password1", "wren")
	result, err := s.handleAuth(client)
	if err != nil {
		t.Fatalf("handleAuth() failed: %v", err)
	}
	if result.Character.Name != "Wren" {
		t.Errorf("created character = %q, want Wren", result.Character.Name)
	}
}

func TestCharacterCreationRetriesOnBadName(t *testing.T) {
	s := newTestServer(t)
	account, err := s.db.CreateAccount("keeper", "Password1")
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	if _, err := s.db.CreateCharacter(account.ID, "Vex", "chargen"); err != nil {
		t.Fatalf("CreateCharacter() failed: %v", err)
	}

	// Taken name, too-short name, then a good one.
	client := newFakeClient("vex", "ab", "wren")
	record, err := s.handleCharacterCreation(client, account)
	if err != nil {
		t.Fatalf("handleCharacterCreation() failed: %v", err)
	}
	if record.Name != "Wren" {
		t.Errorf("character = %q, want Wren", record.Name)
	}
	if !client.sawText("taken") {
		t.Error("client never saw the taken-name error")
	}
}

func TestAuthInvalidChoice(t *testing.T) {
	s := newTestServer(t)

	client := newFakeClient("x")
	if _, err := s.handleAuth(client); err == nil {
		t.Error("invalid menu choice should fail auth")
	}
	if !client.sawText("Invalid choice.") {
		t.Error("client never saw the invalid-choice error")
	}
}
