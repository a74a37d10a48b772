package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/blackbirdsmud/blackbirds/internal/logger"
)

// bcrypt cost factor (12 is a good balance of security and performance)
const bcryptCost = 12

// ErrAccountNotFound is returned when an account lookup fails.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when trying to create a duplicate account.
var ErrAccountExists = errors.New("account already exists")

// ErrInvalidCredentials is returned when login credentials are incorrect.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrAccountBanned is returned when a banned account tries to login.
var ErrAccountBanned = errors.New("account is banned")

// Account represents a player account.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
	LastIP       string
	Banned       bool
	IsAdmin      bool
}

const accountColumns = "id, username, password_hash, created_at, last_login, last_ip, banned, is_admin"

// CreateAccount creates a new account with the given username and password.
// The password is hashed with bcrypt before storage.
func (d *Database) CreateAccount(username, password string) (*Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if len(password) < 4 {
		return nil, errors.New("password must be at least 4 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := d.insert(
		"INSERT INTO accounts (username, password_hash) VALUES (?, ?)",
		"id",
		username, string(hash),
	)
	if err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &Account{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}, nil
}

// ValidateLogin checks if the username and password are correct.
// Returns the account if valid, or ErrInvalidCredentials if not.
// The ipAddress parameter is used to log the connection IP.
func (d *Database) ValidateLogin(username, password, ipAddress string) (*Account, error) {
	account, err := d.GetAccountByUsername(username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if account.Banned {
		return nil, ErrAccountBanned
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Update last login time and IP
	if err := d.UpdateLastLoginAndIP(account.ID, ipAddress); err != nil {
		// Log but don't fail the login
		logger.Warningf("failed to update last login for %s: %v", account.Username, err)
	}

	return account, nil
}

// GetAccountByUsername retrieves an account by username (case-insensitive).
func (d *Database) GetAccountByUsername(username string) (*Account, error) {
	row := d.db.QueryRow(
		d.qb.Build("SELECT "+accountColumns+" FROM accounts WHERE username = ?"),
		username,
	)

	account, err := scanAccountRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetAccountByID retrieves an account by ID.
func (d *Database) GetAccountByID(accountID int64) (*Account, error) {
	row := d.db.QueryRow(
		d.qb.Build("SELECT "+accountColumns+" FROM accounts WHERE id = ?"),
		accountID,
	)

	account, err := scanAccountRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// UpdateLastLoginAndIP updates the last_login timestamp and IP address for an account.
func (d *Database) UpdateLastLoginAndIP(accountID int64, ipAddress string) error {
	_, err := d.db.Exec(
		d.qb.Build("UPDATE accounts SET last_login = CURRENT_TIMESTAMP, last_ip = ? WHERE id = ?"),
		ipAddress, accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update last login and IP: %w", err)
	}
	return nil
}

// BanAccount sets the banned flag for an account.
func (d *Database) BanAccount(accountID int64) error {
	_, err := d.db.Exec(
		d.qb.Build("UPDATE accounts SET banned = 1 WHERE id = ?"),
		accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to ban account: %w", err)
	}
	return nil
}

// UnbanAccount clears the banned flag for an account.
func (d *Database) UnbanAccount(accountID int64) error {
	_, err := d.db.Exec(
		d.qb.Build("UPDATE accounts SET banned = 0 WHERE id = ?"),
		accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to unban account: %w", err)
	}
	return nil
}

// SetAdmin sets or removes admin status for an account.
func (d *Database) SetAdmin(accountID int64, isAdmin bool) error {
	adminValue := 0
	if isAdmin {
		adminValue = 1
	}
	_, err := d.db.Exec(
		d.qb.Build("UPDATE accounts SET is_admin = ? WHERE id = ?"),
		adminValue, accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to set admin status: %w", err)
	}
	return nil
}

// ChangePassword updates the password for an account.
func (d *Database) ChangePassword(accountID int64, newPassword string) error {
	if len(newPassword) < 4 {
		return errors.New("password must be at least 4 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = d.db.Exec(
		d.qb.Build("UPDATE accounts SET password_hash = ? WHERE id = ?"),
		string(hash), accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// AccountExists checks if an account with the given username exists.
func (d *Database) AccountExists(username string) (bool, error) {
	var count int
	err := d.db.QueryRow(
		d.qb.Build("SELECT COUNT(*) FROM accounts WHERE username = ?"),
		username,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return count > 0, nil
}

// AccountNames returns every account username, sorted.
func (d *Database) AccountNames() ([]string, error) {
	rows, err := d.db.Query("SELECT username FROM accounts")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan account name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	sort.Strings(names)
	return names, nil
}

// UpdateAccounts re-normalizes every stored account. Usernames saved
// with surrounding whitespace by older builds are trimmed in place.
func (d *Database) UpdateAccounts() error {
	rows, err := d.db.Query("SELECT id, username FROM accounts")
	if err != nil {
		return fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	type fix struct {
		id   int64
		name string
	}
	var fixes []fix
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("failed to scan account: %w", err)
		}
		if trimmed := strings.TrimSpace(name); trimmed != name {
			fixes = append(fixes, fix{id: id, name: trimmed})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating accounts: %w", err)
	}

	for _, f := range fixes {
		_, err := d.db.Exec(
			d.qb.Build("UPDATE accounts SET username = ? WHERE id = ?"),
			f.name, f.id,
		)
		if err != nil {
			return fmt.Errorf("failed to normalize account %d: %w", f.id, err)
		}
	}
	return nil
}

func scanAccountRow(row *sql.Row) (*Account, error) {
	var account Account
	var lastLogin sql.NullTime
	var lastIP sql.NullString
	var banned, isAdmin int

	err := row.Scan(&account.ID, &account.Username, &account.PasswordHash,
		&account.CreatedAt, &lastLogin, &lastIP, &banned, &isAdmin)
	if err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		account.LastLogin = &lastLogin.Time
	}
	if lastIP.Valid {
		account.LastIP = lastIP.String
	}
	account.Banned = banned != 0
	account.IsAdmin = isAdmin != 0

	return &account, nil
}
