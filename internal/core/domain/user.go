package domain

import (
	"regexp"
	"strings"
	"time"
)

// UserID is the opaque identifier of a credential record. Only the
// persistence layer mints and interprets it.
type UserID string

func (id UserID) String() string { return string(id) }

// User is a persisted credential record.
type User struct {
	ID           UserID    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the resolved caller of a protected request.
type Identity struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
}

// Identity strips the credential material from the record.
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Username: u.Username}
}

const (
	usernameMinLen = 3
	usernameMaxLen = 64
	passwordMaxLen = 72 // bcrypt ignores anything past 72 bytes
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Registration is the validated input of a new account.
type Registration struct {
	Username string
	Email    string
	Password string
}

// NormalizeUsername applies the canonical form usernames are stored and
// looked up in.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// NewRegistration trims and validates raw registration fields.
func NewRegistration(username, email, password string) (Registration, error) {
	r := Registration{
		Username: NormalizeUsername(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if n := len(r.Username); n < usernameMinLen || n > usernameMaxLen {
		return Registration{}, invalid("username must be between 3 and 64 characters")
	}
	if !usernamePattern.MatchString(r.Username) {
		return Registration{}, invalid("username may only contain letters, digits, '.', '_' and '-'")
	}
	if r.Password == "" {
		return Registration{}, invalid("password is required")
	}
	if len(r.Password) > passwordMaxLen {
		return Registration{}, invalid("password must be at most 72 bytes")
	}
	return r, nil
}
