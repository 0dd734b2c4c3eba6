// Package auth implements the flat-file credential store behind the login
// gate. Passwords are stored as SHA-256 hashes in a JSON file. This is a
// session gate, not a hardened credential system.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
)

// ErrUserExists means a registration reused an existing username.
var ErrUserExists = errors.New("username already exists")

type userRecord struct {
	Password string `json:"password"`
}

// Store reads and writes the user-credential file.
type Store struct {
	path string
}

// NewStore creates a credential store backed by the given file, creating an
// empty one if the file does not exist.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.save(map[string]userRecord{}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a new user with a hashed password.
// Returns ErrUserExists if the username is taken.
func (s *Store) Register(username, password string) error {
	users, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := users[username]; ok {
		return ErrUserExists
	}
	users[username] = userRecord{Password: hashPassword(password)}
	return s.save(users)
}

// Verify reports whether the username/password pair matches a stored record.
func (s *Store) Verify(username, password string) bool {
	users, err := s.load()
	if err != nil {
		return false
	}
	rec, ok := users[username]
	if !ok {
		return false
	}
	return rec.Password == hashPassword(password)
}

func (s *Store) load() (map[string]userRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]userRecord{}, nil
		}
		return nil, err
	}
	var users map[string]userRecord
	if err := json.Unmarshal(data, &users); err != nil {
		// A corrupt file yields an empty user set rather than a lockout.
		return map[string]userRecord{}, nil
	}
	if users == nil {
		users = map[string]userRecord{}
	}
	return users, nil
}

func (s *Store) save(users map[string]userRecord) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
