package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRegisterAndVerify(t *testing.T) {
	s := newTestStore(t)

	if err := s.Register("alice", "s3cret"); err != nil {
		t.Fatal(err)
	}
	if !s.Verify("alice", "s3cret") {
		t.Error("valid credentials rejected")
	}
	if s.Verify("alice", "wrong") {
		t.Error("wrong password accepted")
	}
	if s.Verify("bob", "s3cret") {
		t.Error("unknown user accepted")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	if err := s.Register("alice", "one"); err != nil {
		t.Fatal(err)
	}
	if err := s.Register("alice", "two"); !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
	// original password still valid
	if !s.Verify("alice", "one") {
		t.Error("original password lost on duplicate registration")
	}
}

func TestPasswordsStoredHashed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Register("alice", "plaintext-password"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "plaintext-password") {
		t.Error("password stored in plain text")
	}
}

func TestCorruptFileDoesNotLockOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}

	if s.Verify("anyone", "anything") {
		t.Error("corrupt file should verify nobody")
	}
	if err := s.Register("alice", "pw"); err != nil {
		t.Errorf("registration should recover from a corrupt file: %v", err)
	}
	if !s.Verify("alice", "pw") {
		t.Error("registration after recovery did not stick")
	}
}

func TestNewStore_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if _, err := NewStore(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("users file not created: %v", err)
	}
}
