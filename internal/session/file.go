// Copyright (c) 2025 @AmarnathCJD

package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"errors"
)

const defaultPassphrase = "1234567890123456"

type genericFileSessionLoader struct {
	path       string
	lastEdited time.Time
	cached     *Session
	key        string
}

var _ Loader = (*genericFileSessionLoader)(nil)

// NewFromFile returns a Loader backed by an encrypted JSON file at path. The
// passphrase protects the stored auth key; an empty passphrase selects a
// well-known default, which only obfuscates.
func NewFromFile(path string, passphrase string) Loader {
	if passphrase == "" {
		passphrase = defaultPassphrase
	}

	return &genericFileSessionLoader{path: path, key: passphrase}
}

func (l *genericFileSessionLoader) Path() string {
	return l.path
}

func (l *genericFileSessionLoader) Load() (*Session, error) {
	info, err := os.Stat(l.path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %w", ErrSessionNotFound, err)
	default:
		return nil, err
	}

	if info.ModTime().Equal(l.lastEdited) && l.cached != nil {
		return l.cached, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	data, err = decodeBytes(data, l.key)
	if err != nil {
		return nil, fmt.Errorf("decrypting file: %w", err)
	}

	file := new(tokenStorageFormat)
	err = json.Unmarshal(data, file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	s, err := file.readSession()
	if err != nil {
		return nil, err
	}

	l.cached = s
	l.lastEdited = info.ModTime()

	return s, nil
}

func (l *genericFileSessionLoader) Store(s *Session) error {
	dir, _ := filepath.Split(l.path)
	if dir != "" {
		if stat, err := os.Stat(dir); err != nil {
			return fmt.Errorf("%v: directory not found", dir)
		} else if !stat.IsDir() {
			return fmt.Errorf("%v: not a directory", dir)
		}
	}
	file := new(tokenStorageFormat)
	file.writeSession(s)
	data, _ := json.Marshal(file)

	enc, err := encodeBytes(data, l.key)
	if err != nil {
		return fmt.Errorf("encrypting file: %w", err)
	}
	return os.WriteFile(l.path, enc, 0600)
}

func (l *genericFileSessionLoader) Delete() error {
	return os.Remove(l.path)
}

type tokenStorageFormat struct {
	Key        string       `json:"key"`
	TimeOffset int64        `json:"time_offset"`
	Hostname   string       `json:"hostname"`
	Port       int          `json:"port"`
	User       *storageUser `json:"user,omitempty"`
}

type storageUser struct {
	ID         int64  `json:"id"`
	AccessHash int64  `json:"access_hash"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

func (t *tokenStorageFormat) writeSession(s *Session) {
	t.Key = base64.StdEncoding.EncodeToString(s.Key)
	t.TimeOffset = s.TimeOffset
	t.Hostname = s.Hostname
	t.Port = s.Port
	if s.User != nil {
		t.User = &storageUser{
			ID:         s.User.ID,
			AccessHash: s.User.AccessHash,
			FirstName:  s.User.FirstName,
			LastName:   s.User.LastName,
			Phone:      s.User.Phone,
		}
	}
}

func (t *tokenStorageFormat) readSession() (*Session, error) {
	s := new(Session)
	var err error

	s.Key, err = base64.StdEncoding.DecodeString(t.Key)
	if err != nil {
		return nil, fmt.Errorf("invalid binary data of 'key': %w", err)
	}
	s.TimeOffset = t.TimeOffset
	s.Hostname = t.Hostname
	s.Port = t.Port
	if t.User != nil {
		s.User = &User{
			ID:         t.User.ID,
			AccessHash: t.User.AccessHash,
			FirstName:  t.User.FirstName,
			LastName:   t.User.LastName,
			Phone:      t.User.Phone,
		}
	}
	return s, nil
}

// NewInMemory returns a Loader which keeps the session in process memory only.
func NewInMemory() Loader {
	return &inMemorySessionLoader{}
}

type inMemorySessionLoader struct {
	s *Session
}

var _ Loader = (*inMemorySessionLoader)(nil)

func (l *inMemorySessionLoader) Path() string {
	return ":memory:"
}

func (l *inMemorySessionLoader) Load() (*Session, error) {
	return l.s, nil
}

func (l *inMemorySessionLoader) Store(s *Session) error {
	l.s = s
	return nil
}

func (l *inMemorySessionLoader) Delete() error {
	l.s = nil
	return nil
}
