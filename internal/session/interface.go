// Copyright (c) 2022 RoseLoverX

package session

import "errors"

// Loader is the interface which allows you to access sessions from different
// storages (like filesystem, database, s3 storage, etc.)
type Loader interface {
	Load() (*Session, error)
	Store(*Session) error
	Path() string
	Delete() error
}

// Session is the durable state of one signed-in client: the auth key bound to
// a specific data center, the clock offset negotiated with it, the address of
// that data center and, after sign in, the authorized user.
type Session struct {
	Key        []byte
	TimeOffset int64
	Hostname   string
	Port       int
	User       *User
}

// User is the authenticated-user identity stored alongside the auth key.
type User struct {
	ID         int64
	AccessHash int64
	FirstName  string
	LastName   string
	Phone      string
}

// Authorized reports whether the session carries a signed-in user.
func (s *Session) Authorized() bool {
	return s != nil && s.User != nil
}

var ErrSessionNotFound = errors.New("session not found")
