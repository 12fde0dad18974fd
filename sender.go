// Copyright (c) 2022 RoseLoverX

package mtclient

import (
	"github.com/roseloverx/mtclient/internal/session"
	"github.com/roseloverx/mtclient/internal/transport"
)

// The wire-level collaborators. Framing, encryption and request multiplexing
// live behind these interfaces; the client only drives them.

// UpdateHandler receives unsolicited inbound updates from the sender's
// background listener.
type UpdateHandler func(update any)

// Sender carries requests over an established transport. Send writes the
// request, Receive blocks until the matching response arrives and records it
// on the request value (or returns the server's error, built with
// ParseRPCError).
type Sender interface {
	Send(Request) error
	Receive(Request) error
	SetListenForUpdates(bool)
	AddUpdateHandler(UpdateHandler)
	RemoveUpdateHandler(UpdateHandler)
	Disconnect() error
}

// SenderFactory builds a fresh Sender against the current transport and
// session. Called on every successful (re)connect.
type SenderFactory func(transport.Conn, *session.Session) (Sender, error)

// Authenticator performs the cryptographic handshake that derives a new auth
// key and clock offset against the data center behind conn.
type Authenticator interface {
	Negotiate(conn transport.Conn) (authKey []byte, timeOffset int64, err error)
}
