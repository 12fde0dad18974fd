// Copyright (c) 2022 RoseLoverX

package mtclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roseloverx/mtclient"
	"github.com/roseloverx/mtclient/internal/session"
	"github.com/roseloverx/mtclient/internal/transport"
)

// fakeConn is a transport stand-in; the fake sender never touches it.
type fakeConn struct {
	addr   string
	port   int
	closed bool
}

func (c *fakeConn) Read(p []byte) (int, error)  { return 0, nil }
func (c *fakeConn) Write(p []byte) (int, error) { return len(p), nil }
func (c *fakeConn) Close() error                { c.closed = true; return nil }

// fakeAuthenticator hands out a fixed key and counts negotiations.
type fakeAuthenticator struct {
	calls int
}

func (a *fakeAuthenticator) Negotiate(transport.Conn) ([]byte, int64, error) {
	a.calls++
	return []byte("test-auth-key"), -2, nil
}

// scriptSender answers every received request through a single handler
// function, which records the request's result on the request value or
// returns a server error.
type scriptSender struct {
	handle       func(mtclient.Request) error
	sent         []mtclient.Request
	listening    bool
	disconnected bool
	handlers     int
}

func (s *scriptSender) Send(r mtclient.Request) error {
	s.sent = append(s.sent, r)
	return nil
}

func (s *scriptSender) Receive(r mtclient.Request) error {
	return s.handle(r)
}

func (s *scriptSender) SetListenForUpdates(on bool)                { s.listening = on }
func (s *scriptSender) AddUpdateHandler(mtclient.UpdateHandler)    { s.handlers++ }
func (s *scriptSender) RemoveUpdateHandler(mtclient.UpdateHandler) { s.handlers-- }
func (s *scriptSender) Disconnect() error                          { s.disconnected = true; return nil }

type testEnv struct {
	client  *mtclient.Client
	sender  *scriptSender
	auth    *fakeAuthenticator
	storage session.Loader
	dialed  []string
}

var testDCOptions = []mtclient.DcOption{
	{ID: 1, IPAddress: "10.0.0.1", Port: 443},
	{ID: 2, IPAddress: "10.0.0.2", Port: 443},
	{ID: 3, IPAddress: "10.0.0.3", Port: 443},
}

// answerConnect serves the connection-init request; wrap it for everything
// else a test needs.
func answerConnect(r mtclient.Request) error {
	if req, ok := r.(*mtclient.InvokeWithLayer); ok {
		req.Result = &mtclient.Config{DCOptions: testDCOptions}
	}
	return nil
}

func newTestEnv(t *testing.T, handle func(mtclient.Request) error, opts ...func(*mtclient.ClientConfig)) *testEnv {
	t.Helper()

	env := &testEnv{
		auth:    &fakeAuthenticator{},
		storage: session.NewInMemory(),
	}
	env.sender = &scriptSender{handle: handle}

	config := mtclient.ClientConfig{
		AppID:          12345,
		AppHash:        "0123456789abcdef",
		SessionStorage: env.storage,
		Authenticator:  env.auth,
		NewSender: func(transport.Conn, *session.Session) (mtclient.Sender, error) {
			return env.sender, nil
		},
		Dialer: func(address string, port int) (transport.Conn, error) {
			env.dialed = append(env.dialed, address)
			return &fakeConn{addr: address, port: port}, nil
		},
		LogLevel: "disable",
	}
	for _, opt := range opts {
		opt(&config)
	}

	client, err := mtclient.NewClient(config)
	require.NoError(t, err)
	env.client = client
	return env
}

func connect(t *testing.T, env *testEnv) {
	t.Helper()
	ok, err := env.client.Connect(false)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNewClientValidation(t *testing.T) {
	_, err := mtclient.NewClient(mtclient.ClientConfig{})
	assert.Error(t, err)

	_, err = mtclient.NewClient(mtclient.ClientConfig{AppID: 1, AppHash: "h"})
	assert.ErrorContains(t, err, "Authenticator")

	_, err = mtclient.NewClient(mtclient.ClientConfig{
		AppID:         1,
		AppHash:       "h",
		Authenticator: &fakeAuthenticator{},
	})
	assert.ErrorContains(t, err, "SenderFactory")
}

func TestConnectBootstrap(t *testing.T) {
	env := newTestEnv(t, answerConnect)

	connect(t, env)

	assert.Equal(t, 1, env.auth.calls)
	assert.Equal(t, testDCOptions, env.client.DCOptions())
	assert.True(t, env.client.IsConnected())

	// the fresh auth key must have been persisted
	s, err := env.storage.Load()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, []byte("test-auth-key"), s.Key)
	assert.EqualValues(t, -2, s.TimeOffset)
}

func TestConnectKeepsExistingKey(t *testing.T) {
	env := newTestEnv(t, answerConnect)

	connect(t, env)
	require.Equal(t, 1, env.auth.calls)

	// reconnecting without force keeps the key
	connect(t, env)
	assert.Equal(t, 1, env.auth.calls)

	// forcing re-authentication negotiates again
	ok, err := env.client.Connect(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, env.auth.calls)
}

func TestConnectRemoteErrorIsNotFatal(t *testing.T) {
	env := newTestEnv(t, func(r mtclient.Request) error {
		return mtclient.ParseRPCError(500, "INTERNAL_SERVER_ERROR")
	})

	ok, err := env.client.Connect(false)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestReconnectBeforeConnectIsUsageError(t *testing.T) {
	env := newTestEnv(t, answerConnect)
	err := env.client.ReconnectToDC(2)
	assert.ErrorContains(t, err, "initial connection")
}

func TestReconnectToUnknownDCIsUsageError(t *testing.T) {
	env := newTestEnv(t, answerConnect)
	connect(t, env)

	err := env.client.ReconnectToDC(42)
	assert.ErrorContains(t, err, "42")
}

func TestReconnectToDC(t *testing.T) {
	env := newTestEnv(t, answerConnect)
	connect(t, env)
	require.Equal(t, 1, env.auth.calls)

	err := env.client.ReconnectToDC(2)
	require.NoError(t, err)

	// dialed the named DC and re-keyed against it
	assert.Equal(t, "10.0.0.2", env.dialed[len(env.dialed)-1])
	assert.Equal(t, 2, env.auth.calls)

	s, err := env.storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2", s.Hostname)
	assert.Equal(t, 443, s.Port)
}

func TestDisconnectIsIdempotent(t *testing.T) {
	env := newTestEnv(t, answerConnect)
	connect(t, env)

	env.client.Disconnect()
	assert.False(t, env.client.IsConnected())
	assert.True(t, env.sender.disconnected)

	env.client.Disconnect()
	assert.False(t, env.client.IsConnected())
}
