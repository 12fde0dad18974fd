// Copyright (c) 2022 RoseLoverX

package mtclient

import (
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"

	"github.com/roseloverx/mtclient/internal/history"
	"github.com/roseloverx/mtclient/internal/session"
	"github.com/roseloverx/mtclient/internal/transport"
	"github.com/roseloverx/mtclient/internal/utils"
)

// Client is the main struct of the library. It owns the session, the
// transport and the sender, and exposes the feature surface on top of them.
type Client struct {
	config  *ClientConfig
	storage session.Loader
	session *session.Session

	conn   transport.Conn
	sender Sender

	dcOptions       []DcOption
	phoneCodeHashes map[string]string

	history *history.Store
	Log     *utils.Logger
}

// ClientConfig is the configuration struct for the client.
type ClientConfig struct {
	// Path to session file, default: ./session.dat
	SessionFile string
	// Passphrase protecting the session file on disk
	SessionPassphrase string
	// Alternative session storage; overrides SessionFile when set
	SessionStorage session.Loader
	// Telegram app id
	AppID int32
	// Telegram app hash
	AppHash string
	// Device model, default: runtime.GOOS + " " + runtime.GOARCH
	DeviceModel string
	// System version
	SystemVersion string
	// App version
	AppVersion string
	// Language code sent on connection init, default: en
	LangCode string

	// Handshake collaborator deriving auth keys. Required.
	Authenticator Authenticator
	// Builds the wire-level sender on every (re)connect. Required.
	NewSender SenderFactory
	// Opens the byte-stream to a data center, default: plain TCP
	Dialer transport.Dialer
	// Optional markup parser used by SendMessage
	EntityParser EntityParser

	// Path to the SQLite message-history database; empty disables history
	HistoryFile string
	// Set log level (debug, info, warn, error, disable), default: info
	LogLevel string
}

// NewClient loads (or creates) the session and prepares a client. No network
// traffic happens until Connect.
func NewClient(c ClientConfig) (*Client, error) {
	if c.AppID == 0 || c.AppHash == "" {
		return nil, errors.New("your API ID or Hash cannot be empty or None")
	}
	if c.Authenticator == nil {
		return nil, errors.New("an Authenticator is required")
	}
	if c.NewSender == nil {
		return nil, errors.New("a SenderFactory is required")
	}
	if c.Dialer == nil {
		c.Dialer = transport.DialTCP
	}

	storage := c.SessionStorage
	if storage == nil {
		c.SessionFile = getStr(c.SessionFile, filepath.Join(workDirectory(), "session.dat"))
		storage = session.NewFromFile(c.SessionFile, c.SessionPassphrase)
	}

	s, err := storage.Load()
	if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		return nil, errors.Wrap(err, "loading session")
	}
	if s == nil {
		s = &session.Session{
			Hostname: DefaultServerAddress,
			Port:     DefaultServerPort,
		}
	}

	client := &Client{
		config:          &c,
		storage:         storage,
		session:         s,
		phoneCodeHashes: make(map[string]string),
		Log:             utils.NewLogger("MTClient").SetLevel(getStr(c.LogLevel, LogInfo)),
	}
	client.config.DeviceModel = getStr(c.DeviceModel, runtime.GOOS+" "+runtime.GOARCH)
	client.config.SystemVersion = getStr(c.SystemVersion, runtime.GOOS)
	client.config.AppVersion = getStr(c.AppVersion, Version)
	client.config.LangCode = getStr(c.LangCode, "en")

	if c.HistoryFile != "" {
		client.history, err = history.Open(c.HistoryFile)
		if err != nil {
			return nil, errors.Wrap(err, "opening history store")
		}
	}

	return client, nil
}

// Connect dials the session's data center and performs the connection
// bootstrap: key negotiation when no auth key is present (or reauthenticate
// is set), sender construction, and the layer-tagged connection-init request
// whose config response carries the data-center options.
//
// A server-signaled error during bootstrap is an expected possibility under
// network instability: it is logged and reported as ok=false rather than
// returned. Local failures (dial, handshake, storage) are returned as errors.
func (c *Client) Connect(reauthenticate bool) (bool, error) {
	if c.conn == nil {
		conn, err := c.config.Dialer(c.session.Hostname, c.session.Port)
		if err != nil {
			return false, errors.Wrap(err, "dialing data center")
		}
		c.conn = conn
	}

	if len(c.session.Key) == 0 || reauthenticate {
		key, offset, err := c.config.Authenticator.Negotiate(c.conn)
		if err != nil {
			return false, errors.Wrap(err, "negotiating auth key")
		}
		c.session.Key = key
		c.session.TimeOffset = offset
		if err := c.storage.Store(c.session); err != nil {
			return false, errors.Wrap(err, "saving session")
		}
	}

	sender, err := c.config.NewSender(c.conn, c.session)
	if err != nil {
		return false, errors.Wrap(err, "building sender")
	}
	c.sender = sender

	// First request must always be InvokeWithLayer
	req := &InvokeWithLayer{
		Layer: ApiVersion,
		Query: &InitConnection{
			APIID:         c.config.AppID,
			DeviceModel:   c.config.DeviceModel,
			SystemVersion: c.config.SystemVersion,
			AppVersion:    c.config.AppVersion,
			LangCode:      c.config.LangCode,
			Query:         &HelpGetConfig{},
		},
	}
	if err := c.Invoke(req); err != nil {
		if isRemoteError(err) {
			c.Log.Errorf("could not stabilise initial connection: %v", err)
			return false, nil
		}
		return false, errors.Wrap(err, "invoking with layer")
	}

	if req.Result != nil {
		c.dcOptions = req.Result.DCOptions
	}
	return true, nil
}

// ReconnectToDC tears the transport down and rebuilds it against the data
// center with the given id, re-keying there. Auth keys are bound to one data
// center, so the old key is never reused.
func (c *Client) ReconnectToDC(dcID int) error {
	if len(c.dcOptions) == 0 {
		return errors.New("can't reconnect: stabilise an initial connection first")
	}

	var dc *DcOption
	for i := range c.dcOptions {
		if int(c.dcOptions[i].ID) == dcID {
			dc = &c.dcOptions[i]
			break
		}
	}
	if dc == nil {
		return errors.Errorf("no data center with id %d in the connection config", dcID)
	}

	c.Log.Infof("reconnecting to DC %d (%s:%d)", dc.ID, dc.IPAddress, dc.Port)
	c.teardown()

	conn, err := c.config.Dialer(dc.IPAddress, int(dc.Port))
	if err != nil {
		return errors.Wrap(err, "dialing data center")
	}
	c.conn = conn
	c.session.Hostname = dc.IPAddress
	c.session.Port = int(dc.Port)
	if err := c.storage.Store(c.session); err != nil {
		return errors.Wrap(err, "saving session")
	}

	ok, err := c.Connect(true)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("connection bootstrap against DC %d failed", dcID)
	}
	return nil
}

// Disconnect tears down the sender and transport. Safe to call repeatedly.
func (c *Client) Disconnect() {
	c.teardown()
}

// Close disconnects and releases the history store, if any.
func (c *Client) Close() error {
	c.teardown()
	if c.history != nil {
		return c.history.Close()
	}
	return nil
}

func (c *Client) teardown() {
	if c.sender != nil {
		if err := c.sender.Disconnect(); err != nil {
			c.Log.Debugf("disconnecting sender: %v", err)
		}
		c.sender = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.Log.Debugf("closing transport: %v", err)
		}
		c.conn = nil
	}
}

// IsConnected reports whether a sender is currently built.
func (c *Client) IsConnected() bool {
	return c.sender != nil
}

// DCOptions returns the data-center set captured during the last successful
// bootstrap.
func (c *Client) DCOptions() []DcOption {
	return c.dcOptions
}

// AddUpdateHandler registers fn with the sender's background listener.
func (c *Client) AddUpdateHandler(fn UpdateHandler) {
	if c.sender != nil {
		c.sender.AddUpdateHandler(fn)
	}
}

// RemoveUpdateHandler unregisters fn from the sender's background listener.
func (c *Client) RemoveUpdateHandler(fn UpdateHandler) {
	if c.sender != nil {
		c.sender.RemoveUpdateHandler(fn)
	}
}
