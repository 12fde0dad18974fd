// Copyright (c) 2022 RoseLoverX

package mtclient

import (
	"github.com/pkg/errors"
)

// maxMigrateHops bounds the redirect-driven reconnect loop. Redirects are
// expected routing information, but a cycling server must not hang callers.
const maxMigrateHops = 5

// Invoke sends the request through the sender and blocks until its result
// has been recorded on the request value. Only the request types defined in
// this package can be invoked.
func (c *Client) Invoke(request Request) error {
	if request == nil {
		return errors.New("you can only invoke requests defined by the protocol schema")
	}
	if c.sender == nil {
		return errors.New("not connected: call Connect first")
	}
	if len(c.session.Key) == 0 {
		return errors.New("no auth key: a request may only be sent on an authenticated connection")
	}

	if err := c.sender.Send(request); err != nil {
		return errors.Wrapf(err, "sending %s", request.requestName())
	}
	if err := c.sender.Receive(request); err != nil {
		return errors.Wrapf(err, "receiving %s", request.requestName())
	}
	return nil
}

// invokeWithMigrate re-issues the request after following data-center
// redirects, reconnecting (and re-keying) against the named data center on
// each hop.
func (c *Client) invokeWithMigrate(request Request) error {
	for hop := 0; hop < maxMigrateHops; hop++ {
		err := c.Invoke(request)
		dcErr, ok := asInvalidDC(err)
		if !ok {
			return err
		}

		c.Log.Infof("request %s redirected to DC %d", request.requestName(), dcErr.NewDC)
		if err := c.ReconnectToDC(dcErr.NewDC); err != nil {
			return errors.Wrap(err, "following DC redirect")
		}
	}
	return errors.Errorf("request still redirected after %d DC hops", maxMigrateHops)
}
