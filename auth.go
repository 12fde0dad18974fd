// Copyright (c) 2022 RoseLoverX

package mtclient

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/roseloverx/mtclient/internal/session"
)

// IsAuthorized reports whether the session holds a signed-in user. This is a
// local check only; it does not reflect server-side revocation.
func (c *Client) IsAuthorized() bool {
	return c.session.Authorized()
}

// SendCodeRequest asks the service to deliver a verification code to the
// phone number, following data-center redirects until the request lands on
// the account's home data center. The returned code-correlation hash is kept
// on the client for the matching SignIn call.
func (c *Client) SendCodeRequest(phoneNumber string) error {
	request := &AuthSendCode{
		PhoneNumber: phoneNumber,
		APIID:       c.config.AppID,
		APIHash:     c.config.AppHash,
	}
	if err := c.invokeWithMigrate(request); err != nil {
		return errors.Wrap(err, "requesting verification code")
	}

	if request.Result != nil {
		c.phoneCodeHashes[phoneNumber] = request.Result.PhoneCodeHash
	}
	return nil
}

// SignIn completes the authorization of a phone number with the code the
// user received. A wrong or expired code is a recoverable outcome reported
// as ok=false, so the caller can re-prompt; any other server error is
// returned. SendCodeRequest must have been called for the same number on
// this client instance first.
func (c *Client) SignIn(phoneNumber, code string) (bool, error) {
	hash, ok := c.phoneCodeHashes[phoneNumber]
	if !ok {
		return false, errors.New("please make sure you have called SendCodeRequest first")
	}

	request := &AuthSignIn{
		PhoneNumber:   phoneNumber,
		PhoneCodeHash: hash,
		PhoneCode:     code,
	}
	if err := c.Invoke(request); err != nil {
		if rpcErr, isRPC := asRPCError(err); isRPC && strings.HasPrefix(rpcErr.Message, "PHONE_CODE_") {
			c.Log.Warnf("sign in failed: %v", rpcErr)
			return false, nil
		}
		return false, err
	}

	if request.Result == nil || request.Result.User == nil {
		return false, errors.New("sign in succeeded but no user was returned")
	}

	user := request.Result.User
	c.session.User = &session.User{
		ID:         user.ID,
		AccessHash: user.AccessHash,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
	}
	if err := c.storage.Store(c.session); err != nil {
		return false, errors.Wrap(err, "saving session")
	}

	// Now that we're authorized, we can listen for incoming updates
	c.sender.SetListenForUpdates(true)

	return true, nil
}

// LogOut clears the signed-in user and every pending code-correlation hash.
func (c *Client) LogOut() error {
	c.phoneCodeHashes = make(map[string]string)
	if c.session.User == nil {
		return nil
	}
	c.session.User = nil
	return errors.Wrap(c.storage.Store(c.session), "saving session")
}
