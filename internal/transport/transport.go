// Copyright (c) 2024 RoseLoverX

package transport

import (
	"io"
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Conn is the byte-stream a client hands to its authenticator and sender.
// The wire framing and encryption on top of it belong to those collaborators.
type Conn interface {
	io.ReadWriteCloser
}

// Dialer opens a Conn to the given address and port.
type Dialer func(address string, port int) (Conn, error)

type tcpConn struct {
	conn    *net.TCPConn
	timeout time.Duration
}

// DialTCP opens a plain TCP connection with keepalive enabled. A timed-out
// dial is retried once after a short pause.
func DialTCP(address string, port int) (Conn, error) {
	return dialTCP(address, port, 0)
}

// DialTCPWithReadTimeout returns a Dialer whose connections apply timeout as
// a read deadline on every Read, so a silent server surfaces as a timeout
// error instead of blocking forever.
func DialTCPWithReadTimeout(timeout time.Duration) Dialer {
	return func(address string, port int) (Conn, error) {
		return dialTCP(address, port, timeout)
	}
}

func dialTCP(address string, port int, timeout time.Duration) (Conn, error) {
	host := net.JoinHostPort(address, strconv.Itoa(port))

	tcpAddr, err := net.ResolveTCPAddr("tcp", host)
	if err != nil {
		return nil, errors.Wrap(err, "resolving tcp")
	}
	conn, err := net.DialTCP("tcp", nil, tcpAddr)
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		time.Sleep(2 * time.Second)
		conn, err = net.DialTCP("tcp", nil, tcpAddr)
	}
	if err != nil {
		return nil, errors.Wrap(err, "dialing tcp")
	}

	conn.SetKeepAlive(true)

	return &tcpConn{conn: conn, timeout: timeout}, nil
}

func (t *tcpConn) Close() error {
	return t.conn.Close()
}

func (t *tcpConn) Write(b []byte) (int, error) {
	return t.conn.Write(b)
}

func (t *tcpConn) Read(b []byte) (int, error) {
	if t.timeout > 0 {
		err := t.conn.SetReadDeadline(time.Now().Add(t.timeout))
		if err != nil {
			return 0, errors.Wrap(err, "setting read deadline")
		}
	}
	return t.conn.Read(b)
}
