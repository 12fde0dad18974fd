// Copyright (c) 2024 RoseLoverX

package mtclient

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RPCError is a server-signaled failure for one request.
type RPCError struct {
	Code    int32
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// InvalidDCError is the redirect signal: the account lives on another data
// center and the request must be re-issued there. It is routing information,
// not a failure.
type InvalidDCError struct {
	RPCError
	NewDC int
}

// FloodWaitError asks the client to back off for Seconds before retrying.
type FloodWaitError struct {
	RPCError
	Seconds int
}

type prefixSuffix struct {
	prefix string
	suffix string
}

// error families that carry a numeric argument inside the message
var dcMigrateErrors = []prefixSuffix{
	{"PHONE_MIGRATE_", ""},
	{"NETWORK_MIGRATE_", ""},
	{"USER_MIGRATE_", ""},
	{"FILE_MIGRATE_", ""},
	{"STATS_MIGRATE_", ""},
}

var floodWaitErrors = []prefixSuffix{
	{"FLOOD_WAIT_", ""},
	{"FLOOD_TEST_PHONE_WAIT_", ""},
}

// ParseRPCError expands a raw (code, message) pair into the richest error
// type the message denotes. Senders should build their errors through this
// so the invoker can recognize redirect signals.
func ParseRPCError(code int32, message string) error {
	base := RPCError{Code: code, Message: message}

	if arg, ok := trailingInt(message, dcMigrateErrors); ok {
		return &InvalidDCError{RPCError: base, NewDC: arg}
	}
	if arg, ok := trailingInt(message, floodWaitErrors); ok {
		return &FloodWaitError{RPCError: base, Seconds: arg}
	}
	return &base
}

func trailingInt(message string, families []prefixSuffix) (int, bool) {
	for _, f := range families {
		if strings.HasPrefix(message, f.prefix) && strings.HasSuffix(message, f.suffix) {
			trimmed := strings.TrimSuffix(strings.TrimPrefix(message, f.prefix), f.suffix)
			arg, err := strconv.Atoi(trimmed)
			if err != nil {
				return 0, false
			}
			return arg, true
		}
	}
	return 0, false
}

func asInvalidDC(err error) (*InvalidDCError, bool) {
	var dcErr *InvalidDCError
	if errors.As(err, &dcErr) {
		return dcErr, true
	}
	return nil, false
}

func asRPCError(err error) (*RPCError, bool) {
	// redirect and flood errors embed RPCError but have their own pointer
	// types; match the plain kind only
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}

// isRemoteError reports whether err originated from the server rather than
// from the local machinery (dial, handshake, i/o).
func isRemoteError(err error) bool {
	if _, ok := asRPCError(err); ok {
		return true
	}
	var dcErr *InvalidDCError
	var floodErr *FloodWaitError
	return errors.As(err, &dcErr) || errors.As(err, &floodErr)
}
