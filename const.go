// Copyright (c) 2024 RoseLoverX

package mtclient

const (
	// ApiVersion is the protocol layer this client speaks; every connection
	// bootstrap is tagged with it.
	ApiVersion = 55

	Version = "0.2.0"

	DefaultServerAddress = "149.154.167.50"
	DefaultServerPort    = 443

	// DefaultPartSize is the chunk size used by the transfer engines when
	// the caller does not pick one. Must stay a whole multiple of 1 KB.
	DefaultPartSize = 64 * 1024

	LogDebug   = "debug"
	LogInfo    = "info"
	LogWarn    = "warn"
	LogError   = "error"
	LogDisable = "disable"
)
