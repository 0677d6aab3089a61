package constants

import "errors"

// Configuration errors.
var (
	ErrTokenNotSpecified = errors.New("token not specified, use 'turkle config token' or --token")
	ErrURLNotSpecified   = errors.New("url not specified, use 'turkle config url' or --url")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrEmptyConfigValue  = errors.New("configuration value cannot be empty")
	ErrNoTerminal        = errors.New("no value given and stdin is not a terminal")
)

// Required flag errors.
var (
	ErrFileRequired       = errors.New("--file must be set")
	ErrIDRequired         = errors.New("--id must be set")
	ErrSelectorRequired   = errors.New("--id or a name selector must be set")
	ErrInstanceRequired   = errors.New("--pid or --bid must be set")
	ErrInstanceAmbiguous  = errors.New("only one of --pid or --bid may be set")
	ErrCreateSourceNeeded = errors.New("--file or the single-item flags must be set")
	ErrUsersRequired      = errors.New("--users or --file must list at least one user id")
	ErrACLRequired        = errors.New("--file, --users or --groups must be set")
	ErrCSVRequired        = errors.New("--csv must be set")
)

// Payload file errors.
var (
	ErrEmptyPayload      = errors.New("payload file contains no items")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
