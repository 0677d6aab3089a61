package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Configuration locations.
const (
	// ConfigDirName is the directory under the user config dir.
	ConfigDirName = "turkle-client"

	// ConfigFileName is the persisted CLI configuration.
	ConfigFileName = "config.json"

	// EnvPrefix prefixes environment overrides, e.g. TURKLE_TOKEN.
	EnvPrefix = "TURKLE"
)

// Configuration keys.
const (
	ConfigKeyURL     = "url"
	ConfigKeyToken   = "token"
	ConfigKeyOutput  = "output"
	ConfigKeyVerbose = "verbose"
	ConfigKeyConfig  = "config"
)

// Wire protocol.
const (
	// AuthScheme prefixes the token in the Authorization header.
	AuthScheme = "TOKEN"

	// LineSeparator separates records in jsonl output and bulk responses.
	LineSeparator = "\n"

	// ContentTypeJSON is sent with every request body.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "turkle-client-go"
)

// Retry defaults. Requests are not retried unless a retry max is configured.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Output formats.
const (
	FormatJSONL = "jsonl"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// UI and display constants.
const (
	// MaskedSecret replaces tokens in displayed configuration.
	MaskedSecret = "***"

	// NotAvailable is displayed for unset values.
	NotAvailable = "N/A"

	// MaxJSONLLineSize bounds a single line of a jsonl payload file.
	MaxJSONLLineSize = 64 * 1024 * 1024
)
