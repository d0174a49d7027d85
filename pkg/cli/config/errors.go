package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrInvalidBackend    = goerr.New("invalid repository backend")
	ErrMissingOption     = goerr.New("required option is missing")
	ErrFixturesNotFound  = goerr.New("fixtures file not found")
	ErrInvalidFixtures   = goerr.New("invalid fixtures")
	ErrInvalidLogLevel   = goerr.New("invalid log level")
	ErrInvalidLogFormat  = goerr.New("invalid log format")
	ErrInvalidPageLimits = goerr.New("invalid pagination limits")
)

// Context keys for error values
const (
	BackendKey   = "backend"
	OptionKey    = "option"
	PathKey      = "path"
	LogLevelKey  = "log_level"
	LogFormatKey = "log_format"
)
