package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidly-dev/vidly/pkg/domain/types"
	"github.com/vidly-dev/vidly/pkg/utils/pagination"
)

// Server holds CLI flags for the HTTP server
type Server struct {
	addr         string
	env          string
	defaultLimit int
	maxLimit     int
}

// Flags returns CLI flags for server configuration
func (x *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       "127.0.0.1:3000",
			Sources:     cli.EnvVars("VIDLY_ADDR"),
			Destination: &x.addr,
		},
		&cli.StringFlag{
			Name:        "env",
			Usage:       "Runtime environment (development, production, test)",
			Value:       string(types.EnvDevelopment),
			Sources:     cli.EnvVars("VIDLY_ENV", "NODE_ENV"),
			Destination: &x.env,
		},
		&cli.IntFlag{
			Name:        "page-default-limit",
			Category:    "Pagination",
			Usage:       "Page size when the limit query parameter is missing",
			Value:       pagination.DefaultLimit,
			Sources:     cli.EnvVars("VIDLY_PAGE_DEFAULT_LIMIT"),
			Destination: &x.defaultLimit,
		},
		&cli.IntFlag{
			Name:        "page-max-limit",
			Category:    "Pagination",
			Usage:       "Largest page size a client may request",
			Value:       pagination.MaxLimit,
			Sources:     cli.EnvVars("VIDLY_PAGE_MAX_LIMIT"),
			Destination: &x.maxLimit,
		},
	}
}

// Addr returns the listen address
func (x *Server) Addr() string {
	return x.addr
}

// Env parses the configured environment
func (x *Server) Env() (types.Env, error) {
	return types.ParseEnv(x.env)
}

// Pagination returns the list endpoint limits
func (x *Server) Pagination() (pagination.Config, error) {
	if x.defaultLimit < 1 || x.maxLimit < 1 || x.defaultLimit > x.maxLimit {
		return pagination.Config{}, goerr.Wrap(ErrInvalidPageLimits, "page limits out of range",
			goerr.V("default_limit", x.defaultLimit),
			goerr.V("max_limit", x.maxLimit),
		)
	}
	return pagination.Config{DefaultLimit: x.defaultLimit, MaxLimit: x.maxLimit}, nil
}
