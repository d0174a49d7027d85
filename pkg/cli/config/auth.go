package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/usecase"
)

// Auth holds CLI flags for token signing
type Auth struct {
	privateKey string
	expiresIn  time.Duration
}

// Flags returns CLI flags for authentication configuration
func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwt-private-key",
			Category:    "Authentication",
			Usage:       "HMAC key for signing tokens (at least 32 characters)",
			Sources:     cli.EnvVars("VIDLY_JWT_PRIVATE_KEY", "JWT_PRIVATE_KEY"),
			Destination: &x.privateKey,
		},
		&cli.DurationFlag{
			Name:        "jwt-expires-in",
			Category:    "Authentication",
			Usage:       "Token lifetime",
			Value:       usecase.DefaultTokenTTL,
			Sources:     cli.EnvVars("VIDLY_JWT_EXPIRES_IN"),
			Destination: &x.expiresIn,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("private_key_set", x.privateKey != ""),
		slog.Duration("expires_in", x.expiresIn),
	)
}

// Configure builds the token issuer. A key is required.
func (x *Auth) Configure(repo interfaces.Repository) (*usecase.AuthUseCase, error) {
	if x.privateKey == "" {
		return nil, goerr.Wrap(ErrMissingOption, "jwt-private-key is required", goerr.V(OptionKey, "jwt-private-key"))
	}
	auth, err := usecase.NewAuthUseCase(repo, []byte(x.privateKey), usecase.WithTokenTTL(x.expiresIn))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure authentication")
	}
	return auth, nil
}
