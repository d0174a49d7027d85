package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Env is the deployment environment the server runs in.
type Env string

const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
	EnvTest        Env = "test"
)

var ErrInvalidEnv = goerr.New("invalid environment")

// ParseEnv converts s into an Env. An empty string selects EnvDevelopment.
func ParseEnv(s string) (Env, error) {
	if s == "" {
		return EnvDevelopment, nil
	}
	e := Env(s)
	if err := e.Validate(); err != nil {
		return "", err
	}
	return e, nil
}

// Validate checks if the Env is one of the known environments
func (e Env) Validate() error {
	switch e {
	case EnvDevelopment, EnvProduction, EnvTest:
		return nil
	}
	return goerr.Wrap(ErrInvalidEnv, "unknown environment", goerr.V("env", string(e)))
}

// IsProduction reports whether diagnostic detail must be hidden from clients.
func (e Env) IsProduction() bool { return e == EnvProduction }

// IsTest reports whether the server runs under automated tests.
func (e Env) IsTest() bool { return e == EnvTest }

func (e Env) String() string { return string(e) }
