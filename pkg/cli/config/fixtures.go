package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidly-dev/vidly/pkg/domain/model"
)

// Fixtures holds the CLI flag naming a TOML fixtures file
type Fixtures struct {
	path string
}

// Flags returns CLI flags for fixture loading
func (x *Fixtures) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Fixtures file (TOML)",
			Required:    true,
			Sources:     cli.EnvVars("VIDLY_FIXTURES_FILE"),
			Destination: &x.path,
		},
	}
}

// Path returns the fixtures file path
func (x *Fixtures) Path() string {
	return x.path
}

// Load reads and validates the fixtures file.
func (x *Fixtures) Load() (*model.Fixtures, error) {
	return LoadFixtures(x.path)
}

// LoadFixtures reads a TOML fixtures file and validates its content.
func LoadFixtures(path string) (*model.Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrFixturesNotFound, "fixtures file does not exist", goerr.V(PathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read fixtures file", goerr.V(PathKey, path))
	}

	var fixtures model.Fixtures
	dec := toml.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fixtures); err != nil {
		return nil, goerr.Wrap(ErrInvalidFixtures, err.Error(), goerr.V(PathKey, path))
	}

	if err := fixtures.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidFixtures, err.Error(), goerr.V(PathKey, path))
	}
	return &fixtures, nil
}
