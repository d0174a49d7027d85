package types_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vidly-dev/vidly/pkg/domain/types"
)

func TestParseEnv(t *testing.T) {
	tests := []struct {
		in   string
		want types.Env
		err  bool
	}{
		{"", types.EnvDevelopment, false},
		{"development", types.EnvDevelopment, false},
		{"production", types.EnvProduction, false},
		{"test", types.EnvTest, false},
		{"staging", "", true},
		{"Production", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := types.ParseEnv(tt.in)
			if tt.err {
				gt.Bool(t, errors.Is(err, types.ErrInvalidEnv)).True()
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestEnvPredicates(t *testing.T) {
	gt.Bool(t, types.EnvProduction.IsProduction()).True()
	gt.Bool(t, types.EnvDevelopment.IsProduction()).False()
	gt.Bool(t, types.EnvTest.IsTest()).True()
	gt.Bool(t, types.EnvProduction.IsTest()).False()
}
