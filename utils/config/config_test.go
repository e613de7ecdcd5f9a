package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/intersim/utils/config"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	c, err := config.Load([]byte(`
vehicle:
  speed: 5
control:
  spawn_prob: 0.1
  policy:
    name: fixed
    cycle: 12
`))
	require.NoError(t, err)
	assert.Equal(t, 5., c.Vehicle.Speed)
	assert.Equal(t, 40., c.Vehicle.Length)
	assert.Equal(t, 0.1, c.Control.SpawnProb)
	assert.Equal(t, "fixed", c.Control.Policy.Name)
	assert.Equal(t, 12., c.Control.Policy.Cycle)
	assert.Equal(t, 3., c.Signal.MinGreen)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	_, err := config.Load([]byte("control:\n  spawn_probability: 0.1\n"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValue(t *testing.T) {
	_, err := config.Load([]byte("control:\n  spawn_prob: 1.5\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load([]byte("geometry:\n  road_width: 0\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRuntimeConfig(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Default())
	assert.Equal(t, 400., rc.CX)
	assert.Equal(t, 400., rc.CY)
	assert.Equal(t, 360., rc.Zone.Left())
	assert.Equal(t, 440., rc.Zone.Right())
	assert.Equal(t, 80., rc.Zone.H)
	assert.InDelta(t, 1./30, rc.DT, 1e-12)
}
