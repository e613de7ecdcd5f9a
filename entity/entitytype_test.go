package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/intersim/entity"
)

func TestPhaseDirections(t *testing.T) {
	assert.Equal(t, entity.DirectionSouth, entity.PhaseNSGreen.Green())
	assert.Equal(t, entity.DirectionEast, entity.PhaseNSGreen.Red())
	assert.Equal(t, entity.DirectionEast, entity.PhaseEWGreen.Green())
	assert.Equal(t, entity.DirectionSouth, entity.PhaseEWGreen.Red())
	assert.Equal(t, entity.PhaseEWGreen, entity.GreenPhaseOf(entity.DirectionEast))
	assert.Equal(t, entity.PhaseNSGreen, entity.GreenPhaseOf(entity.DirectionSouth))
}

func TestValid(t *testing.T) {
	assert.True(t, entity.PhaseNSGreen.Valid())
	assert.True(t, entity.PhaseEWGreen.Valid())
	assert.False(t, entity.Phase(2).Valid())
	assert.False(t, entity.Phase(-1).Valid())
	assert.False(t, entity.Direction(5).Valid())
	assert.Equal(t, "EW_GREEN", entity.PhaseEWGreen.String())
	assert.Equal(t, "Phase(7)", entity.Phase(7).String())
	assert.Equal(t, "SOUTH", entity.DirectionSouth.String())
}
