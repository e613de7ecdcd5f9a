package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/intersim/entity"
	"github.com/tsinghua-fib-lab/intersim/entity/vehicle"
	"github.com/tsinghua-fib-lab/intersim/utils/geometry"
)

func TestVehicleAxis(t *testing.T) {
	east := vehicle.New(1, entity.DirectionEast, -40, 380, 2.5, 40, 20)
	vx, vy := east.Velocity()
	assert.Equal(t, 2.5, vx)
	assert.Equal(t, 0., vy)
	assert.Equal(t, geometry.Rect{X: -40, Y: 380, W: 40, H: 20}, east.Rect())
	assert.Equal(t, geometry.Rect{X: -37.5, Y: 380, W: 40, H: 20}, east.NextRect())
	assert.Equal(t, -1, east.Index())

	south := vehicle.New(2, entity.DirectionSouth, 380, -40, 2.5, 40, 20)
	vx, vy = south.Velocity()
	assert.Equal(t, 0., vx)
	assert.Equal(t, 2.5, vy)
	assert.Equal(t, geometry.Rect{X: 380, Y: -40, W: 20, H: 40}, south.Rect())
}

func TestVehicleWaitingIsOverwritten(t *testing.T) {
	v := vehicle.New(1, entity.DirectionSouth, 0, 0, 1, 4, 2)
	v.Hold()
	assert.True(t, v.Waiting())
	assert.Equal(t, 0., v.Y())
	v.Move()
	assert.False(t, v.Waiting())
	assert.Equal(t, 1., v.Y())
	assert.Equal(t, 0., v.X())
}

func TestVehicleRejectsBadInput(t *testing.T) {
	assert.Panics(t, func() { vehicle.New(1, entity.Direction(9), 0, 0, 1, 1, 1) })
	assert.Panics(t, func() { vehicle.New(1, entity.DirectionEast, 0, 0, 0, 1, 1) })
}
