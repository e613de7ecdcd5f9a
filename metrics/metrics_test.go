package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/intersim/metrics"
)

func TestEmissionsClosedForm(t *testing.T) {
	m := metrics.New()
	m.Record(true, 1.5)
	m.Record(false, 2)
	m.Record(true, 1.5)

	fuel, co2 := m.EstimateEmissions()
	assert.InDelta(t, 4.0, fuel, 1e-9)
	assert.InDelta(t, 9.2, co2, 1e-9)
	assert.InDelta(t, 3.0, m.WaitTime(), 1e-9)
	assert.InDelta(t, 3.0, m.IdleTime(), 1e-9)
	assert.InDelta(t, 2.0, m.MovingTime(), 1e-9)
}

func TestPassedAndDerived(t *testing.T) {
	m := metrics.New()
	assert.Equal(t, 0., m.AverageWait())
	assert.Equal(t, 0., m.Throughput(0))

	m.Record(true, 6)
	m.VehiclePassed()
	m.VehiclePassed()
	m.VehiclePassed()
	assert.Equal(t, int32(3), m.VehiclesPassed())
	assert.InDelta(t, 2.0, m.AverageWait(), 1e-9)
	assert.InDelta(t, 180.0, m.Throughput(60), 1e-9)

	s := m.Summary(60)
	assert.Equal(t, int32(3), s.VehiclesPassed)
	assert.InDelta(t, 6.0, s.Fuel, 1e-9)
	assert.InDelta(t, 13.8, s.CO2, 1e-9)
	assert.Equal(t, 60., s.Elapsed)
}

func TestReset(t *testing.T) {
	m := metrics.New()
	m.Record(false, 1)
	m.VehiclePassed()
	m.Reset()
	fuel, co2 := m.EstimateEmissions()
	assert.Equal(t, 0., fuel)
	assert.Equal(t, 0., co2)
	assert.Equal(t, int32(0), m.VehiclesPassed())
}
