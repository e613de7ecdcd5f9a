package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/intersim/clock"
	"github.com/tsinghua-fib-lab/intersim/utils/config"
)

func TestClockAdvance(t *testing.T) {
	c := clock.New(config.ControlStep{Rate: 10, Total: 3})
	assert.InDelta(t, 0.1, c.DT, 1e-12)
	assert.False(t, c.Done())
	for range 3 {
		c.Advance(c.DT)
	}
	assert.True(t, c.Done())
	assert.Equal(t, int32(3), c.InternalStep)
	assert.InDelta(t, 0.3, c.T, 1e-9)

	c.Init()
	assert.Equal(t, int32(0), c.InternalStep)
	assert.Equal(t, 0., c.T)
}

func TestClockString(t *testing.T) {
	c := clock.New(config.ControlStep{Rate: 1, Total: 1})
	c.Advance(3723.5)
	assert.Equal(t, "01:02:03", c.String())
	h, m, s := c.GetHourMinuteSecond()
	assert.Equal(t, 1, h)
	assert.Equal(t, 2, m)
	assert.InDelta(t, 3.5, s, 1e-9)
}
