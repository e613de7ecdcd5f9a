package task_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/intersim/entity"
	"github.com/tsinghua-fib-lab/intersim/entity/junction"
	"github.com/tsinghua-fib-lab/intersim/metrics"
	"github.com/tsinghua-fib-lab/intersim/output"
	"github.com/tsinghua-fib-lab/intersim/policy"
	"github.com/tsinghua-fib-lab/intersim/task"
	"github.com/tsinghua-fib-lab/intersim/utils/config"
)

// memoryRecorder 在内存中保存回合记录
type memoryRecorder struct {
	records []output.EpisodeRecord
	closed  bool
}

func (r *memoryRecorder) Write(_ context.Context, rec output.EpisodeRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *memoryRecorder) Close(context.Context) error {
	r.closed = true
	return nil
}

func testConfig() config.Config {
	c := config.Default()
	c.Control.Step.Total = 600
	c.Control.Episodes = 2
	c.Control.Seed = 42
	c.Control.SpawnProb = 0.1
	return c
}

func TestRunEpisodes(t *testing.T) {
	c := testConfig()
	rec := &memoryRecorder{}
	var buf bytes.Buffer
	ctx, err := task.NewContext(c, rec, output.NewTraceWriter(&buf))
	require.NoError(t, err)

	report, err := ctx.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, ctx.Close(context.Background()))
	assert.True(t, rec.closed)

	require.Len(t, report.Episodes, 2)
	assert.Equal(t, report.Episodes, rec.records)
	assert.Equal(t, ctx.RunID(), report.RunID)
	for i, r := range rec.records {
		assert.Equal(t, int32(i), r.Episode)
		assert.Equal(t, ctx.RunID(), r.RunID)
		assert.Equal(t, "rule", r.Policy)
		assert.Equal(t, int64(42), r.Seed)
		assert.InDelta(t, 20.0, r.Summary.Elapsed, 1e-6)
		assert.LessOrEqual(t, r.Summary.VehiclesPassed, r.Spawned)
	}
	assert.Len(t, lo.UniqBy(rec.records, func(r output.EpisodeRecord) string { return r.ID }), 2)

	frames, err := output.ReadTrace(&buf)
	require.NoError(t, err)
	require.Len(t, frames, 1200)
	assert.Equal(t, int32(1), frames[600].Episode)
	assert.Equal(t, int32(1), frames[600].Step)
	assert.Equal(t, int32(600), frames[1199].Step)
}

func TestRunMetricsConsistency(t *testing.T) {
	c := testConfig()
	c.Control.Episodes = 3
	c.Control.SpawnProb = 0.3
	ctx, err := task.NewContext(c, nil, nil)
	require.NoError(t, err)

	report, err := ctx.Run(context.Background())
	require.NoError(t, err)
	for _, r := range report.Episodes {
		s := r.Summary
		assert.Greater(t, r.Spawned, int32(0))
		assert.InDelta(t, s.WaitTime, s.IdleTime, 1e-9)
		assert.InDelta(t, s.IdleTime*metrics.IdleFuelPerSecond+s.MovingTime*metrics.MovingFuelPerSecond, s.Fuel, 1e-9)
		assert.InDelta(t, s.Fuel*metrics.CO2PerFuel, s.CO2, 1e-9)
		assert.InDelta(t, float64(s.VehiclesPassed)/s.Elapsed*3600, s.Throughput, 1e-9)
	}
	waits := lo.Map(report.Episodes, func(r output.EpisodeRecord, _ int) float64 { return r.Summary.AverageWait })
	assert.InDelta(t, lo.Sum(waits)/3, report.MeanAverageWait, 1e-9)
	assert.GreaterOrEqual(t, report.StdAverageWait, 0.0)
}

func TestRunSingleEpisodeStd(t *testing.T) {
	c := testConfig()
	c.Control.Episodes = 1
	ctx, err := task.NewContext(c, nil, nil)
	require.NoError(t, err)
	report, err := ctx.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.StdAverageWait)
	assert.Equal(t, 0.0, report.StdThroughput)
}

func TestRunCancelled(t *testing.T) {
	rec := &memoryRecorder{}
	ctx, err := task.NewContext(testConfig(), rec, nil)
	require.NoError(t, err)

	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := ctx.Run(cctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Episodes)
	assert.Empty(t, rec.records)
}

func TestNewContextErrors(t *testing.T) {
	c := testConfig()
	c.Control.Policy.Name = "max_pressure"
	_, err := task.NewContext(c, nil, nil)
	assert.ErrorIs(t, err, policy.ErrUnknownPolicy)

	c = testConfig()
	c.Control.SpawnProb = 2
	_, err = task.NewContext(c, nil, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

// 规则策略闭环：有车等待且红灯达到上限的方向在下一步获得绿灯
func TestRuleBasedFairnessInLoop(t *testing.T) {
	c := testConfig()
	c.Control.SpawnProb = 0.3
	c.Control.Step.Total = 3000
	ctx, err := task.NewContext(c, nil, nil)
	require.NoError(t, err)
	p, err := policy.New(c)
	require.NoError(t, err)

	j := ctx.Junction()
	light := j.TrafficLight()
	starved := 0
	for range 3000 {
		obs := j.Observation()
		var due []entity.Direction
		for d := entity.Direction(0); d < entity.DirectionCount; d++ {
			if obs.Waiting[d] > 0 && obs.RedTime[d] >= c.Signal.MaxRed {
				due = append(due, d)
			}
		}
		require.NoError(t, j.Step(p.Decide(obs), ctx.RuntimeConfig().DT))
		for _, d := range due {
			starved++
			assert.True(t, light.IsGreen(d), "direction %v still red at t=%.2f", d, obs.T)
		}
	}
	t.Logf("fairness override triggered %d times", starved)
}

func TestJunctionErrorPropagates(t *testing.T) {
	ctx, err := task.NewContext(testConfig(), nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, ctx.Junction().Step(entity.PhaseNSGreen, 0), junction.ErrInvalidDT)
}
