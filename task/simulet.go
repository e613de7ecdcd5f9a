package task

import (
	"context"
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/intersim/output"
	"gonum.org/v1/gonum/stat"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 300, "心跳日志间隔步数")
)

// Report 多回合运行报告
type Report struct {
	RunID    string
	Episodes []output.EpisodeRecord

	MeanAverageWait float64 // 各回合每车平均等待时间的均值（秒）
	StdAverageWait  float64
	MeanThroughput  float64 // 各回合通过量的均值（辆/小时）
	StdThroughput   float64
	MeanCO2         float64 // 各回合CO2估计的均值
}

// step 执行一步：读取观测、策略决策、推进路口、输出轨迹与心跳日志
func (ctx *Context) step(episode int32) error {
	clk := ctx.junction.Clock()
	obs := ctx.junction.Observation()
	phase := ctx.policy.Decide(obs)
	if err := ctx.junction.Step(phase, ctx.runtimeConfig.DT); err != nil {
		return fmt.Errorf("episode %d step %d: %w", episode, clk.InternalStep, err)
	}
	if ctx.trace != nil {
		frame := output.NewFrame(episode, clk.InternalStep, ctx.junction.Observation(), len(ctx.junction.Vehicles()))
		if err := ctx.trace.Write(frame); err != nil {
			return err
		}
	}
	if *heartBeatInterval > 0 && clk.InternalStep%int32(*heartBeatInterval) == 0 {
		obs = ctx.junction.Observation()
		log.Infof(
			"EPISODE %d STEP: %d(%s) phase=%v waiting=%v red=%.1f/%.1f vehicles=%d",
			episode, clk.InternalStep, clk.String(), obs.Phase, obs.Waiting,
			obs.RedTime[0], obs.RedTime[1], len(ctx.junction.Vehicles()),
		)
	}
	return nil
}

// RunEpisode 运行一个回合
// 功能：重置路口、统计与策略后运行配置的步数，生成并输出回合汇总
// 参数：c-取消上下文（在步与步之间检查），episode-回合序号
// 返回：回合汇总记录
func (ctx *Context) RunEpisode(c context.Context, episode int32) (output.EpisodeRecord, error) {
	ctx.junction.Reset()
	ctx.metrics.Reset()
	ctx.policy.Reset()

	clk := ctx.junction.Clock()
	for !clk.Done() {
		if err := c.Err(); err != nil {
			return output.EpisodeRecord{}, err
		}
		if err := ctx.step(episode); err != nil {
			return output.EpisodeRecord{}, err
		}
	}

	summary := ctx.metrics.Summary(clk.T)
	rec := output.EpisodeRecord{
		ID:        uuid.NewString(),
		RunID:     ctx.runID,
		Episode:   episode,
		Policy:    ctx.runtimeConfig.C.Policy.Name,
		Seed:      int64(ctx.runtimeConfig.C.Seed),
		Spawned:   ctx.junction.Spawned(),
		Summary:   summary,
		CreatedAt: time.Now(),
	}
	log.Infof(
		"episode %d: passed %d/%d, wait %.1fs (%.2fs/veh), fuel %.1f, co2 %.1f, throughput %.1f veh/h",
		episode, summary.VehiclesPassed, rec.Spawned, summary.WaitTime, summary.AverageWait,
		summary.Fuel, summary.CO2, summary.Throughput,
	)
	if err := ctx.recorder.Write(c, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// Run 运行全部回合
// 功能：依次运行配置的回合数，汇总跨回合统计
func (ctx *Context) Run(c context.Context) (*Report, error) {
	report := &Report{RunID: ctx.runID}
	for e := range ctx.runtimeConfig.C.Episodes {
		rec, err := ctx.RunEpisode(c, e)
		if err != nil {
			return report, err
		}
		report.Episodes = append(report.Episodes, rec)
	}

	waits := lo.Map(report.Episodes, func(r output.EpisodeRecord, _ int) float64 { return r.Summary.AverageWait })
	throughputs := lo.Map(report.Episodes, func(r output.EpisodeRecord, _ int) float64 { return r.Summary.Throughput })
	co2s := lo.Map(report.Episodes, func(r output.EpisodeRecord, _ int) float64 { return r.Summary.CO2 })
	report.MeanAverageWait, report.StdAverageWait = meanStdDev(waits)
	report.MeanThroughput, report.StdThroughput = meanStdDev(throughputs)
	report.MeanCO2 = stat.Mean(co2s, nil)

	log.Infof(
		"run %s complete: %d episodes, wait %.2f±%.2fs/veh, throughput %.1f±%.1f veh/h, co2 %.1f",
		ctx.runID, len(report.Episodes),
		report.MeanAverageWait, report.StdAverageWait,
		report.MeanThroughput, report.StdThroughput, report.MeanCO2,
	)
	return report, nil
}

// meanStdDev 均值与样本标准差，少于两个样本时标准差为0
func meanStdDev(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	if len(x) == 1 {
		return x[0], 0
	}
	mean, std := stat.MeanStdDev(x, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}
