package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/intersim/entity"
	"github.com/tsinghua-fib-lab/intersim/entity/junction"
	"github.com/tsinghua-fib-lab/intersim/metrics"
	"github.com/tsinghua-fib-lab/intersim/output"
	"github.com/tsinghua-fib-lab/intersim/policy"
	"github.com/tsinghua-fib-lab/intersim/utils/config"
)

var log = logrus.WithField("module", "task")

// Context 仿真任务上下文
// 功能：持有一次运行的路口、统计、信控策略与输出，按回合驱动仿真
// 说明：路口与统计各自独立重置，回合开始时由上下文统一重置
type Context struct {
	// 运行ID，写入每条回合记录
	runID string

	// 运行时配置
	runtimeConfig *config.RuntimeConfig
	// 路口仿真
	junction *junction.Junction
	// 统计
	metrics *metrics.Tracker
	// 信控策略
	policy entity.IPolicy

	// 回合汇总输出
	recorder output.IEpisodeRecorder
	// 逐步轨迹输出（可选）
	trace *output.TraceWriter
}

// NewContext 创建仿真任务上下文
// 参数：
//   - c: 配置对象
//   - recorder: 回合汇总输出，nil表示丢弃
//   - trace: 逐步轨迹输出，nil表示不输出
//
// 返回：初始化完成的Context实例，策略名称未知时返回错误
func NewContext(c config.Config, recorder output.IEpisodeRecorder, trace *output.TraceWriter) (*Context, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, err := policy.New(c)
	if err != nil {
		return nil, err
	}
	if recorder == nil {
		recorder = output.Discard{}
	}
	ctx := &Context{
		runID:         uuid.NewString(),
		runtimeConfig: config.NewRuntimeConfig(c),
		metrics:       metrics.New(),
		policy:        p,
		recorder:      recorder,
		trace:         trace,
	}
	ctx.junction = junction.New(ctx.runtimeConfig, ctx.metrics)
	log.Infof("run %s: zone %v, dt %.4fs, %d episodes x %d steps",
		ctx.runID, ctx.runtimeConfig.Zone, ctx.runtimeConfig.DT,
		c.Control.Episodes, c.Control.Step.Total,
	)
	return ctx, nil
}

func (ctx *Context) RunID() string {
	return ctx.runID
}

func (ctx *Context) Junction() *junction.Junction {
	return ctx.junction
}

func (ctx *Context) Metrics() *metrics.Tracker {
	return ctx.metrics
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// Close 关闭所有输出
func (ctx *Context) Close(c context.Context) error {
	var err error
	if ctx.trace != nil {
		err = errors.Join(err, ctx.trace.Close())
	}
	if e := ctx.recorder.Close(c); e != nil {
		err = errors.Join(err, fmt.Errorf("close recorder: %w", e))
	}
	return err
}
