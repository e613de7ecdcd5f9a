package policy

import (
	"math"

	"github.com/tsinghua-fib-lab/intersim/entity"
)

// Fixed 固定周期信控
// 功能：不看车流，按仿真时间每cycle秒在南北绿灯与东西绿灯间轮换，从南北绿灯开始
// 说明：实际切换仍受信号灯最短绿灯时间约束
type Fixed struct {
	cycle float64 // 每个相位的时长（秒）
}

// NewFixed 创建固定周期信控
func NewFixed(cycle float64) *Fixed {
	if cycle <= 0 {
		log.Panicf("fixed policy cycle %v must be > 0", cycle)
	}
	return &Fixed{cycle: cycle}
}

// Decide 根据观测中的仿真时间给出相位
func (p *Fixed) Decide(obs entity.Observation) entity.Phase {
	if int64(math.Floor(obs.T/p.cycle))%2 == 1 {
		return entity.PhaseEWGreen
	}
	return entity.PhaseNSGreen
}

func (p *Fixed) Reset() {}
