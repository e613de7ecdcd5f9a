package policy

import (
	"github.com/tsinghua-fib-lab/intersim/entity"
)

// RuleBased 基于等待车辆数的规则信控
// 功能：优先满足公平性约束，否则把绿灯给等待车辆更多的方向
type RuleBased struct {
	maxRed  float64      // 公平性上限（秒）
	current entity.Phase // 上一次给出的相位
}

// NewRuleBased 创建规则信控
// 参数：maxRed-有车等待的方向允许累计的最长红灯时间（秒）
func NewRuleBased(maxRed float64) *RuleBased {
	return &RuleBased{maxRed: maxRed, current: entity.PhaseNSGreen}
}

// Decide 给出期望相位
// 算法说明：
// 1. 东向有车等待且红灯时间达到上限：东西绿灯（先于南向检查）
// 2. 南向有车等待且红灯时间达到上限：南北绿灯
// 3. 否则等待车辆严格更多的方向获得绿灯，相等时保持上一次的选择
func (p *RuleBased) Decide(obs entity.Observation) entity.Phase {
	for _, d := range []entity.Direction{entity.DirectionEast, entity.DirectionSouth} {
		if obs.Waiting[d] > 0 && obs.RedTime[d] >= p.maxRed {
			p.current = entity.GreenPhaseOf(d)
			return p.current
		}
	}
	east, south := obs.Waiting[entity.DirectionEast], obs.Waiting[entity.DirectionSouth]
	if east > south {
		p.current = entity.PhaseEWGreen
	} else if south > east {
		p.current = entity.PhaseNSGreen
	}
	return p.current
}

// Reset 恢复为南北绿灯
func (p *RuleBased) Reset() {
	p.current = entity.PhaseNSGreen
}
