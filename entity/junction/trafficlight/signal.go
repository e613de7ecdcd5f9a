// 提供两相位信号灯状态机
// 相位切换只在当前相位持续时间达到最短绿灯时间后才会生效，同时记录每个方向的累计红灯时间
package trafficlight

import (
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/intersim/entity"
)

var log = logrus.WithField("module", "trafficlight")

// signalRuntime 信号灯运行时数据
type signalRuntime struct {
	phase      entity.Phase                   // 当前相位
	phaseTimer float64                        // 距上次相位切换的时间（秒）
	redTime    [entity.DirectionCount]float64 // 各方向累计红灯时间（秒），转为绿灯时清零
}

// Signal 两相位信号灯
// 功能：维护当前相位、相位计时与红灯计时，按最短绿灯约束处理相位切换请求
type Signal struct {
	minGreen float64 // 最短绿灯时间（秒）
	runtime  signalRuntime
}

// New 创建信号灯，初始相位为南北绿灯
// 参数：minGreen-最短绿灯时间（秒）
func New(minGreen float64) *Signal {
	if minGreen < 0 {
		log.Panicf("min green %v must be >= 0", minGreen)
	}
	return &Signal{
		minGreen: minGreen,
		runtime:  signalRuntime{phase: entity.PhaseNSGreen},
	}
}

// Update 时间记账，每步无条件执行且先于相位请求
// 功能：相位计时增加dt；红灯方向的红灯计时增加dt，绿灯方向的红灯计时清零
// 参数：dt-时间步长
// 说明：记账依据的是本步开始时的相位
func (s *Signal) Update(dt float64) {
	s.runtime.phaseTimer += dt
	s.runtime.redTime[s.runtime.phase.Red()] += dt
	s.runtime.redTime[s.runtime.phase.Green()] = 0
}

// RequestPhase 请求切换相位
// 功能：请求相位与当前相位不同且当前相位已持续不少于最短绿灯时间时切换，否则静默忽略
// 参数：requested-期望相位
// 算法说明：
// 1. 相同相位或未满最短绿灯时间：不做任何事，相位计时继续累加
// 2. 切换：更新相位，相位计时清零，新放行方向的红灯计时立即清零
func (s *Signal) RequestPhase(requested entity.Phase) {
	if !requested.Valid() {
		log.Panicf("request invalid phase %v", requested)
	}
	if requested == s.runtime.phase || s.runtime.phaseTimer < s.minGreen {
		return
	}
	log.Debugf("phase %v -> %v after %.2fs", s.runtime.phase, requested, s.runtime.phaseTimer)
	s.runtime.phase = requested
	s.runtime.phaseTimer = 0
	s.runtime.redTime[requested.Green()] = 0
}

// Reset 恢复为南北绿灯，所有计时清零
func (s *Signal) Reset() {
	s.runtime = signalRuntime{phase: entity.PhaseNSGreen}
}

// Phase 当前相位
func (s *Signal) Phase() entity.Phase {
	return s.runtime.phase
}

// PhaseTimer 当前相位已持续时间
func (s *Signal) PhaseTimer() float64 {
	return s.runtime.phaseTimer
}

// RedTime 指定方向的累计红灯时间
func (s *Signal) RedTime(d entity.Direction) float64 {
	return s.runtime.redTime[d]
}

// IsGreen 指定方向当前是否为绿灯
func (s *Signal) IsGreen(d entity.Direction) bool {
	return s.runtime.phase.Green() == d
}
