package junction

import (
	"github.com/tsinghua-fib-lab/intersim/entity"
)

// 依赖倒置，表达junction对信号灯实现的接口需求

// 给冲突区判定与观测提供的信控读取接口
type ITrafficLightGetter interface {
	Phase() entity.Phase                // 当前相位
	PhaseTimer() float64                // 当前相位已持续时长
	RedTime(d entity.Direction) float64 // 方向累计红灯时长
	IsGreen(d entity.Direction) bool    // 方向是否为绿灯
}

// 信号灯接口
type ITrafficLight interface {
	ITrafficLightGetter
	Update(dt float64)                   // 时间记账，每步先于相位请求执行
	RequestPhase(requested entity.Phase) // 相位切换请求，不满足条件时静默忽略
	Reset()                              // 恢复初始相位并清零计时
}
