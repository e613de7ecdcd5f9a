package entity

import "fmt"

// Direction 车辆来向
// 功能：决定车辆的生成车道与运动轴，车辆生命周期内不变（不支持转向）
type Direction int32

const (
	DirectionEast  Direction = iota // 自西向东行驶（东向）
	DirectionSouth                  // 自北向南行驶（南向）

	DirectionCount = 2 // 方向数量
)

// Valid 判断方向是否合法
func (d Direction) Valid() bool {
	return d == DirectionEast || d == DirectionSouth
}

func (d Direction) String() string {
	switch d {
	case DirectionEast:
		return "EAST"
	case DirectionSouth:
		return "SOUTH"
	default:
		return fmt.Sprintf("Direction(%d)", int32(d))
	}
}

// Phase 信号相位
// 功能：两相位信控，任意时刻恰有一个相位生效，另一方向隐含为红灯
type Phase int32

const (
	PhaseNSGreen Phase = iota // 南北绿灯，南向车辆通行，东向车辆等待
	PhaseEWGreen              // 东西绿灯，东向车辆通行，南向车辆等待
)

// Valid 判断相位是否属于两相位枚举
func (p Phase) Valid() bool {
	return p == PhaseNSGreen || p == PhaseEWGreen
}

// Green 相位放行的方向
func (p Phase) Green() Direction {
	if p == PhaseEWGreen {
		return DirectionEast
	}
	return DirectionSouth
}

// Red 相位禁行的方向
func (p Phase) Red() Direction {
	if p == PhaseEWGreen {
		return DirectionSouth
	}
	return DirectionEast
}

func (p Phase) String() string {
	switch p {
	case PhaseNSGreen:
		return "NS_GREEN"
	case PhaseEWGreen:
		return "EW_GREEN"
	default:
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
}

// GreenPhaseOf 放行指定方向的相位
func GreenPhaseOf(d Direction) Phase {
	if d == DirectionEast {
		return PhaseEWGreen
	}
	return PhaseNSGreen
}

// Observation 提供给信控策略的只读观测
// 功能：每次读取时由车辆与信号状态重新计算，不单独存储
type Observation struct {
	Waiting    [DirectionCount]int32   // 各方向等待车辆数
	RedTime    [DirectionCount]float64 // 各方向累计红灯时间（秒）
	Phase      Phase                   // 当前相位
	PhaseTimer float64                 // 当前相位已持续时间（秒）
	T          float64                 // 仿真已经过时间（秒）
}
