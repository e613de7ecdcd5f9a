package entity

// 依赖倒置，表达路口仿真与外部协作方之间的接口

// 统计模块接口，由路口在每步为每辆车调用
type IMetricsRecorder interface {
	Record(waiting bool, dt float64) // 记录一辆车本步是否等待
	VehiclePassed()                  // 一辆车驶离可视区域
}

// 信控策略接口（规则策略或学习得到的策略）
type IPolicy interface {
	Decide(obs Observation) Phase // 根据观测给出期望相位
	Reset()                       // 回合开始时重置内部状态
}

// 路口仿真接口
type ISimulation interface {
	Step(requested Phase, dt float64) error // 推进一步
	Observation() Observation               // 当前观测
	Reset()                                 // 回合重置
}
