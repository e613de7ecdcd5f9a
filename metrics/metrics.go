// 统计模块：累计车辆等待、怠速与行驶时间，推导通过量与排放估计
package metrics

import (
	"github.com/tsinghua-fib-lab/intersim/entity"
)

// 线性排放模型系数（非物理标定）
const (
	IdleFuelPerSecond   = 1.0 // 怠速每秒油耗
	MovingFuelPerSecond = 0.5 // 行驶每秒油耗
	CO2PerFuel          = 2.3 // 单位油耗对应的CO2
)

var _ entity.IMetricsRecorder = (*Tracker)(nil)

// Tracker 统计累加器
// 功能：所有量在一个回合内单调增加，只在调用方显式Reset时清零
type Tracker struct {
	waitTime       float64 // 累计等待时间（秒，按车辆求和）
	idleTime       float64 // 累计怠速时间
	movingTime     float64 // 累计行驶时间
	vehiclesPassed int32   // 驶离车辆数
}

// New 创建统计累加器
func New() *Tracker {
	return &Tracker{}
}

// Record 记录一辆车一步的状态
// 参数：waiting-本步是否等待，dt-时间步长
func (t *Tracker) Record(waiting bool, dt float64) {
	if waiting {
		t.waitTime += dt
		t.idleTime += dt
	} else {
		t.movingTime += dt
	}
}

// VehiclePassed 通过车辆数加一
func (t *Tracker) VehiclePassed() {
	t.vehiclesPassed++
}

// EstimateEmissions 估计油耗与CO2
// 返回：fuel = 1.0*怠速时间 + 0.5*行驶时间，co2 = 2.3*fuel
func (t *Tracker) EstimateEmissions() (fuel, co2 float64) {
	fuel = IdleFuelPerSecond*t.idleTime + MovingFuelPerSecond*t.movingTime
	co2 = fuel * CO2PerFuel
	return
}

// Reset 清零所有累计量
func (t *Tracker) Reset() {
	*t = Tracker{}
}

func (t *Tracker) WaitTime() float64 {
	return t.waitTime
}

func (t *Tracker) IdleTime() float64 {
	return t.idleTime
}

func (t *Tracker) MovingTime() float64 {
	return t.movingTime
}

func (t *Tracker) VehiclesPassed() int32 {
	return t.vehiclesPassed
}

// Throughput 通过量（辆/小时）
// 参数：elapsed-统计区间时长（秒），非正时返回0
func (t *Tracker) Throughput(elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(t.vehiclesPassed) / elapsed * 3600
}

// AverageWait 每辆通过车辆分摊的等待时间（秒），尚无车辆通过时返回0
func (t *Tracker) AverageWait() float64 {
	if t.vehiclesPassed == 0 {
		return 0
	}
	return t.waitTime / float64(t.vehiclesPassed)
}

// Summary 回合统计汇总
type Summary struct {
	Elapsed        float64 `bson:"elapsed" yaml:"elapsed"`
	WaitTime       float64 `bson:"wait_time" yaml:"wait_time"`
	IdleTime       float64 `bson:"idle_time" yaml:"idle_time"`
	MovingTime     float64 `bson:"moving_time" yaml:"moving_time"`
	VehiclesPassed int32   `bson:"vehicles_passed" yaml:"vehicles_passed"`
	Throughput     float64 `bson:"throughput" yaml:"throughput"`
	AverageWait    float64 `bson:"average_wait" yaml:"average_wait"`
	Fuel           float64 `bson:"fuel" yaml:"fuel"`
	CO2            float64 `bson:"co2" yaml:"co2"`
}

// Summary 生成当前累计量的汇总
// 参数：elapsed-统计区间时长（秒）
func (t *Tracker) Summary(elapsed float64) Summary {
	fuel, co2 := t.EstimateEmissions()
	return Summary{
		Elapsed:        elapsed,
		WaitTime:       t.waitTime,
		IdleTime:       t.idleTime,
		MovingTime:     t.movingTime,
		VehiclesPassed: t.vehiclesPassed,
		Throughput:     t.Throughput(elapsed),
		AverageWait:    t.AverageWait(),
		Fuel:           fuel,
		CO2:            co2,
	}
}
