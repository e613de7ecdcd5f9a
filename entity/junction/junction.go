package junction

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/intersim/clock"
	"github.com/tsinghua-fib-lab/intersim/entity"
	"github.com/tsinghua-fib-lab/intersim/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/intersim/entity/vehicle"
	"github.com/tsinghua-fib-lab/intersim/utils/config"
	"github.com/tsinghua-fib-lab/intersim/utils/container"
	"github.com/tsinghua-fib-lab/intersim/utils/geometry"
	"github.com/tsinghua-fib-lab/intersim/utils/randengine"
)

var log = logrus.WithField("module", "junction")

var (
	ErrInvalidDT    = errors.New("dt must be a positive finite number")
	ErrInvalidPhase = errors.New("requested phase is not NS_GREEN or EW_GREEN")
)

// spawnPoint 车辆生成位置（包围盒左上角）
type spawnPoint struct {
	x, y float64
}

// Junction 单路口仿真
// 功能：负责车辆生成、冲突区判定与移动、驶离车辆移除、信号灯推进与观测输出
// 说明：单线程使用，Step对调用方是原子的；不得在多个goroutine间共享
type Junction struct {
	rc *config.RuntimeConfig

	trafficLight ITrafficLight                                 // 信号灯模块
	vehicles     *container.IncrementalArray[*vehicle.Vehicle] // 在途车辆
	clock        *clock.Clock                                  // 已经过时间
	recorder     entity.IMetricsRecorder                       // 统计模块（可为nil）

	spawnPoints [entity.DirectionCount]spawnPoint // 各方向生成位置
	nextID      int32                             // 下一辆车的ID
	spawned     int32                             // 本回合生成车辆数

	generator *randengine.Engine
}

// New 创建路口仿真
// 功能：根据运行时配置初始化信号灯、车辆数组与生成位置
// 参数：rc-运行时配置，recorder-统计模块（可为nil）
// 返回：初始化完成的路口，初始相位为南北绿灯
// 说明：东向车辆从左侧可视边界外一个车长处进入，车道位于中心线上方四分之一道路宽度；
// 南向车辆从上方进入，车道位于中心线左侧四分之一道路宽度
func New(rc *config.RuntimeConfig, recorder entity.IMetricsRecorder) *Junction {
	g := rc.All.Geometry
	veh := rc.All.Vehicle
	j := &Junction{
		rc:           rc,
		trafficLight: trafficlight.New(rc.All.Signal.MinGreen),
		vehicles:     container.NewIncrementalArray[*vehicle.Vehicle](),
		clock:        clock.New(rc.C.Step),
		recorder:     recorder,
		generator:    randengine.New(rc.C.Seed),
	}
	j.spawnPoints[entity.DirectionEast] = spawnPoint{x: -veh.Length, y: rc.CY - g.RoadWidth/4}
	j.spawnPoints[entity.DirectionSouth] = spawnPoint{x: rc.CX - g.RoadWidth/4, y: -veh.Length}
	return j
}

// Step 推进一步
// 功能：按固定顺序完成一次仿真步
// 参数：requested-策略给出的期望相位，dt-本步经过的时间（秒）
// 返回：输入非法时返回错误且不修改任何状态
// 算法说明：
// 1. 信号灯时间记账，然后处理相位请求
// 2. 每个方向独立以生成概率尝试生成一辆车
// 3. 逐车进行冲突区判定，允许则前进，否则标记等待，并上报统计
// 4. 移除驶出可视区域边界以外的车辆，每移除一辆记一次通过
// 5. 推进时钟
func (j *Junction) Step(requested entity.Phase, dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("junction step: %w, got %v", ErrInvalidDT, dt)
	}
	if !requested.Valid() {
		return fmt.Errorf("junction step: %w, got %v", ErrInvalidPhase, requested)
	}

	j.trafficLight.Update(dt)
	j.trafficLight.RequestPhase(requested)

	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		if j.generator.PTrue(j.rc.C.SpawnProb) {
			j.Spawn(d)
		}
	}

	j.update(dt)
	j.evict()
	j.clock.Advance(dt)
	return nil
}

// Spawn 在指定方向的入口生成一辆车
// 功能：入口车道被同方向车辆占据时跳过（除非开启旧行为），新车立即加入在途车辆
// 参数：d-来向
// 返回：是否生成成功
func (j *Junction) Spawn(d entity.Direction) bool {
	if !d.Valid() {
		log.Panicf("spawn with invalid direction %v", d)
	}
	p := j.spawnPoints[d]
	veh := j.rc.All.Vehicle
	v := vehicle.New(j.nextID, d, p.x, p.y, veh.Speed, veh.Length, veh.Width)
	if !j.rc.C.LegacyOverlapSpawn {
		blocked := lo.ContainsBy(j.vehicles.Data(), func(o *vehicle.Vehicle) bool {
			return o.Direction() == d && o.Rect().Overlaps(v.Rect())
		})
		if blocked {
			log.Debugf("spawn %v skipped: entry lane occupied", d)
			return false
		}
	}
	j.nextID++
	j.spawned++
	j.vehicles.Add(v)
	j.vehicles.Prepare()
	log.Debugf("spawn %v", v)
	return true
}

// update 冲突区判定与移动
// 说明：按数组顺序逐车判定并立即更新位置，后判定的车辆看到的是本步已移动车辆的新位置
func (j *Junction) update(dt float64) {
	data := j.vehicles.Data()
	for _, v := range data {
		if CanMove(v, data, j.rc.Zone, j.trafficLight) {
			v.Move()
		} else {
			v.Hold()
		}
		if j.recorder != nil {
			j.recorder.Record(v.Waiting(), dt)
		}
	}
}

// evict 移除驶出可视区域边界以外的车辆
func (j *Junction) evict() {
	g := j.rc.All.Geometry
	m := g.EvictMargin
	removed := 0
	for _, v := range j.vehicles.Data() {
		x, y := v.X(), v.Y()
		if -m < x && x < g.WindowWidth+m && -m < y && y < g.WindowHeight+m {
			continue
		}
		j.vehicles.Remove(v)
		removed++
		if j.recorder != nil {
			j.recorder.VehiclePassed()
		}
	}
	if removed > 0 {
		j.vehicles.Prepare()
		log.Debugf("evict %d vehicles, %d remain", removed, j.vehicles.Len())
	}
}

// Observation 当前观测
// 功能：由车辆等待标记与信号灯计时重新计算，无副作用
func (j *Junction) Observation() entity.Observation {
	obs := entity.Observation{
		Phase:      j.trafficLight.Phase(),
		PhaseTimer: j.trafficLight.PhaseTimer(),
		T:          j.clock.T,
	}
	for d := entity.Direction(0); d < entity.DirectionCount; d++ {
		obs.Waiting[d] = int32(lo.CountBy(j.vehicles.Data(), func(v *vehicle.Vehicle) bool {
			return v.Direction() == d && v.Waiting()
		}))
		obs.RedTime[d] = j.trafficLight.RedTime(d)
	}
	return obs
}

// Reset 回合重置
// 功能：清空在途车辆，信号灯恢复南北绿灯并清零计时，时钟清零
// 说明：不重置统计模块，也不重置随机数引擎
func (j *Junction) Reset() {
	j.vehicles.Clear()
	j.trafficLight.Reset()
	j.clock.Init()
	j.spawned = 0
}

// SetRecorder 替换统计模块
func (j *Junction) SetRecorder(recorder entity.IMetricsRecorder) {
	j.recorder = recorder
}

// Vehicles 在途车辆（只读）
func (j *Junction) Vehicles() []*vehicle.Vehicle {
	return j.vehicles.Data()
}

// TrafficLight 信号灯只读接口
func (j *Junction) TrafficLight() ITrafficLightGetter {
	return j.trafficLight
}

// Clock 仿真时钟
func (j *Junction) Clock() *clock.Clock {
	return j.clock
}

// Zone 冲突区
func (j *Junction) Zone() geometry.Rect {
	return j.rc.Zone
}

// Spawned 本回合生成车辆数
func (j *Junction) Spawned() int32 {
	return j.spawned
}
