package junction

import (
	"github.com/tsinghua-fib-lab/intersim/entity/vehicle"
	"github.com/tsinghua-fib-lab/intersim/utils/geometry"
)

// CanMove 冲突区通行判定
// 功能：判断车辆本步能否前进一个步长位移
// 参数：v-待判定车辆，vehicles-全部在途车辆（可包含v本身），zone-冲突区，light-信号灯状态
// 返回：true表示允许前进
// 算法说明：
// 1. 车辆已与冲突区重叠：总是放行，保证区内车辆能够驶离
// 2. 有其他车辆与冲突区重叠（冲突区被占用）：只有下一步不进入冲突区时才放行，与信号相位无关
// 3. 冲突区空闲：下一步不进入冲突区则自由行驶；要进入则只有本方向为绿灯时放行
// 说明：冲突区相当于单占用临界区，占用期间同方向车辆也不能进入（车队通行效率偏低，保留该行为）；
// 该判定只做几何检查，不处理同车道跟驰，排队车辆会在停车线处重叠
func CanMove(v *vehicle.Vehicle, vehicles []*vehicle.Vehicle, zone geometry.Rect, light ITrafficLightGetter) bool {
	if v.Rect().Overlaps(zone) {
		return true
	}
	willEnter := v.NextRect().Overlaps(zone)
	if zoneOccupied(v, vehicles, zone) {
		return !willEnter
	}
	if !willEnter {
		return true
	}
	return light.IsGreen(v.Direction())
}

// zoneOccupied 除self外是否有车辆与冲突区重叠
func zoneOccupied(self *vehicle.Vehicle, vehicles []*vehicle.Vehicle, zone geometry.Rect) bool {
	for _, other := range vehicles {
		if other == self {
			continue
		}
		if other.Rect().Overlaps(zone) {
			return true
		}
	}
	return false
}
