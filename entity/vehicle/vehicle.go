package vehicle

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/intersim/entity"
	"github.com/tsinghua-fib-lab/intersim/utils/container"
	"github.com/tsinghua-fib-lab/intersim/utils/geometry"
)

var log = logrus.WithField("module", "vehicle")

// Vehicle 车辆实体
// 功能：保存单辆车的位置、速度、来向、尺寸与等待状态
// 说明：车辆不会自行移动，位移由路口在冲突区判定允许后施加；速度沿来向的坐标轴，另一轴恒为0
type Vehicle struct {
	container.IncrementalItemBase // 在路口车辆数组中的索引

	id        int32
	x, y      float64          // 包围盒左上角
	vx, vy    float64          // 每步位移
	direction entity.Direction // 来向
	length    float64          // 车长（沿行驶方向）
	width     float64          // 车宽
	waiting   bool             // 本步是否被禁止前进，每步覆盖
}

// New 创建车辆
// 功能：根据来向设置运动轴，东向沿x轴正方向，南向沿y轴正方向
// 参数：id-车辆ID，direction-来向，x,y-包围盒左上角，speed-每步位移，length,width-尺寸
// 返回：新车辆，尚未加入任何车辆数组
func New(id int32, direction entity.Direction, x, y, speed, length, width float64) *Vehicle {
	if !direction.Valid() {
		log.Panicf("vehicle %d: invalid direction %v", id, direction)
	}
	if speed <= 0 || length <= 0 || width <= 0 {
		log.Panicf("vehicle %d: speed %v length %v width %v must be positive", id, speed, length, width)
	}
	v := &Vehicle{
		id:        id,
		x:         x,
		y:         y,
		direction: direction,
		length:    length,
		width:     width,
	}
	v.SetIndex(-1)
	switch direction {
	case entity.DirectionEast:
		v.vx = speed
	case entity.DirectionSouth:
		v.vy = speed
	}
	return v
}

// Rect 当前包围盒
// 功能：包围盒沿行驶方向为车长，垂直方向为车宽
func (v *Vehicle) Rect() geometry.Rect {
	if v.direction == entity.DirectionEast {
		return geometry.Rect{X: v.x, Y: v.y, W: v.length, H: v.width}
	}
	return geometry.Rect{X: v.x, Y: v.y, W: v.width, H: v.length}
}

// NextRect 前进一步后的包围盒
func (v *Vehicle) NextRect() geometry.Rect {
	return v.Rect().Move(v.vx, v.vy)
}

// Move 施加一步位移并清除等待标记
func (v *Vehicle) Move() {
	v.x += v.vx
	v.y += v.vy
	v.waiting = false
}

// Hold 本步保持不动并标记为等待
func (v *Vehicle) Hold() {
	v.waiting = true
}

func (v *Vehicle) ID() int32 {
	return v.id
}

func (v *Vehicle) X() float64 {
	return v.x
}

func (v *Vehicle) Y() float64 {
	return v.y
}

// Velocity 每步位移(vx, vy)
func (v *Vehicle) Velocity() (float64, float64) {
	return v.vx, v.vy
}

func (v *Vehicle) Direction() entity.Direction {
	return v.direction
}

func (v *Vehicle) Waiting() bool {
	return v.waiting
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle{%d %v (%.2f,%.2f) waiting=%v}", v.id, v.direction, v.x, v.y, v.waiting)
}
