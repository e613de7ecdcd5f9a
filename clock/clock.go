package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/intersim/utils/config"
)

// Clock 仿真时钟
// 功能：累计仿真已经过的时间与步数，为外部调用方提供默认步长
// 说明：每步的实际dt由调用方传入，可以与默认步长不同
type Clock struct {
	DT       float64 // 默认步长（秒），由每秒步数推导
	END_STEP int32   // 每回合结束步，模拟区间[0, END)

	T            float64 // 当前时间（秒）
	InternalStep int32   // 当前步数
}

// New 根据配置创建新的时钟实例
// 功能：由每秒步数计算默认步长，并记录每回合总步数
// 参数：stepConfig-控制步配置
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:       1 / stepConfig.Rate,
		END_STEP: stepConfig.Total,
	}
	c.Init()
	return c
}

// Init 重置时钟状态
// 功能：步数与时间清零，用于回合开始
func (c *Clock) Init() {
	c.InternalStep = 0
	c.T = 0
}

// Advance 推进时钟
// 功能：时间累加dt，步数加一
// 参数：dt-本步经过的时间（秒）
func (c *Clock) Advance(dt float64) {
	c.T += dt
	c.InternalStep++
}

// Done 当前回合是否已经走完全部步数
func (c *Clock) Done() bool {
	return c.END_STEP > 0 && c.InternalStep >= c.END_STEP
}

// String 获取时钟的字符串表示
// 功能：将当前时间格式化为HH:MM:SS
func (c *Clock) String() string {
	h, m, s := c.GetHourMinuteSecond()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, int(s))
}

// GetHourMinuteSecond 获取当前时间的小时、分钟、秒
// 返回：小时、分钟、秒（秒为浮点数，支持亚秒级精度）
func (c *Clock) GetHourMinuteSecond() (int, int, float64) {
	hour := int(c.T) / 3600
	minute := int(c.T) % 3600 / 60
	second := c.T - float64(hour*3600+minute*60)
	return hour, minute, second
}
