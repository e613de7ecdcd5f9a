// 随机数引擎，包装了golang.org/x/exp/rand，提供车辆生成所需的伯努利采样
package randengine

import (
	"flag"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎（非线程安全）
// 功能：在固定种子下产生可复现的随机序列
// 说明：仿真是单线程的，引擎归属于唯一的路口实例，不需要加锁
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 功能：以seed加上种子偏移量初始化随机数源
// 参数：seed-随机数种子
// 返回：随机数引擎指针
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// PTrue 以指定概率返回true
// 功能：伯努利采样，p<=0时恒为false，p>=1时恒为true
// 参数：p-返回true的概率
func (e *Engine) PTrue(p float64) bool {
	if p <= 0 {
		return false
	}
	return e.Float64() < p
}
