package config

import (
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/intersim/utils/geometry"
	"gopkg.in/yaml.v2"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Default 返回默认配置
// 功能：800x800可视区域、80像素道路、40x20车辆、每步2.5像素、30步每秒
func Default() Config {
	return Config{
		Geometry: Geometry{
			WindowWidth:  800,
			WindowHeight: 800,
			RoadWidth:    80,
			EvictMargin:  200,
		},
		Vehicle: Vehicle{
			Length: 40,
			Width:  20,
			Speed:  2.5,
		},
		Signal: Signal{
			MinGreen: 3,
			MaxRed:   20,
		},
		Control: Control{
			Step:      ControlStep{Rate: 30, Total: 1000},
			Episodes:  1,
			Seed:      0,
			SpawnProb: 0.05,
			Policy:    Policy{Name: "rule", Cycle: 10},
		},
		Output: Output{
			DB:  "intersim",
			Col: "episodes",
		},
	}
}

// Load 解析YAML配置
// 功能：在默认配置之上覆盖YAML中给出的字段，并校验结果
// 参数：data-YAML文本
// 返回：解析后的配置，未知字段或非法取值返回错误
func Load(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate 校验配置取值
// 功能：检查几何、车辆、信号、步长参数为正，概率位于[0,1]
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"geometry.window_width", c.Geometry.WindowWidth},
		{"geometry.window_height", c.Geometry.WindowHeight},
		{"geometry.road_width", c.Geometry.RoadWidth},
		{"vehicle.length", c.Vehicle.Length},
		{"vehicle.width", c.Vehicle.Width},
		{"vehicle.speed", c.Vehicle.Speed},
		{"control.step.rate", c.Control.Step.Rate},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.Geometry.EvictMargin < 0 {
		return fmt.Errorf("%w: geometry.evict_margin must be >= 0", ErrInvalidConfig)
	}
	if c.Signal.MinGreen < 0 || c.Signal.MaxRed < 0 {
		return fmt.Errorf("%w: signal durations must be >= 0", ErrInvalidConfig)
	}
	if c.Control.SpawnProb < 0 || c.Control.SpawnProb > 1 {
		return fmt.Errorf("%w: control.spawn_prob must be in [0, 1], got %v", ErrInvalidConfig, c.Control.SpawnProb)
	}
	if c.Control.Step.Total <= 0 || c.Control.Episodes <= 0 {
		return fmt.Errorf("%w: control.step.total and control.episodes must be > 0", ErrInvalidConfig)
	}
	return nil
}

// RuntimeConfig 运行时配置
// 功能：保存原始配置以及由其推导出的路口中心、冲突区和默认步长
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置

	CX, CY float64       // 路口中心
	Zone   geometry.Rect // 冲突区
	DT     float64       // 默认步长（秒）
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：计算路口中心（可视区域中心）与冲突区（以中心为中心、边长为道路宽度的正方形）
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
func NewRuntimeConfig(config Config) *RuntimeConfig {
	cx := config.Geometry.WindowWidth / 2
	cy := config.Geometry.WindowHeight / 2
	return &RuntimeConfig{
		All:  config,
		C:    config.Control,
		CX:   cx,
		CY:   cy,
		Zone: geometry.NewCenteredRect(cx, cy, config.Geometry.RoadWidth, config.Geometry.RoadWidth),
		DT:   1 / config.Control.Step.Rate,
	}
}
