package config

// Geometry 路口几何配置
// 功能：定义可视区域、道路与车辆驱逐边界
// 说明：坐标采用屏幕坐标系（原点在左上角，y轴向下），单位为像素
type Geometry struct {
	WindowWidth  float64 `yaml:"window_width"`  // 可视区域宽度
	WindowHeight float64 `yaml:"window_height"` // 可视区域高度
	RoadWidth    float64 `yaml:"road_width"`    // 道路宽度，同时是冲突区边长
	EvictMargin  float64 `yaml:"evict_margin"`  // 车辆驶出可视区域超过该距离后被移除
}

// Vehicle 车辆属性配置
// 功能：所有车辆共享同一组尺寸与速度（不支持异构车辆）
type Vehicle struct {
	Length float64 `yaml:"length"` // 车长（沿行驶方向）
	Width  float64 `yaml:"width"`  // 车宽（垂直于行驶方向）
	Speed  float64 `yaml:"speed"`  // 每步位移
}

// Signal 信号灯配置
type Signal struct {
	MinGreen float64 `yaml:"min_green"` // 最短绿灯时间（秒）
	MaxRed   float64 `yaml:"max_red"`   // 公平性上限：有车等待的方向最长红灯时间（秒）
}

// ControlStep 指定模拟步长与每回合步数
type ControlStep struct {
	Rate  float64 `yaml:"rate"`  // 每秒步数，用于推导默认dt
	Total int32   `yaml:"total"` // 每回合总步数
}

// Policy 信控策略配置
type Policy struct {
	Name  string  `yaml:"name"`            // 策略名称：rule | fixed
	Cycle float64 `yaml:"cycle,omitempty"` // fixed策略的相位切换周期（秒）
}

// Control 模拟器控制配置
// 功能：定义回合、随机种子、车辆生成与信控策略
type Control struct {
	Step               ControlStep `yaml:"step"`
	Episodes           int32       `yaml:"episodes"`                       // 回合数
	Seed               uint64      `yaml:"seed"`                           // 随机种子
	SpawnProb          float64     `yaml:"spawn_prob"`                     // 每个方向每步生成车辆的概率
	LegacyOverlapSpawn bool        `yaml:"legacy_overlap_spawn,omitempty"` // 不检查入口车道是否空闲（保持旧行为）
	Policy             Policy      `yaml:"policy"`
}

// Output 输出配置
// 功能：回合汇总写入MongoDB、逐步观测写入msgpack轨迹文件，均为可选
type Output struct {
	URI       string `yaml:"uri,omitempty"`        // MongoDB连接字符串，为空则不写库
	DB        string `yaml:"db,omitempty"`         // 数据库名
	Col       string `yaml:"col,omitempty"`        // 集合名
	TraceFile string `yaml:"trace_file,omitempty"` // 轨迹文件路径，为空则不输出
}

// Config YAML配置文件的根结构
type Config struct {
	Geometry Geometry `yaml:"geometry"`
	Vehicle  Vehicle  `yaml:"vehicle"`
	Signal   Signal   `yaml:"signal"`
	Control  Control  `yaml:"control"`
	Output   Output   `yaml:"output,omitempty"`
}
