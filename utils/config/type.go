package config

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
// 说明：控制仿真的时间范围、步长和精度
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
type Control struct {
	Step ControlStep `yaml:"step"`
}

// Signal 信号灯配置
// 功能：定义固定相位信控的绿灯与黄灯时长
// 说明：完整周期 = 2 * (green + yellow)，两个通行轴交替获得路权
type Signal struct {
	Green  float64 `yaml:"green,omitempty"`  // 绿灯时长（秒）
	Yellow float64 `yaml:"yellow,omitempty"` // 黄灯时长（秒）
}

// Vehicle 车辆配置
// 功能：定义车辆运动与避撞参数
type Vehicle struct {
	Speed        float64 `yaml:"speed,omitempty"`         // 匀速行驶速度（单位/秒）
	SafeDistance float64 `yaml:"safe_distance,omitempty"` // 两辆非等待车之间的最小安全间距
}

// Geometry 路口几何配置
// 功能：定义路口区域与车道的固定几何常数
// 说明：路口中心位于原点，所有量均为世界坐标单位
type Geometry struct {
	HalfWidth         float64 `yaml:"half_width,omitempty"`          // 路口半宽（停止线到中心的距离）
	LaneOffset        float64 `yaml:"lane_offset,omitempty"`         // 车道中心线相对道路轴线的偏移
	ExitThreshold     float64 `yaml:"exit_threshold,omitempty"`      // 车道末端（出生点/消失点）到中心的距离
	StopLineTolerance float64 `yaml:"stop_line_tolerance,omitempty"` // 停止线判定容差
	ArriveTolerance   float64 `yaml:"arrive_tolerance,omitempty"`    // 到达目标点判定容差
}

// Fleet 车队配置
// 功能：定义每个进口道上的车辆数量与初始间隔
type Fleet struct {
	CarsPerApproach int32   `yaml:"cars_per_approach,omitempty"` // 每个进口道的车辆数
	SpawnGap        float64 `yaml:"spawn_gap,omitempty"`         // 初始排队时前后车的间隔
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
type Config struct {
	Control  Control  `yaml:"control"`            // 模拟过程控制
	Signal   Signal   `yaml:"signal,omitempty"`   // 信控参数
	Vehicle  Vehicle  `yaml:"vehicle,omitempty"`  // 车辆参数
	Geometry Geometry `yaml:"geometry,omitempty"` // 路口几何参数
	Fleet    Fleet    `yaml:"fleet,omitempty"`    // 车队参数
}
