package config

// 默认参数，未在配置文件中给出的字段按此取值
const (
	DefaultGreen             = 8   // 绿灯默认时长（秒）
	DefaultYellow            = 3   // 黄灯默认时长（秒）
	DefaultSpeed             = 8.1 // 车辆默认速度（单位/秒）
	DefaultSafeDistance      = 2.0 // 默认安全间距
	DefaultHalfWidth         = 4.0 // 路口默认半宽
	DefaultLaneOffset        = 2.0 // 车道默认偏移
	DefaultExitThreshold     = 16.0
	DefaultStopLineTolerance = 0.5
	DefaultArriveTolerance   = 1.0
	DefaultCarsPerApproach   = 1
	DefaultSpawnGap          = 6.0
)

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息，所有默认值已填充完毕
// 说明：将YAML配置转换为运行时可用的配置对象
type RuntimeConfig struct {
	All Config // 全部配置（原始值）

	C        Control  // 全局控制配置
	Signal   Signal   // 信控配置
	Vehicle  Vehicle  // 车辆配置
	Geometry Geometry // 几何配置
	Fleet    Fleet    // 车队配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，对缺省字段填充默认值
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	rc.All = config
	rc.C = config.Control
	rc.Signal = config.Signal
	rc.Vehicle = config.Vehicle
	rc.Geometry = config.Geometry
	rc.Fleet = config.Fleet

	if rc.Signal.Green <= 0 {
		rc.Signal.Green = DefaultGreen
	}
	if rc.Signal.Yellow <= 0 {
		rc.Signal.Yellow = DefaultYellow
	}
	if rc.Vehicle.Speed <= 0 {
		rc.Vehicle.Speed = DefaultSpeed
	}
	if rc.Vehicle.SafeDistance <= 0 {
		rc.Vehicle.SafeDistance = DefaultSafeDistance
	}
	if rc.Geometry.HalfWidth <= 0 {
		rc.Geometry.HalfWidth = DefaultHalfWidth
	}
	if rc.Geometry.LaneOffset <= 0 {
		rc.Geometry.LaneOffset = DefaultLaneOffset
	}
	if rc.Geometry.ExitThreshold <= 0 {
		rc.Geometry.ExitThreshold = DefaultExitThreshold
	}
	if rc.Geometry.StopLineTolerance <= 0 {
		rc.Geometry.StopLineTolerance = DefaultStopLineTolerance
	}
	if rc.Geometry.ArriveTolerance <= 0 {
		rc.Geometry.ArriveTolerance = DefaultArriveTolerance
	}
	if rc.Fleet.CarsPerApproach <= 0 {
		rc.Fleet.CarsPerApproach = DefaultCarsPerApproach
	}
	if rc.Fleet.SpawnGap <= 0 {
		rc.Fleet.SpawnGap = DefaultSpawnGap
	}

	return rc
}

// Default 获取默认配置
// 功能：产生一份可以直接运行的配置，供未指定配置文件的场景（如可视化工具）使用
// 返回：默认配置对象
func Default() Config {
	return Config{
		Control: Control{
			Step: ControlStep{
				Start:    0,
				Total:    36000,
				Interval: 1.0 / 60,
			},
		},
	}
}
