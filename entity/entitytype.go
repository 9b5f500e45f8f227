package entity

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/container"
)

// Direction 进口道方向
// 功能：标识车辆从哪个罗盘方向驶向路口
type Direction int32

const (
	DirectionNorth Direction = iota // 北进口
	DirectionSouth                  // 南进口
	DirectionEast                   // 东进口
	DirectionWest                   // 西进口
)

// Directions 全部进口道方向（固定遍历顺序，保证初始化与输出的确定性）
var Directions = [...]Direction{DirectionNorth, DirectionSouth, DirectionEast, DirectionWest}

func (d Direction) String() string {
	switch d {
	case DirectionNorth:
		return "north"
	case DirectionSouth:
		return "south"
	case DirectionEast:
		return "east"
	case DirectionWest:
		return "west"
	default:
		return "unknown"
	}
}

// Axis 获取方向所属的通行轴
// 功能：南北进口共享垂直轴，东西进口共享水平轴
func (d Direction) Axis() Axis {
	switch d {
	case DirectionNorth, DirectionSouth:
		return AxisVertical
	default:
		return AxisHorizontal
	}
}

// Axis 通行轴
// 功能：同一轴上的两个进口共享一个信控相位
type Axis int32

const (
	AxisHorizontal Axis = iota // 水平轴（东西）
	AxisVertical               // 垂直轴（南北）
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Other 获取另一个通行轴
func (a Axis) Other() Axis {
	if a == AxisHorizontal {
		return AxisVertical
	}
	return AxisHorizontal
}

// LightState 信号灯颜色状态
type LightState int32

const (
	LightStateRed    LightState = iota // 红灯
	LightStateYellow                   // 黄灯
	LightStateGreen                    // 绿灯
)

func (s LightState) String() string {
	switch s {
	case LightStateRed:
		return "red"
	case LightStateYellow:
		return "yellow"
	default:
		return "green"
	}
}

// TurnDirection 转向类型
type TurnDirection int32

const (
	TurnRight    TurnDirection = iota // 右转
	TurnLeft                          // 左转
	TurnStraight                      // 直行
)

func (t TurnDirection) String() string {
	switch t {
	case TurnRight:
		return "right"
	case TurnLeft:
		return "left"
	default:
		return "straight"
	}
}

// TurnPattern 转向的固定循环序列
// 说明：每个进口道按此序列轮转分配车辆重生后的转向
var TurnPattern = [...]TurnDirection{TurnRight, TurnLeft, TurnStraight}

// NextTurn 转向游标的状态转移
// 功能：根据当前游标得到本次分配的转向与推进后的游标
// 参数：cursor-当前游标
// 返回：分配的转向、下一个游标
// 说明：纯函数，取模保证任意输入都落回循环内
func NextTurn(cursor int32) (TurnDirection, int32) {
	n := int32(len(TurnPattern))
	cursor = (cursor%n + n) % n
	return TurnPattern[cursor], (cursor + 1) % n
}

// CarStatus 车辆显示状态
// 说明：waiting表示被信控/排队规则拦停，stopped特指被避撞检查拦停
type CarStatus int32

const (
	CarStatusWaiting CarStatus = iota // 等待（信控或排队规则拦停）
	CarStatusMoving                   // 行驶中
	CarStatusTurning                  // 路口内转向中
	CarStatusStopped                  // 被前车阻挡（避撞拦停）
)

func (s CarStatus) String() string {
	switch s {
	case CarStatusWaiting:
		return "waiting"
	case CarStatusMoving:
		return "moving"
	case CarStatusTurning:
		return "turning"
	default:
		return "stopped"
	}
}

// 车辆排队链表节点类型
type CarNode = container.ListNode[ICar]

// 车辆排队链表类型
type CarList = container.List[ICar]

// entity/car/car.go的依赖倒置
type ICar interface {
	// 自身属性

	ID() int32                // 获取车辆ID
	Direction() Direction     // 获取车辆所属进口道方向（创建后不变）
	Turn() TurnDirection      // 获取当前分配的转向
	XYZ() geometry.Point      // 获取车辆位置坐标
	Target() geometry.Point   // 获取当前目标点
	Heading() float64         // 获取朝向（弧度，atan2(z, x)）
	V() float64               // 获取当前速度
	Status() CarStatus        // 获取显示状态
	IsWaiting() bool          // 是否处于等待状态

	// print

	String() string
}

// entity/approach/approach.go的依赖倒置
type IApproach interface {
	// 静态属性

	Direction() Direction  // 进口道方向
	Axis() Axis            // 所属通行轴
	Spawn() geometry.Point // 出生点坐标
	SpawnHeading() float64 // 出生朝向（弧度）
	Travel() geometry.Point // 行进方向单位向量

	// 几何查询

	S(pos geometry.Point) float64                  // 行进轴上的进度坐标（路口中心为0）
	DistanceToStopLine(pos geometry.Point) float64 // 到停止线的剩余距离（过线后为负）
	Target(turn TurnDirection) (geometry.Point, float64) // 转向对应的目标点与驶出朝向

	// 信号灯缓存（由junction在Prepare阶段写入）

	SetLight(state LightState, remainingTime float64)
	Light() (LightState, float64)

	// 转向轮转游标（仅由重生策略推进）

	TakeNextTurn() TurnDirection

	// 初始化

	SetParentJunctionWhenInit(junction IJunction)
	Junction() IJunction

	// 排队

	AddCarWhenInit(node *CarNode)
	MoveCarToBack(node *CarNode)
	HeadWaitingCar() ICar // 队列中按入队顺序第一辆等待中的车
	Cars() *CarList

	// print

	String() string
}

// entity/junction/trafficlight的依赖倒置
type ITrafficLight interface {
	Prepare()
	Update(dt float64)

	ActiveAxis() Axis        // 当前具有路权的通行轴
	ColorPhase() LightState  // 当前相位颜色（信号灯关闭时恒为绿）
	RemainingTime() float64  // 当前相位剩余时间
	Step() int32             // 当前相位索引
	SetPhase(step int32, remainingT float64) // 设置相位（下一个更新周期生效）
	SetOk(ok bool)           // 设置信号灯开关状态
	Ok() bool                // 信号灯是否正常工作
}

// entity/junction/junction.go的依赖倒置
type IJunction interface {
	ID() int32
	TrafficLight() ITrafficLight
}
