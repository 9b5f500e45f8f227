package approach

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
)

// Approach 进口道实体
// 功能：描述一条驶向路口的车道，包含出生点、行进方向、停止线几何、
// 转向目标查找表、信号灯状态缓存与车辆排队链表
// 说明：路口中心位于原点，进度坐标S以行进方向为正、中心为0，
// 出生点位于S=-exitThreshold，停止线位于S=-halfWidth
type Approach struct {
	ctx entity.ITaskContext

	direction entity.Direction // 进口道方向
	spawn     geometry.Point   // 出生点
	travel    geometry.Point   // 行进方向单位向量
	heading   float64          // 出生朝向（弧度）

	halfWidth     float64 // 路口半宽
	laneOffset    float64 // 车道偏移
	exitThreshold float64 // 车道末端距离

	junction entity.IJunction // 所属路口

	// 信号灯状态缓存，由junction在Prepare阶段写入
	lightState         entity.LightState
	lightRemainingTime float64

	// 转向轮转游标，仅由重生策略通过TakeNextTurn推进
	nextTurnIndex int32

	cars entity.CarList // 车辆排队链表（队首为最早入队）
}

// travelOf 获取方向对应的行进单位向量
// 说明：北进口车辆向+Z行驶，南向-Z，东向-X，西向+X
func travelOf(direction entity.Direction) geometry.Point {
	switch direction {
	case entity.DirectionNorth:
		return geometry.Point{Z: 1}
	case entity.DirectionSouth:
		return geometry.Point{Z: -1}
	case entity.DirectionEast:
		return geometry.Point{X: -1}
	default:
		return geometry.Point{X: 1}
	}
}

// perpRight 获取水平面内向量的右垂直向量
func perpRight(v geometry.Point) geometry.Point {
	return geometry.Point{X: v.Z, Z: -v.X}
}

// laneLineOffset 获取沿朝向h行驶的车道相对道路轴线的偏移向量
// 说明：所有车道位于行进方向的左侧laneOffset处，
// 由此得到北(-2,*)、南(+2,*)、东(*,-2)、西(*,+2)的车道布局
func (a *Approach) laneLineOffset(h geometry.Point) geometry.Point {
	r := perpRight(h)
	return geometry.Point{X: -r.X * a.laneOffset, Z: -r.Z * a.laneOffset}
}

// newApproach 创建并初始化一个进口道
// 功能：根据方向与几何配置计算出生点、朝向与车道线
// 参数：ctx-任务上下文，direction-进口道方向
// 返回：初始化完成的进口道实例
func newApproach(ctx entity.ITaskContext, direction entity.Direction) *Approach {
	g := ctx.RuntimeConfig().Geometry
	a := &Approach{
		ctx:                ctx,
		direction:          direction,
		travel:             travelOf(direction),
		halfWidth:          g.HalfWidth,
		laneOffset:         g.LaneOffset,
		exitThreshold:      g.ExitThreshold,
		lightState:         entity.LightStateRed,
		lightRemainingTime: 0,
	}
	offset := a.laneLineOffset(a.travel)
	a.spawn = geometry.Point{
		X: -a.travel.X*a.exitThreshold + offset.X,
		Z: -a.travel.Z*a.exitThreshold + offset.Z,
	}
	a.heading = math.Atan2(a.travel.Z, a.travel.X)
	return a
}

func (a *Approach) String() string {
	return fmt.Sprintf("Approach{%v, spawn=%v, light=%v}", a.direction, a.spawn, a.lightState)
}

// Direction 获取进口道方向
func (a *Approach) Direction() entity.Direction {
	return a.direction
}

// Axis 获取所属通行轴
func (a *Approach) Axis() entity.Axis {
	return a.direction.Axis()
}

// Spawn 获取出生点坐标
func (a *Approach) Spawn() geometry.Point {
	return a.spawn
}

// SpawnHeading 获取出生朝向（弧度）
func (a *Approach) SpawnHeading() float64 {
	return a.heading
}

// Travel 获取行进方向单位向量
func (a *Approach) Travel() geometry.Point {
	return a.travel
}

// S 计算位置在行进轴上的进度坐标
// 功能：以路口中心为原点、行进方向为正方向投影
// 参数：pos-世界坐标
// 返回：进度坐标（出生点为-exitThreshold，停止线为-halfWidth）
func (a *Approach) S(pos geometry.Point) float64 {
	return pos.X*a.travel.X + pos.Z*a.travel.Z
}

// DistanceToStopLine 计算位置到停止线的剩余距离
// 返回：剩余距离，过线后为负值
func (a *Approach) DistanceToStopLine(pos geometry.Point) float64 {
	return -a.halfWidth - a.S(pos)
}

// Target 查询转向对应的目标点与驶出朝向
// 功能：固定查找表，(direction, turn)对映射到一个目的地坐标与最终朝向
// 参数：turn-转向类型
// 返回：目标点坐标、驶出朝向（弧度）
// 说明：直行沿本车道线行驶到对侧车道末端；左右转的目标点位于
// 驶出道路的车道线与车道末端距离的交点
func (a *Approach) Target(turn entity.TurnDirection) (geometry.Point, float64) {
	var h geometry.Point
	switch turn {
	case entity.TurnRight:
		h = perpRight(a.travel)
	case entity.TurnLeft:
		r := perpRight(a.travel)
		h = geometry.Point{X: -r.X, Z: -r.Z}
	default:
		h = a.travel
	}
	offset := a.laneLineOffset(h)
	target := geometry.Point{
		X: h.X*a.exitThreshold + offset.X,
		Z: h.Z*a.exitThreshold + offset.Z,
	}
	return target, math.Atan2(h.Z, h.X)
}

// SetLight 写入信号灯状态缓存
// 参数：state-颜色状态，remainingTime-当前相位剩余时间
func (a *Approach) SetLight(state entity.LightState, remainingTime float64) {
	a.lightState = state
	a.lightRemainingTime = remainingTime
}

// Light 读取信号灯状态缓存
// 返回：颜色状态、当前相位剩余时间
func (a *Approach) Light() (entity.LightState, float64) {
	return a.lightState, a.lightRemainingTime
}

// TakeNextTurn 按固定循环分配下一个转向
// 功能：读取游标得到转向并推进游标（模3）
// 返回：本次分配的转向
// 说明：状态转移本身是纯函数entity.NextTurn，这里仅保存游标
func (a *Approach) TakeNextTurn() entity.TurnDirection {
	turn, next := entity.NextTurn(a.nextTurnIndex)
	a.nextTurnIndex = next
	return turn
}

// SetParentJunctionWhenInit 设置进口道所属的路口
func (a *Approach) SetParentJunctionWhenInit(junction entity.IJunction) {
	a.junction = junction
}

// Junction 获取进口道所属的路口
func (a *Approach) Junction() entity.IJunction {
	return a.junction
}

// AddCarWhenInit 初始化时将车辆节点加入队尾
func (a *Approach) AddCarWhenInit(node *entity.CarNode) {
	a.cars.PushBack(node)
}

// MoveCarToBack 将车辆节点移动到队尾
// 说明：车辆重生回出生点后重新排队
func (a *Approach) MoveCarToBack(node *entity.CarNode) {
	a.cars.MoveToBack(node)
}

// HeadWaitingCar 获取排队首车
// 功能：按入队顺序返回第一辆处于等待状态的车
// 返回：首车，队列中没有等待车辆时返回nil
func (a *Approach) HeadWaitingCar() entity.ICar {
	for node := a.cars.First(); node != nil; node = node.Next() {
		if node.Value.IsWaiting() {
			return node.Value
		}
	}
	return nil
}

// Cars 获取车辆排队链表
func (a *Approach) Cars() *entity.CarList {
	return &a.cars
}
