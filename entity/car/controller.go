package car

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
)

// controller 车辆决策控制器
// 功能：实现每步的放行判定、匀速运动与邻车避撞检查
type controller struct {
	// 控制器保持的参数

	self              *Car    // 模块所在车辆
	speed             float64 // 匀速行驶速度
	safeDistance      float64 // 与其他非等待车辆的最小安全间距
	halfWidth         float64 // 路口半宽
	stopLineTolerance float64 // 停止线判定容差
}

// newController 创建新的车辆决策控制器
// 参数：self-车辆实体
// 返回：初始化完成的控制器实例
func newController(self *Car) *controller {
	rc := self.ctx.RuntimeConfig()
	return &controller{
		self:              self,
		speed:             rc.Vehicle.Speed,
		safeDistance:      rc.Vehicle.SafeDistance,
		halfWidth:         rc.Geometry.HalfWidth,
		stopLineTolerance: rc.Geometry.StopLineTolerance,
	}
}

// update 执行一步决策与运动
// 功能：按固定顺序评估放行规则，放行则尝试运动，否则拦停
// 参数：dt-时间步长
// 说明：车辆从等待转入放行时，按(direction, turn)查找表重算目标点
func (c *controller) update(dt float64) {
	r := &c.self.runtime
	if c.allowMove() {
		if r.IsWaiting {
			r.IsWaiting = false
			r.Target, _ = c.self.approach.Target(r.Turn)
		}
		c.move(dt)
	} else {
		r.IsWaiting = true
		r.Status = entity.CarStatusWaiting
		r.V = 0
	}
}

// allowMove 放行判定
// 功能：按顺序评估放行规则，首条命中即生效
// 返回：true表示本步允许运动
// 规则顺序：
//  1. 已越过路口近端边界的车辆无条件放行，避免车辆冻结在路口内部。
//     注意这里没有路口占用锁：本轴车辆驶入后另一轴转绿时，
//     穿行中的车辆依然继续行驶，仅靠邻车间距检查兜底。
//  2. 排队首车在本进口绿灯且全局相位为绿时放行。
//  3. 非绿灯但距停止线仍超过容差的车辆继续向前滚动（模拟靠近排队，
//     而不是在远处急停）。
//  4. 其余情况拦停。
func (c *controller) allowMove() bool {
	self := c.self
	r := self.runtime
	a := self.approach

	// 规则1：已进入或越过路口范围
	if a.S(r.Position) > -c.halfWidth {
		return true
	}
	lightState, _ := a.Light()
	// 规则2：排队首车 + 本进口绿灯 + 全局相位为绿
	if lightState == entity.LightStateGreen &&
		c.schedulerColor() == entity.LightStateGreen &&
		a.HeadWaitingCar() == entity.ICar(self) {
		return true
	}
	// 规则3：非绿灯但尚未到达停止线
	if lightState != entity.LightStateGreen &&
		a.DistanceToStopLine(r.Position) > c.stopLineTolerance {
		return true
	}
	return false
}

// schedulerColor 获取全局信控相位颜色
// 说明：进口道找不到所属路口时退化为进口道自身的灯色，保证确定性
func (c *controller) schedulerColor() entity.LightState {
	j := c.self.approach.Junction()
	if j == nil {
		state, _ := c.self.approach.Light()
		return state
	}
	return j.TrafficLight().ColorPhase()
}

// move 匀速运动一步
// 功能：沿当前位置指向目标点的直线方向前进speed*dt，提交前对所有
// 其他非等待车辆做间距检查
// 参数：dt-时间步长
// 说明：候选位置与任一活动车辆的间距小于安全距离时视为碰撞，
// 本步不移动并置为stopped状态（区别于waiting：车辆想动但被邻车阻挡，
// 之后每步都会重试）；检查按注册表顺序进行，后算的车观察到先算车
// 已提交的位置
func (c *controller) move(dt float64) {
	r := &c.self.runtime
	dx := r.Target.X - r.Position.X
	dz := r.Target.Z - r.Position.Z
	length := math.Hypot(dx, dz)
	if length == 0 {
		r.V = 0
		r.Status = entity.CarStatusMoving
		return
	}
	ux, uz := dx/length, dz/length
	candidate := geometry.Point{
		X: r.Position.X + ux*c.speed*dt,
		Y: r.Position.Y,
		Z: r.Position.Z + uz*c.speed*dt,
	}

	// 邻车间距检查
	for _, other := range c.self.m.cars {
		if other == c.self || other.runtime.IsWaiting {
			continue
		}
		ox := candidate.X - other.runtime.Position.X
		oz := candidate.Z - other.runtime.Position.Z
		if math.Hypot(ox, oz) < c.safeDistance {
			r.V = 0
			r.Status = entity.CarStatusStopped
			return
		}
	}

	r.Position = candidate
	r.Heading = math.Atan2(uz, ux)
	r.V = c.speed
	if r.Turn != entity.TurnStraight && c.insideJunction(candidate) {
		r.Status = entity.CarStatusTurning
	} else {
		r.Status = entity.CarStatusMoving
	}
}

// insideJunction 判断位置是否处于路口范围内
func (c *controller) insideJunction(pos geometry.Point) bool {
	return math.Abs(pos.X) < c.halfWidth && math.Abs(pos.Z) < c.halfWidth
}
