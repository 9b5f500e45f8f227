package car

import (
	"math"

	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
)

// exited 判断车辆是否已越过车道末端
// 功能：车道末端检测，命中后触发重生
// 返回：true表示本步应当重生
// 判定条件（任一满足）：
//  1. 行进轴上的进度越过出口阈值（直行驶出对侧）；
//  2. 已进入过路口（进度越过近端边界）且任一坐标越过出口阈值
//     （转向后沿另一轴驶出）——进入前的判定排除了排在出生点之后、
//     坐标天然越界的排队车辆；
//  3. 南北直行车辆到达目标点容差范围内（历史行为，保留）。
func (c *Car) exited() bool {
	g := c.ctx.RuntimeConfig().Geometry
	r := c.runtime
	s := c.approach.S(r.Position)
	if s >= g.ExitThreshold {
		return true
	}
	if s > -g.HalfWidth &&
		(math.Abs(r.Position.X) >= g.ExitThreshold || math.Abs(r.Position.Z) >= g.ExitThreshold) {
		return true
	}
	if !r.IsWaiting && r.Turn == entity.TurnStraight && c.direction.Axis() == entity.AxisVertical {
		dx := r.Target.X - r.Position.X
		dz := r.Target.Z - r.Position.Z
		if math.Hypot(dx, dz) <= g.ArriveTolerance {
			return true
		}
	}
	return false
}

// respawn 重生策略
// 功能：将驶离车道的车辆送回其进口道的固定出生点并重新排队
// 说明：
//   - 位置与朝向恢复为出生点与出生朝向，目标点置为出生点（空闲目标）；
//   - 重新进入等待状态；
//   - 通过进口道的轮转游标分配新转向，使转向分配按[right, left, straight]
//     确定性轮转，每个进口道独立；
//   - 找不到所属路口（信号灯）时确定性地退化为循环首项（右转）；
//   - 排队链表节点移动到队尾。
func (c *Car) respawn() {
	a := c.approach
	turn := entity.TurnPattern[0]
	if a.Junction() != nil {
		turn = a.TakeNextTurn()
	}
	c.runtime = runtime{
		Position:  a.Spawn(),
		Target:    a.Spawn(),
		Heading:   a.SpawnHeading(),
		V:         0,
		Turn:      turn,
		IsWaiting: true,
		Status:    entity.CarStatusWaiting,
	}
	a.MoveCarToBack(c.node)
}
