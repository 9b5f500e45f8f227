package car

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
)

// runtime 车辆运行时数据
// 功能：记录位置、目标、朝向、速度、转向与状态
// 说明：runtime由决策引擎在update阶段顺序写入，snapshot在prepare阶段
// 发布，供渲染与排队查询读取
type runtime struct {
	Position  geometry.Point       // 当前位置
	Target    geometry.Point       // 当前目标点（等待时为出生点，即空闲目标）
	Heading   float64              // 朝向（弧度）
	V         float64              // 当前速度
	Turn      entity.TurnDirection // 本轮分配的转向
	IsWaiting bool                 // 是否被信控/排队规则拦停
	Status    entity.CarStatus     // 显示状态
}

// Car 车辆实体
// 功能：表示在固定进口道上循环行驶的车辆
// 说明：方向在创建后不再变化；车辆到达车道末端后原地重生，
// 注册表规模在仿真全程保持不变
type Car struct {
	ctx entity.ITaskContext
	m   *CarManager

	// 静态属性
	id        int32
	direction entity.Direction
	approach  entity.IApproach

	controller *controller     // 车辆决策控制器
	node       *entity.CarNode // 进口道排队链表节点

	// 运行时基本数据
	runtime  runtime // 运行时数据
	snapshot runtime // 快照
}

// newCar 创建并初始化一个新的Car实例
// 功能：根据进口道与队列槽位创建车辆，置为等待状态并加入排队链表
// 参数：ctx-任务上下文，m-车辆管理器，id-车辆ID，approach-所属进口道，slot-队列槽位
// 返回：初始化完成的Car实例
// 说明：slot>0的车辆按spawn_gap依次排在出生点之后；初始转向
// 同样通过进口道的轮转游标分配
func newCar(ctx entity.ITaskContext, m *CarManager, id int32, approach entity.IApproach, slot int32) *Car {
	gap := ctx.RuntimeConfig().Fleet.SpawnGap
	spawn := approach.Spawn()
	travel := approach.Travel()
	pos := geometry.Point{
		X: spawn.X - travel.X*gap*float64(slot),
		Z: spawn.Z - travel.Z*gap*float64(slot),
	}
	c := &Car{
		ctx:       ctx,
		m:         m,
		id:        id,
		direction: approach.Direction(),
		approach:  approach,
		runtime: runtime{
			Position:  pos,
			Target:    pos,
			Heading:   approach.SpawnHeading(),
			Turn:      approach.TakeNextTurn(),
			IsWaiting: true,
			Status:    entity.CarStatusWaiting,
		},
	}
	c.snapshot = c.runtime
	c.controller = newController(c)
	c.node = &entity.CarNode{Value: c}
	approach.AddCarWhenInit(c.node)
	return c
}

func (c *Car) String() string {
	return fmt.Sprintf("Car{id=%d, %v, turn=%v, pos=(%.2f, %.2f), status=%v}",
		c.id, c.direction, c.snapshot.Turn, c.snapshot.Position.X, c.snapshot.Position.Z, c.snapshot.Status)
}

// prepare 准备阶段，发布快照
func (c *Car) prepare() {
	c.snapshot = c.runtime
}

// update 更新阶段，执行车辆的决策与运动逻辑
// 参数：dt-时间步长
// 说明：位置更新后检测是否越过车道末端，越界车辆当步重生而不再前进
func (c *Car) update(dt float64) {
	c.controller.update(dt)
	if c.exited() {
		c.respawn()
	}
}

// ID 获取车辆ID
func (c *Car) ID() int32 {
	return c.id
}

// Direction 获取车辆所属进口道方向
func (c *Car) Direction() entity.Direction {
	return c.direction
}

// Turn 获取当前分配的转向
func (c *Car) Turn() entity.TurnDirection {
	return c.snapshot.Turn
}

// XYZ 获取车辆位置坐标
func (c *Car) XYZ() geometry.Point {
	return c.snapshot.Position
}

// Target 获取当前目标点
func (c *Car) Target() geometry.Point {
	return c.snapshot.Target
}

// Heading 获取车辆朝向（弧度）
func (c *Car) Heading() float64 {
	return c.snapshot.Heading
}

// V 获取当前速度
func (c *Car) V() float64 {
	return c.snapshot.V
}

// Status 获取显示状态
func (c *Car) Status() entity.CarStatus {
	return c.snapshot.Status
}

// IsWaiting 是否处于等待状态
func (c *Car) IsWaiting() bool {
	return c.snapshot.IsWaiting
}
