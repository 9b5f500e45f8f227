package car

import (
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/crossroad-sim/clock"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity/approach"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity/junction"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/config"
)

// testContext 测试用的任务上下文，仅组装车辆决策所需的管理器
type testContext struct {
	clock *clock.Clock
	rc    *config.RuntimeConfig
	am    entity.IApproachManager
	jm    entity.IJunctionManager
	cm    entity.ICarManager
}

func (ctx *testContext) Clock() *clock.Clock { return ctx.clock }

func (ctx *testContext) ApproachManager() entity.IApproachManager { return ctx.am }

func (ctx *testContext) JunctionManager() entity.IJunctionManager { return ctx.jm }

func (ctx *testContext) CarManager() entity.ICarManager { return ctx.cm }

func (ctx *testContext) RuntimeConfig() *config.RuntimeConfig { return ctx.rc }

func newTestContext(c config.Config) *testContext {
	ctx := &testContext{
		clock: clock.New(c.Control.Step),
		rc:    config.NewRuntimeConfig(c),
	}
	ctx.am = approach.NewManager(ctx)
	ctx.jm = junction.NewManager(ctx)
	ctx.cm = NewManager(ctx)
	ctx.am.Init()
	ctx.jm.Init(ctx.am)
	ctx.cm.Init(ctx.am)
	return ctx
}

// step 推进一步：准备+更新
func (ctx *testContext) step() {
	ctx.jm.Prepare()
	ctx.cm.Prepare()
	ctx.jm.Update(ctx.clock.DT)
	ctx.cm.Update(ctx.clock.DT)
}

// car 获取指定进口道上第slot个创建的车辆
func (ctx *testContext) car(direction entity.Direction, slot int) *Car {
	i := 0
	for _, c := range ctx.cm.(*CarManager).cars {
		if c.direction == direction {
			if i == slot {
				return c
			}
			i++
		}
	}
	return nil
}

func testConfig(carsPerApproach int32, interval, speed float64) config.Config {
	return config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 100000, Interval: interval},
		},
		Vehicle: config.Vehicle{Speed: speed},
		Fleet:   config.Fleet{CarsPerApproach: carsPerApproach},
	}
}

func TestFreeRunAndRespawn(t *testing.T) {
	// 速度4、步长1秒，每步位移恰好为4，便于断言
	ctx := newTestContext(testConfig(1, 1, 4))
	c := ctx.car(entity.DirectionEast, 0)

	// 手动放入路口内部，直行驶向对侧车道末端
	c.runtime.IsWaiting = false
	c.runtime.Turn = entity.TurnStraight
	c.runtime.Position = geometry.Point{X: 2, Z: -2}
	c.runtime.Target, _ = c.approach.Target(entity.TurnStraight)

	// 路口内的车辆无条件放行，沿直线匀速行驶
	for _, wantX := range []float64{-2, -6, -10, -14} {
		ctx.step()
		assert.InDelta(t, wantX, c.runtime.Position.X, 1e-9)
		assert.InDelta(t, -2.0, c.runtime.Position.Z, 1e-9)
		assert.Equal(t, entity.CarStatusMoving, c.runtime.Status)
		assert.InDelta(t, 4.0, c.runtime.V, 1e-9)
	}

	// 越过车道末端后当步重生回出生点，重新进入等待状态
	ctx.step()
	assert.Equal(t, geometry.Point{X: 16, Z: -2}, c.runtime.Position)
	assert.Equal(t, c.runtime.Position, c.runtime.Target)
	assert.True(t, c.runtime.IsWaiting)
	assert.Equal(t, entity.CarStatusWaiting, c.runtime.Status)
	assert.InDelta(t, 0.0, c.runtime.V, 1e-9)
}

func TestCrossingCarIgnoresRedLight(t *testing.T) {
	ctx := newTestContext(testConfig(1, 1, 4))
	c := ctx.car(entity.DirectionEast, 0)

	// 切到垂直绿相位并给足剩余时间，东进口全程红灯
	ctx.jm.Main().TrafficLight().SetPhase(2, 100)

	// 车辆已越过路口近端边界
	c.runtime.IsWaiting = false
	c.runtime.Turn = entity.TurnStraight
	c.runtime.Position = geometry.Point{X: 2, Z: -2}
	c.runtime.Target, _ = c.approach.Target(entity.TurnStraight)

	// 红灯不会把路口内的车辆置回等待状态，穿越持续到车道末端
	for _, wantX := range []float64{-2, -6, -10, -14} {
		ctx.step()
		state, _ := c.approach.Light()
		assert.Equal(t, entity.LightStateRed, state)
		assert.False(t, c.runtime.IsWaiting)
		assert.Equal(t, entity.CarStatusMoving, c.runtime.Status)
		assert.InDelta(t, wantX, c.runtime.Position.X, 1e-9)
	}

	// 完成穿越后正常重生
	ctx.step()
	assert.Equal(t, geometry.Point{X: 16, Z: -2}, c.runtime.Position)
	assert.True(t, c.runtime.IsWaiting)
}

func TestTrailingCarBlocked(t *testing.T) {
	ctx := newTestContext(testConfig(2, 1, 4))
	leader := ctx.car(entity.DirectionEast, 0)
	trailer := ctx.car(entity.DirectionEast, 1)

	target, _ := leader.approach.Target(entity.TurnStraight)
	for _, c := range []*Car{leader, trailer} {
		c.runtime.IsWaiting = false
		c.runtime.Turn = entity.TurnStraight
		c.runtime.Target = target
	}
	leader.runtime.Position = geometry.Point{X: 0, Z: -2}
	trailer.runtime.Position = geometry.Point{X: 1.5, Z: -2}

	// 后车的候选位置与前车已提交的新位置间距不足，本步被拦停
	ctx.step()
	assert.InDelta(t, -4.0, leader.runtime.Position.X, 1e-9)
	assert.InDelta(t, 1.5, trailer.runtime.Position.X, 1e-9)
	assert.Equal(t, entity.CarStatusStopped, trailer.runtime.Status)
	assert.False(t, trailer.runtime.IsWaiting) // 被邻车阻挡不等于等待
	assert.InDelta(t, 0.0, trailer.runtime.V, 1e-9)

	// 前车驶远后，后车下一步恢复行驶
	ctx.step()
	assert.InDelta(t, -2.5, trailer.runtime.Position.X, 1e-9)
	assert.Equal(t, entity.CarStatusMoving, trailer.runtime.Status)
}

func TestOpposingCarsKeepSafeDistance(t *testing.T) {
	// 默认速度与1/60步长，两车相向而行
	ctx := newTestContext(testConfig(1, 1.0/60, 0))
	a := ctx.car(entity.DirectionEast, 0)
	b := ctx.car(entity.DirectionWest, 0)

	a.runtime.IsWaiting = false
	a.runtime.Position = geometry.Point{X: 1.5, Z: 0}
	a.runtime.Target = geometry.Point{X: -16, Z: 0}
	b.runtime.IsWaiting = false
	b.runtime.Position = geometry.Point{X: -1.5, Z: 0}
	b.runtime.Target = geometry.Point{X: 16, Z: 0}

	for i := 0; i < 10; i++ {
		ctx.step()
	}

	// 两车在安全距离处拦停，既不重叠也不穿越
	safe := ctx.rc.Vehicle.SafeDistance
	gap := a.runtime.Position.X - b.runtime.Position.X
	assert.GreaterOrEqual(t, gap, safe)
	assert.Equal(t, entity.CarStatusStopped, a.runtime.Status)
	assert.Equal(t, entity.CarStatusStopped, b.runtime.Status)
	assert.False(t, a.runtime.IsWaiting)
	assert.False(t, b.runtime.IsWaiting)
}

func TestRespawnRotation(t *testing.T) {
	ctx := newTestContext(testConfig(2, 1, 0))
	a := ctx.am.Get(entity.DirectionNorth)
	c0 := ctx.car(entity.DirectionNorth, 0)
	c1 := ctx.car(entity.DirectionNorth, 1)

	// 初始分配按轮转：队首right、次车left
	assert.Equal(t, entity.TurnRight, c0.runtime.Turn)
	assert.Equal(t, entity.TurnLeft, c1.runtime.Turn)

	// 重生继续推进同一游标
	c0.respawn()
	assert.Equal(t, entity.TurnStraight, c0.runtime.Turn)
	assert.Equal(t, geometry.Point{X: -2, Z: -16}, c0.runtime.Position)
	assert.Equal(t, c0.runtime.Position, c0.runtime.Target)
	assert.True(t, c0.runtime.IsWaiting)
	assert.Equal(t, entity.CarStatusWaiting, c0.runtime.Status)

	// 重生车辆排到队尾
	assert.Equal(t, entity.ICar(c1), a.Cars().First().Value)
	assert.Equal(t, entity.ICar(c0), a.Cars().Last().Value)

	c0.respawn()
	assert.Equal(t, entity.TurnRight, c0.runtime.Turn)
}

func TestGreenReleasesHeadOfQueue(t *testing.T) {
	// 初始相位为水平绿，东进口排队
	ctx := newTestContext(testConfig(3, 1.0/60, 0))
	c0 := ctx.car(entity.DirectionEast, 0)
	c1 := ctx.car(entity.DirectionEast, 1)
	c2 := ctx.car(entity.DirectionEast, 2)

	// 每步只放行快照中的排队首车；上一步放行、尚未过停止线的车
	// 在下一步重新回到等待状态，队首因此交替推进
	ctx.step()
	assert.False(t, c0.runtime.IsWaiting)
	assert.True(t, c1.runtime.IsWaiting)
	assert.True(t, c2.runtime.IsWaiting)

	ctx.step()
	assert.True(t, c0.runtime.IsWaiting)
	assert.False(t, c1.runtime.IsWaiting)
	assert.True(t, c2.runtime.IsWaiting)

	ctx.step()
	assert.False(t, c0.runtime.IsWaiting)
	assert.True(t, c1.runtime.IsWaiting)
	assert.True(t, c2.runtime.IsWaiting)
}

func TestNorthStraightArrival(t *testing.T) {
	ctx := newTestContext(testConfig(1, 1.0/60, 0))
	c := ctx.car(entity.DirectionNorth, 0)

	// 直行车辆接近目标点，容差内触发到达判定
	target, _ := c.approach.Target(entity.TurnStraight)
	c.runtime.IsWaiting = false
	c.runtime.Turn = entity.TurnStraight
	c.runtime.Target = target
	c.runtime.Position = geometry.Point{X: -2, Z: 15.5}

	ctx.step()
	assert.Equal(t, geometry.Point{X: -2, Z: -16}, c.runtime.Position)
	assert.True(t, c.runtime.IsWaiting)
	// 重生时通过轮转分配新转向
	assert.Equal(t, entity.TurnLeft, c.runtime.Turn)
	assert.Equal(t, entity.ICar(c), c.approach.Cars().Last().Value)
}