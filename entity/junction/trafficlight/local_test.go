package trafficlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
	"github.com/tsinghua-fib-lab/crossroad-sim/task"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/config"
)

// 以1秒步长构建仿真上下文，便于按整数步数断言相位
func newTestContext() *task.Context {
	c := config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 1000, Interval: 1},
		},
	}
	return task.NewContext("test", c)
}

func TestPhaseSequence(t *testing.T) {
	ctx := newTestContext()
	tl := ctx.JunctionManager().Main().TrafficLight()

	type obs struct {
		axis  entity.Axis
		color entity.LightState
	}
	seq := make(map[int32]obs)
	for i := int32(1); i <= 23; i++ {
		ctx.Step()
		seq[i] = obs{tl.ActiveAxis(), tl.ColorPhase()}
	}

	// 默认程序：水平绿8s -> 水平黄3s -> 垂直绿8s -> 垂直黄3s，周期22s
	for i := int32(1); i <= 8; i++ {
		assert.Equal(t, obs{entity.AxisHorizontal, entity.LightStateGreen}, seq[i], "step %d", i)
	}
	for i := int32(9); i <= 11; i++ {
		assert.Equal(t, obs{entity.AxisHorizontal, entity.LightStateYellow}, seq[i], "step %d", i)
	}
	for i := int32(12); i <= 19; i++ {
		assert.Equal(t, obs{entity.AxisVertical, entity.LightStateGreen}, seq[i], "step %d", i)
	}
	for i := int32(20); i <= 22; i++ {
		assert.Equal(t, obs{entity.AxisVertical, entity.LightStateYellow}, seq[i], "step %d", i)
	}
	// 一个周期后回到水平绿
	assert.Equal(t, obs{entity.AxisHorizontal, entity.LightStateGreen}, seq[23])
}

func TestAxisMutualExclusion(t *testing.T) {
	ctx := newTestContext()
	am := ctx.ApproachManager()

	for i := 0; i < 100; i++ {
		ctx.Step()

		// 任意时刻至多一个轴不是红灯
		nonRed := make(map[entity.Axis]bool)
		for _, a := range am.Approaches() {
			state, _ := a.Light()
			if state != entity.LightStateRed {
				nonRed[a.Axis()] = true
			}
		}
		assert.LessOrEqual(t, len(nonRed), 1)

		// 同轴两个进口道灯色一致
		n, _ := am.Get(entity.DirectionNorth).Light()
		s, _ := am.Get(entity.DirectionSouth).Light()
		assert.Equal(t, n, s)
		e, _ := am.Get(entity.DirectionEast).Light()
		w, _ := am.Get(entity.DirectionWest).Light()
		assert.Equal(t, e, w)
	}
}

func TestSignalOff(t *testing.T) {
	ctx := newTestContext()
	tl := ctx.JunctionManager().Main().TrafficLight()

	// 关闭信号灯，下一个准备阶段生效
	tl.SetOk(false)
	ctx.Step()
	assert.False(t, tl.Ok())
	assert.Equal(t, entity.LightStateGreen, tl.ColorPhase())
	for _, a := range ctx.ApproachManager().Approaches() {
		state, remaining := a.Light()
		assert.Equal(t, entity.LightStateGreen, state)
		assert.Greater(t, remaining, 1e6)
	}

	// 重新开启
	tl.SetOk(true)
	ctx.Step()
	assert.True(t, tl.Ok())
}

func TestSetPhase(t *testing.T) {
	ctx := newTestContext()
	tl := ctx.JunctionManager().Main().TrafficLight()

	// 直接切到垂直绿相位，剩余5秒
	tl.SetPhase(2, 5)
	ctx.Step()
	assert.Equal(t, int32(2), tl.Step())
	assert.Equal(t, entity.AxisVertical, tl.ActiveAxis())
	assert.Equal(t, entity.LightStateGreen, tl.ColorPhase())
	assert.InDelta(t, 5.0, tl.RemainingTime(), 1e-9)

	// 相位索引取模
	tl.SetPhase(5, 2)
	ctx.Step()
	assert.Equal(t, int32(1), tl.Step())
	assert.Equal(t, entity.LightStateYellow, tl.ColorPhase())
}
