package task_test

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
	"github.com/tsinghua-fib-lab/crossroad-sim/task"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/config"
)

func TestSimulationSmoke(t *testing.T) {
	ctx := task.NewContext("test", config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 100000, Interval: 1.0 / 60},
		},
		Fleet: config.Fleet{CarsPerApproach: 2},
	})
	am := ctx.ApproachManager()
	cm := ctx.CarManager()
	assert.Len(t, cm.Cars(), 8)

	for i := 0; i < 500; i++ {
		assert.True(t, ctx.Step())

		// 两个通行轴不会同时获得路权
		nonRed := make(map[entity.Axis]bool)
		for _, a := range am.Approaches() {
			state, _ := a.Light()
			if state != entity.LightStateRed {
				nonRed[a.Axis()] = true
			}
		}
		assert.LessOrEqual(t, len(nonRed), 1)

		// 车辆注册表规模不变，状态统计完整
		assert.Len(t, cm.Cars(), 8)
		total := 0
		for _, n := range cm.StatusCounts() {
			total += n
		}
		assert.Equal(t, 8, total)
	}
}

func TestStepStopsAtEnd(t *testing.T) {
	ctx := task.NewContext("test", config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 10, Interval: 1},
		},
	})
	n := 0
	for ctx.Step() {
		n++
	}
	assert.Equal(t, 10, n)
	assert.Equal(t, ctx.Clock().END_STEP, ctx.Clock().InternalStep)
	// 到达结束步后不再推进
	assert.False(t, ctx.Step())
}

func TestRunMatchesStepInterval(t *testing.T) {
	ctx := task.NewContext("test", config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 10, Interval: 1},
		},
	})
	// Run与Step推进完全相同的步数区间[start, start+total)
	ctx.Run()
	assert.Equal(t, ctx.Clock().END_STEP, ctx.Clock().InternalStep)
	assert.InDelta(t, 10.0, ctx.Clock().T, 1e-9)
	// Run结束后任务已关闭，不再推进
	assert.False(t, ctx.Step())
}

func TestHeartbeatDisabled(t *testing.T) {
	assert.NoError(t, flag.Set("log.heartbeat_interval", "0"))
	defer flag.Set("log.heartbeat_interval", "100")

	ctx := task.NewContext("test", config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 300, Interval: 1},
		},
	})
	// 间隔为0时心跳关闭，跨过第100步也不会出错
	for i := 0; i < 150; i++ {
		assert.True(t, ctx.Step())
	}
}

func TestWatchUnknownCar(t *testing.T) {
	ctx := task.NewContext("test", config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 200, Interval: 1},
		},
	})
	// 观察不存在的车辆只产生日志告警，不影响推进
	ctx.SetWatch([]int32{1, 999})
	for i := 0; i < 100; i++ {
		assert.True(t, ctx.Step())
	}
}
