package task

import (
	"flag"
	"sync"
)

const (
	SelfName = "crossroad" // 本程序在模拟任务集群中的名字
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数（非正值关闭心跳）")
)

// prepare 准备阶段，每步执行一次
// 功能：在每个仿真步骤开始时进行准备工作
// 算法说明：
// 1. 更新时钟：增加内部步数并计算当前时间
// 2. 心跳日志：定期输出系统状态信息与被观察车辆详情
// 3. 并行准备：并发执行各个管理器的准备操作
//   - 路口管理器：发布信号灯快照并把灯色下发到进口道
//   - 车辆管理器：发布车辆快照
//
// 说明：确保所有系统组件在更新阶段前都处于正确状态
func (ctx *Context) prepare() {
	ctx.clock.InternalStep++
	ctx.clock.T = float64(ctx.clock.InternalStep) * ctx.clock.DT

	// 间隔配为非正值时关闭心跳
	if hb := int32(*heartBeatInterval); hb > 0 && ctx.clock.InternalStep%hb == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		log.Infof(
			"STEP: %d(%d:%d:%.2f) cars: %v",
			ctx.clock.InternalStep,
			hour, minute, second,
			ctx.carManager.StatusCounts(),
		)
		if len(ctx.watchIDs) > 0 {
			cars, failedIDs := ctx.carManager.GetMany(ctx.watchIDs)
			for _, c := range cars {
				log.Infof("watch %v", c)
			}
			if len(failedIDs) > 0 {
				log.Warnf("watch: no cars %v", failedIDs)
			}
		}
	}

	// Prepare
	var wg sync.WaitGroup
	{
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx.junctionManager.Prepare() // junction
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx.carManager.Prepare() // car
		}()
		wg.Wait()
	}
}

// update 更新阶段，每步执行一次
// 功能：在每个仿真步骤中执行主要的仿真逻辑
// 算法说明：
// 1. 路口管理器：推进信号灯相位倒计时
// 2. 车辆管理器：执行车辆决策与运动
//
// 说明：车辆在本步看到的灯色来自准备阶段发布的快照，
// 信号灯倒计时只写运行时状态，两者不会读写冲突
func (ctx *Context) update() {
	var wg sync.WaitGroup
	{
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx.junctionManager.Update(ctx.clock.DT) // junction
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx.carManager.Update(ctx.clock.DT) // car
		}()
	}
	wg.Wait()
}

// Step 单步推进仿真
// 功能：执行一个完整的准备+更新周期，供外部驱动程序（如可视化界面）调用
// 返回：是否仍可继续推进
func (ctx *Context) Step() bool {
	if ctx.closed.Load() || ctx.clock.InternalStep >= ctx.clock.END_STEP {
		return false
	}
	ctx.prepare()
	ctx.update()
	return true
}
