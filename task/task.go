package task

import (
	"sync/atomic"

	"github.com/tsinghua-fib-lab/crossroad-sim/clock"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity/approach"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity/car"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity/junction"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/config"
)

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态，替代原来的全局变量
// 说明：管理仿真系统的所有组件，包括时钟、管理器、配置等
type Context struct {

	// 任务名
	job string
	// 关闭指令
	closed atomic.Bool

	// 时钟
	clock *clock.Clock

	// Approach管理器
	approachManager entity.IApproachManager
	// Junction管理器
	junctionManager entity.IJunctionManager
	// Car管理器
	carManager entity.ICarManager

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig

	// 被观察车辆ID列表，每次心跳时输出其详细状态
	watchIDs []int32
}

// NewContext 创建新的仿真任务上下文
// 功能：初始化仿真系统的所有组件和配置
// 参数：job-任务名称，c-配置对象
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 创建Context实例并设置基本属性
// 2. 初始化时钟与运行时配置
// 3. 创建各类管理器（进口道、路口、车辆）
// 4. 按依赖顺序初始化：进口道 -> 路口 -> 车辆
func NewContext(job string, c config.Config) *Context {
	ctx := &Context{
		job: job,
	}
	ctx.clock = clock.New(c.Control.Step)
	ctx.runtimeConfig = config.NewRuntimeConfig(c)

	// 新建各类模拟对象
	ctx.approachManager = approach.NewManager(ctx)
	ctx.junctionManager = junction.NewManager(ctx)
	ctx.carManager = car.NewManager(ctx)

	ctx.Init()

	return ctx
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) ApproachManager() entity.IApproachManager {
	return ctx.approachManager
}

func (ctx *Context) JunctionManager() entity.IJunctionManager {
	return ctx.junctionManager
}

func (ctx *Context) CarManager() entity.ICarManager {
	return ctx.carManager
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// SetWatch 设置被观察车辆
// 功能：指定一组车辆ID，心跳日志时输出其详细状态
// 参数：ids-车辆ID列表
func (ctx *Context) SetWatch(ids []int32) {
	ctx.watchIDs = ids
}

// Init 初始化仿真世界
// 说明：进口道几何先行，路口依赖进口道，车辆依赖两者
func (ctx *Context) Init() {
	ctx.clock.Init()

	ctx.approachManager.Init() // 先完成进口道几何的所有初始化
	// 路口依赖进口道，车辆依赖两者
	ctx.junctionManager.Init(ctx.approachManager)
	ctx.carManager.Init(ctx.approachManager)

	log.Infof("Approach: %v", len(ctx.approachManager.Approaches()))
	log.Infof("Car: %v", len(ctx.carManager.Cars()))
}

// Run 运行
// 功能：执行主循环直到到达结束步数或收到关闭指令
// 说明：与可视化驱动共用Step，保证两种宿主模拟完全相同的步数区间
func (ctx *Context) Run() {
	for ctx.Step() {
	}
	log.Infof("engine complete")
	ctx.Close()
}

// Close 关闭任务
func (ctx *Context) Close() {
	if ctx.closed.Load() {
		return
	}
	ctx.closed.Store(true)
}
