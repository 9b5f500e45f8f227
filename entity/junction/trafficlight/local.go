package trafficlight

import (
	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
)

// phase 信控相位
// 功能：描述一个相位内具有路权的通行轴、对应颜色与持续时长
type phase struct {
	axis     entity.Axis       // 具有路权的通行轴
	color    entity.LightState // 该轴信号灯显示的颜色
	duration float64           // 相位时长（秒）
}

// tlRuntime 信号灯运行时数据结构
// 功能：存储固定相位信号灯的运行时状态
type tlRuntime struct {
	step       int32   // 当前相位索引
	totalTime  float64 // 当前相位总时长
	remainingT float64 // 当前相位剩余时间
}

// localTrafficLight 本地固定相位信号灯控制器
// 功能：实现基于固定程序的信号灯控制，按照预设的相位顺序和时间进行切换
// 说明：程序固定为 水平绿→水平黄→垂直绿→垂直黄 四相位循环，
// 黄灯结束直接进入另一轴的绿灯，不存在持续的全红间隔；
// 非当前轴的进口道在每个Prepare阶段被置为红灯
type localTrafficLight struct {
	ctx entity.ITaskContext

	JunctionID int32               // 所属junction ID
	approaches []entity.IApproach  // 进口道数据

	phases   []phase    // 固定相位程序
	snapshot tlRuntime  // snapshot，用于保存输出的数据
	runtime  tlRuntime  // 运行时数据
	buffer   *tlRuntime // 数据buffer，用于交互式接口写入(optional)
	ok       bool       // 信号灯状态，true为开启，false为关闭
	okBuffer bool       // 信号灯状态buffer，用于交互式接口写入
}

// NewLocalTrafficLight 创建固定相位信号灯控制器
// 功能：初始化本地信号灯控制器，根据配置生成四相位程序
// 参数：ctx-任务上下文，junctionID-路口ID，approaches-进口道列表
// 返回：初始化完成的本地信号灯控制器实例
// 说明：初始相位为(水平轴, 绿灯)，满配剩余时间
func NewLocalTrafficLight(ctx entity.ITaskContext, junctionID int32, approaches []entity.IApproach) *localTrafficLight {
	s := ctx.RuntimeConfig().Signal
	phases := []phase{
		{axis: entity.AxisHorizontal, color: entity.LightStateGreen, duration: s.Green},
		{axis: entity.AxisHorizontal, color: entity.LightStateYellow, duration: s.Yellow},
		{axis: entity.AxisVertical, color: entity.LightStateGreen, duration: s.Green},
		{axis: entity.AxisVertical, color: entity.LightStateYellow, duration: s.Yellow},
	}
	l := &localTrafficLight{
		ctx:        ctx,
		JunctionID: junctionID,
		approaches: approaches,
		phases:     phases,
		runtime: tlRuntime{
			step:       0,
			totalTime:  phases[0].duration,
			remainingT: phases[0].duration,
		},
		ok:       true,
		okBuffer: true,
	}
	l.snapshot = l.runtime
	return l
}

// Prepare 准备阶段，处理信号灯的准备工作
// 功能：更新信号灯状态，将当前相位信息写入各进口道
// 说明：当前轴的进口道写入相位颜色，其余进口道写入红灯；
// 信号灯关闭时所有进口道保持全绿灯状态
func (l *localTrafficLight) Prepare() {
	// 更新信号灯状态
	l.ok = l.okBuffer
	if l.buffer != nil {
		l.runtime = *l.buffer
		l.buffer = nil
	}
	// 写入snapshot
	l.snapshot = l.runtime
	// 写入进口道中数据
	if !l.ok {
		for _, a := range l.approaches {
			a.SetLight(entity.LightStateGreen, mathutil.INF)
		}
	} else {
		p := l.phases[l.snapshot.step]
		for _, a := range l.approaches {
			if a.Axis() == p.axis {
				a.SetLight(p.color, l.snapshot.remainingT)
			} else {
				a.SetLight(entity.LightStateRed, l.snapshot.remainingT)
			}
		}
	}
}

// Update 更新阶段，执行固定相位信号灯的核心逻辑
// 功能：按照预设程序进行相位切换
// 参数：dt-时间步长
// 说明：剩余时间递减至零后循环推进相位索引，零时长相位被跳过
func (l *localTrafficLight) Update(dt float64) {
	if !l.ok {
		return
	}

	l.runtime.remainingT -= dt
	// 切换相位
	if l.runtime.remainingT <= 0 {
		l.runtime.remainingT = 0
		l.runtime.totalTime = 0
		for {
			l.runtime.step = (l.runtime.step + 1) % int32(len(l.phases))
			l.runtime.remainingT += l.phases[l.runtime.step].duration
			if l.runtime.remainingT > 0 {
				l.runtime.totalTime = l.runtime.remainingT
				break
			}
		}
	}
}

// SetPhase 设置信号灯相位
// 功能：设置当前相位索引和剩余时间
// 参数：step-相位索引，remainingT-剩余时间
// 说明：相位设置会延迟到下一个更新周期生效
func (l *localTrafficLight) SetPhase(step int32, remainingT float64) {
	step = (step%int32(len(l.phases)) + int32(len(l.phases))) % int32(len(l.phases))
	l.buffer = &tlRuntime{
		step:       step,
		totalTime:  l.phases[step].duration,
		remainingT: remainingT,
	}
}

// SetOk 设置信号灯状态
// 功能：设置信号灯的开关状态
// 参数：ok-信号灯状态，true表示正常工作，false表示失效（全绿灯）
func (l *localTrafficLight) SetOk(ok bool) {
	l.okBuffer = ok
}

// Ok 获取信号灯状态
// 返回：true表示正常工作，false表示失效
func (l *localTrafficLight) Ok() bool {
	return l.ok
}

// Step 获取当前相位索引
func (l *localTrafficLight) Step() int32 {
	return l.snapshot.step
}

// ActiveAxis 获取当前具有路权的通行轴
func (l *localTrafficLight) ActiveAxis() entity.Axis {
	return l.phases[l.snapshot.step].axis
}

// ColorPhase 获取当前相位颜色
// 说明：信号灯关闭时恒为绿，保证全绿退化模式下车辆仍可放行
func (l *localTrafficLight) ColorPhase() entity.LightState {
	if !l.ok {
		return entity.LightStateGreen
	}
	return l.phases[l.snapshot.step].color
}

// RemainingTime 获取当前相位剩余时间
func (l *localTrafficLight) RemainingTime() float64 {
	return l.snapshot.remainingT
}
