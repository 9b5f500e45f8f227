package junction

import (
	"fmt"

	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity/junction/trafficlight"
)

// Junction 路口实体
// 功能：表示四路交叉口，持有四个进口道与信号灯控制器
type Junction struct {
	ctx entity.ITaskContext

	id           int32
	approaches   []entity.IApproach   // 进口道数据
	trafficLight entity.ITrafficLight // 信号灯模块
}

// newJunction 创建并初始化一个新的Junction实例
// 功能：创建Junction对象，建立进口道归属关系并初始化固定相位信控
// 参数：ctx-任务上下文，id-路口ID，approaches-进口道列表
// 返回：初始化完成的Junction实例
func newJunction(ctx entity.ITaskContext, id int32, approaches []entity.IApproach) *Junction {
	j := &Junction{
		ctx:        ctx,
		id:         id,
		approaches: approaches,
	}
	for _, a := range approaches {
		a.SetParentJunctionWhenInit(j)
	}
	j.trafficLight = trafficlight.NewLocalTrafficLight(ctx, id, approaches)
	return j
}

func (j *Junction) String() string {
	return fmt.Sprintf("Junction{id=%d, axis=%v, color=%v}",
		j.id, j.trafficLight.ActiveAxis(), j.trafficLight.ColorPhase())
}

// prepare 准备阶段，将信号灯相位写入进口道
func (j *Junction) prepare() {
	j.trafficLight.Prepare()
}

// update 更新阶段，推进信号灯相位
// 参数：dt-时间步长
func (j *Junction) update(dt float64) {
	j.trafficLight.Update(dt)
}

// ID 获取路口ID
func (j *Junction) ID() int32 {
	return j.id
}

// TrafficLight 获取路口的信号灯控制器
func (j *Junction) TrafficLight() entity.ITrafficLight {
	return j.trafficLight
}
