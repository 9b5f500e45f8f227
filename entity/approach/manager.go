package approach

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
)

// ApproachManager 进口道管理器
// 功能：管理四个进口道实体，提供按方向查找的能力
type ApproachManager struct {
	ctx entity.ITaskContext

	data       map[entity.Direction]*Approach
	approaches []*Approach
}

// NewManager 创建进口道管理器实例
// 参数：ctx-任务上下文
// 返回：新创建的进口道管理器实例
func NewManager(ctx entity.ITaskContext) *ApproachManager {
	return &ApproachManager{
		ctx:        ctx,
		data:       make(map[entity.Direction]*Approach),
		approaches: make([]*Approach, 0),
	}
}

// Init 初始化四个进口道
// 功能：按固定方向顺序创建进口道，建立方向映射关系
func (m *ApproachManager) Init() {
	m.approaches = lo.Map(entity.Directions[:], func(d entity.Direction, _ int) *Approach {
		return newApproach(m.ctx, d)
	})
	m.data = lo.SliceToMap(m.approaches, func(a *Approach) (entity.Direction, *Approach) {
		return a.direction, a
	})
}

// Get 根据方向获取进口道实例
// 功能：通过方向查找对应的进口道对象，如果不存在则panic
// 参数：direction-进口道方向
// 返回：对应的进口道实例
func (m *ApproachManager) Get(direction entity.Direction) entity.IApproach {
	if a, ok := m.data[direction]; !ok {
		log.Panicf("no direction %v in approach data", direction)
		return nil
	} else {
		return a
	}
}

// GetOrError 根据方向获取进口道实例（带错误处理）
// 参数：direction-进口道方向
// 返回：进口道实例和错误信息，如果不存在则返回nil和错误
func (m *ApproachManager) GetOrError(direction entity.Direction) (entity.IApproach, error) {
	if a, ok := m.data[direction]; !ok {
		return nil, fmt.Errorf("no direction %v in approach data", direction)
	} else {
		return a, nil
	}
}

// Approaches 获取所有进口道
// 返回：按固定方向顺序排列的进口道列表
func (m *ApproachManager) Approaches() []entity.IApproach {
	return lo.Map(m.approaches, func(a *Approach, _ int) entity.IApproach { return a })
}
