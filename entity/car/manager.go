package car

import (
	"fmt"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils"
)

// CarManager 车辆管理器（注册表）
// 功能：持有仿真全程固定不变的车队，提供创建、查找、准备、更新等功能
// 说明：管理器是车辆位置与状态的唯一写入方；车辆不会被删除，
// 驶离车道的车辆通过重生策略回到出生点
type CarManager struct {
	ctx entity.ITaskContext

	data map[int32]*Car
	cars []*Car
}

// NewManager 创建车辆管理器实例
// 参数：ctx-任务上下文
// 返回：新创建的车辆管理器实例
func NewManager(ctx entity.ITaskContext) *CarManager {
	return &CarManager{
		ctx:  ctx,
		data: make(map[int32]*Car),
		cars: make([]*Car, 0),
	}
}

// Init 初始化车队
// 功能：按固定方向顺序在每个进口道上创建配置数量的车辆，建立ID映射
// 参数：approachManager-进口道管理器
// 说明：同一进口道的车辆按槽位顺序入队，槽位0紧贴出生点、排在队首
func (m *CarManager) Init(approachManager entity.IApproachManager) {
	carsPerApproach := m.ctx.RuntimeConfig().Fleet.CarsPerApproach
	nextCarID := int32(1)
	for _, direction := range entity.Directions {
		a := approachManager.Get(direction)
		for slot := int32(0); slot < carsPerApproach; slot++ {
			c := newCar(m.ctx, m, nextCarID, a, slot)
			m.cars = append(m.cars, c)
			nextCarID++
		}
	}
	m.data = lo.SliceToMap(m.cars, func(c *Car) (int32, *Car) {
		return c.id, c
	})
	log.Infof("init %d cars on %d approaches", len(m.cars), len(entity.Directions))
}

// Get 根据ID获取Car实例
// 功能：通过车辆ID查找对应的Car对象，如果不存在则panic
// 参数：id-车辆的唯一标识符
// 返回：对应的Car实例
func (m *CarManager) Get(id int32) entity.ICar {
	if c, ok := m.data[id]; !ok {
		log.Panicf("no id %d in car data", id)
		return nil
	} else {
		return c
	}
}

// GetOrError 根据ID获取Car实例（带错误处理）
// 参数：id-车辆的唯一标识符
// 返回：Car实例和错误信息，如果不存在则返回nil和错误
func (m *CarManager) GetOrError(id int32) (entity.ICar, error) {
	if c, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in car data", id)
	} else {
		return c, nil
	}
}

// GetMany 批量查找车辆
// 功能：找出指定ID对应的车辆，ID列表为空则返回全部
// 参数：ids-车辆ID列表
// 返回：查找到的车辆列表、未找到的ID列表
func (m *CarManager) GetMany(ids []int32) ([]entity.ICar, []int32) {
	okData, failedIDs := utils.Find(m.data, m.cars, ids)
	return lo.Map(okData, func(c *Car, _ int) entity.ICar { return c }), failedIDs
}

// Cars 获取全部车辆
// 返回：按注册表顺序排列的车辆列表
func (m *CarManager) Cars() []entity.ICar {
	return lo.Map(m.cars, func(c *Car, _ int) entity.ICar { return c })
}

// StatusCounts 统计各显示状态的车辆数量
// 返回：状态到数量的映射
func (m *CarManager) StatusCounts() map[entity.CarStatus]int {
	return lo.CountValuesBy(m.cars, func(c *Car) entity.CarStatus {
		return c.snapshot.Status
	})
}

// Prepare 准备阶段，发布所有车辆的快照
// 说明：快照只读发布，可以并行执行
func (m *CarManager) Prepare() {
	parallel.GoFor(m.cars, func(c *Car) { c.prepare() })
}

// Update 更新阶段，执行所有车辆的决策与运动
// 参数：dt-时间步长
// 说明：必须按注册表顺序串行遍历——避撞检查要求后算的车观察到
// 先算车已提交的位置
func (m *CarManager) Update(dt float64) {
	for _, c := range m.cars {
		c.update(dt)
	}
}
