package entity

// entity/approach/manager.go的依赖倒置
type IApproachManager interface {
	Init()

	Get(direction Direction) IApproach
	GetOrError(direction Direction) (IApproach, error)
	Approaches() []IApproach
}

// entity/junction/manager.go的依赖倒置
type IJunctionManager interface {
	Init(approachManager IApproachManager)

	Get(id int32) IJunction
	GetOrError(id int32) (IJunction, error)
	Main() IJunction // 获取唯一的路口

	Prepare()
	Update(dt float64)
}

// entity/car/manager.go的依赖倒置
type ICarManager interface {
	Init(approachManager IApproachManager)

	Get(id int32) ICar
	GetOrError(id int32) (ICar, error)
	GetMany(ids []int32) (cars []ICar, failedIDs []int32)
	Cars() []ICar
	StatusCounts() map[CarStatus]int

	Prepare()
	Update(dt float64)
}
