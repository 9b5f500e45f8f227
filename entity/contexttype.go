package entity

import (
	"github.com/tsinghua-fib-lab/crossroad-sim/clock"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	ApproachManager() IApproachManager
	JunctionManager() IJunctionManager
	CarManager() ICarManager
	RuntimeConfig() *config.RuntimeConfig
}
