package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
)

func TestNextTurn(t *testing.T) {
	// 固定循环：right -> left -> straight -> right -> ...
	turn, cursor := entity.NextTurn(0)
	assert.Equal(t, entity.TurnRight, turn)
	turn, cursor = entity.NextTurn(cursor)
	assert.Equal(t, entity.TurnLeft, turn)
	turn, cursor = entity.NextTurn(cursor)
	assert.Equal(t, entity.TurnStraight, turn)
	turn, _ = entity.NextTurn(cursor)
	assert.Equal(t, entity.TurnRight, turn)

	// 任意游标取模后落回循环
	turn, cursor = entity.NextTurn(7)
	assert.Equal(t, entity.TurnLeft, turn)
	assert.Equal(t, int32(2), cursor)
	turn, cursor = entity.NextTurn(-1)
	assert.Equal(t, entity.TurnStraight, turn)
	assert.Equal(t, int32(0), cursor)
}

func TestDirectionAxis(t *testing.T) {
	assert.Equal(t, entity.AxisVertical, entity.DirectionNorth.Axis())
	assert.Equal(t, entity.AxisVertical, entity.DirectionSouth.Axis())
	assert.Equal(t, entity.AxisHorizontal, entity.DirectionEast.Axis())
	assert.Equal(t, entity.AxisHorizontal, entity.DirectionWest.Axis())

	assert.Equal(t, entity.AxisVertical, entity.AxisHorizontal.Other())
	assert.Equal(t, entity.AxisHorizontal, entity.AxisVertical.Other())
}
