package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/container"
)

func TestListInit(t *testing.T) {
	l := &container.List[int]{}
	assert.Nil(t, l.First())
	assert.Nil(t, l.Last())
	assert.Equal(t, 0, l.Len())
}

func TestListOperation(t *testing.T) {
	l := &container.List[int]{}

	// test: push

	// ^, 1, ^
	n1 := &container.ListNode[int]{Value: 1}
	l.PushBack(n1)
	// ^, 2, 1, ^
	n2 := &container.ListNode[int]{Value: 2}
	l.PushFront(n2)
	// ^, 2, 1, 3, ^
	n3 := &container.ListNode[int]{Value: 3}
	l.PushBack(n3)
	assert.Equal(t, 3, l.Len())

	// test: first last next prev

	n := l.First()
	assert.Equal(t, n2, n)
	n = n.Next()
	assert.Equal(t, n1, n)
	assert.Equal(t, n, n.Next().Prev())
	assert.Equal(t, n, n.Prev().Next())
	n = n.Next()
	assert.Equal(t, n3, n)
	assert.Nil(t, n.Next())
	assert.Equal(t, n3, l.Last())

	assert.Equal(t, []int{2, 1, 3}, l.Values())

	// test: move to back

	// ^, 1, 3, 2, ^
	l.MoveToBack(n2)
	assert.Equal(t, []int{1, 3, 2}, l.Values())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, n1, l.First())
	assert.Equal(t, n2, l.Last())

	// test: remove

	// ^, 1, 2, ^
	l.Remove(n3)
	assert.Equal(t, []int{1, 2}, l.Values())
	assert.Equal(t, 2, l.Len())
	assert.Nil(t, n3.Parent())

	l.Remove(n1)
	l.Remove(n2)
	assert.Nil(t, l.First())
	assert.Nil(t, l.Last())
	assert.Equal(t, 0, l.Len())
}
