package container

import (
	"fmt"
	"log"
)

// ListNode 双向链表中的节点
// 功能：表示车辆排队链表中的一个节点
// 说明：支持泛型，节点归属某个链表后不允许重复加入其他链表
type ListNode[T any] struct {
	parent     *List[T]        // 所属链表
	prev, next *ListNode[T]    // 前驱和后继节点
	Value      T               // 主要值
}

// String 获取节点的字符串表示
func (n *ListNode[T]) String() string {
	return fmt.Sprintf("Node{Value:%+v}", n.Value)
}

// Prev 获取节点的前一个节点
// 返回：前驱节点指针，如果是第一个节点则返回nil
func (n *ListNode[T]) Prev() *ListNode[T] {
	return n.prev
}

// Next 获取节点的下一个节点
// 返回：后继节点指针，如果是最后一个节点则返回nil
func (n *ListNode[T]) Next() *ListNode[T] {
	return n.next
}

// Parent 获取节点所在的链表
// 返回：链表指针，未入队时为nil
func (n *ListNode[T]) Parent() *List[T] {
	return n.parent
}

// List 双向链表
// 功能：实现先后顺序排队的双向链表
// 说明：队首为最早入队的元素，用于进口道车辆排队
type List[T any] struct {
	head, tail *ListNode[T] // 头尾节点
	length     int          // 链表长度
}

// First 获取链表的第一个节点（队首）
// 返回：第一个节点指针，空链表返回nil
func (l *List[T]) First() *ListNode[T] {
	return l.head
}

// Last 获取链表的最后一个节点（队尾）
// 返回：最后一个节点指针，空链表返回nil
func (l *List[T]) Last() *ListNode[T] {
	return l.tail
}

// Len 获取链表长度
func (l *List[T]) Len() int {
	return l.length
}

// PushBack 将节点加入队尾
// 功能：在链表尾部插入节点
// 说明：节点已在其他链表中时panic
func (l *List[T]) PushBack(node *ListNode[T]) {
	if node.parent != nil {
		log.Panic("push back node who already in list")
	}
	node.parent = l
	node.prev = l.tail
	node.next = nil
	if l.tail != nil {
		l.tail.next = node
	} else {
		l.head = node
	}
	l.tail = node
	l.length++
}

// PushFront 将节点加入队首
// 功能：在链表头部插入节点
// 说明：节点已在其他链表中时panic
func (l *List[T]) PushFront(node *ListNode[T]) {
	if node.parent != nil {
		log.Panic("push front node who already in list")
	}
	node.parent = l
	node.next = l.head
	node.prev = nil
	if l.head != nil {
		l.head.prev = node
	} else {
		l.tail = node
	}
	l.head = node
	l.length++
}

// Remove 从链表中移除节点
// 功能：将节点从链表中摘除并清理其归属
// 说明：节点不在本链表中时panic
func (l *List[T]) Remove(node *ListNode[T]) {
	if node.parent != l {
		log.Panic("remove node who is not in this list")
	}
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.parent = nil
	node.prev = nil
	node.next = nil
	l.length--
}

// MoveToBack 将节点移动到队尾
// 功能：等价于Remove+PushBack，用于车辆重生后重新排队
func (l *List[T]) MoveToBack(node *ListNode[T]) {
	l.Remove(node)
	l.PushBack(node)
}

// Values 按队列顺序导出所有元素
// 功能：便于遍历与调试输出
// 返回：从队首到队尾的元素切片
func (l *List[T]) Values() []T {
	values := make([]T, 0, l.length)
	for node := l.head; node != nil; node = node.next {
		values = append(values, node.Value)
	}
	return values
}
