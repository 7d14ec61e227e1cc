package longpath

import "container/heap"

// PriorityQueueItem is one open tile.
type PriorityQueueItem struct {
	ID           TileID
	FCost        PathCost
	HCost        PathCost
	IndexInQueue int
}

// priorityHeap implements heap.Interface. Items are ordered by F, then H,
// then tile ID, so pops are deterministic.
type priorityHeap []*PriorityQueueItem

func (queue priorityHeap) Len() int { return len(queue) }
func (queue priorityHeap) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if a.FCost != b.FCost {
		return a.FCost.Less(b.FCost)
	}
	if a.HCost != b.HCost {
		return a.HCost.Less(b.HCost)
	}
	return a.ID.Less(b.ID)
}
func (queue priorityHeap) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *priorityHeap) Push(x any) {
	item := x.(*PriorityQueueItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *priorityHeap) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	*queue = oldQueue[:n-1]
	item.IndexInQueue = -1
	return item
}

// PriorityQueue is the open list: a binary min-heap of tiles supporting
// decrease-key.
type PriorityQueue struct {
	items   priorityHeap
	members map[TileID]*PriorityQueueItem
}

func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{members: make(map[TileID]*PriorityQueueItem)}
}

func (queue *PriorityQueue) Len() int    { return queue.items.Len() }
func (queue *PriorityQueue) Empty() bool { return queue.items.Len() == 0 }

func (queue *PriorityQueue) Push(id TileID, f, h PathCost) {
	item := &PriorityQueueItem{ID: id, FCost: f, HCost: h}
	heap.Push(&queue.items, item)
	queue.members[id] = item
}

// Pop removes the item with the lowest F.
func (queue *PriorityQueue) Pop() PriorityQueueItem {
	item := heap.Pop(&queue.items).(*PriorityQueueItem)
	delete(queue.members, item.ID)
	return *item
}

// Promote lowers the key of id from oldF to newF. It returns false, leaving
// the queue as it was, when id is not queued with F == oldF or newF is not
// lower than oldF.
func (queue *PriorityQueue) Promote(id TileID, oldF, newF, newH PathCost) bool {
	item, ok := queue.members[id]
	if !ok || item.FCost != oldF || !newF.Less(oldF) {
		return false
	}
	item.FCost = newF
	item.HCost = newH
	heap.Fix(&queue.items, item.IndexInQueue)
	return true
}

// Clear drops every item.
func (queue *PriorityQueue) Clear() {
	clear(queue.items)
	queue.items = queue.items[:0]
	clear(queue.members)
}
