package routing

import "container/heap"

// pqItem is one tentative label in the open set.
type pqItem struct {
	minutes int
	pred    string // "" for the origin
	line    string // "" for the origin
	station string
}

// less is the tie-break comparator of the search.
func (a pqItem) less(b pqItem) bool {
	if a.minutes != b.minutes {
		return a.minutes < b.minutes
	}
	if a.pred != b.pred {
		return a.pred < b.pred
	}
	if a.line != b.line {
		return a.line < b.line
	}
	return a.station < b.station
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].less(pq[j]) }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) { *pq = append(*pq, x.(pqItem)) }

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}

func (pq *priorityQueue) push(it pqItem) { heap.Push(pq, it) }

func (pq *priorityQueue) pop() pqItem { return heap.Pop(pq).(pqItem) }
