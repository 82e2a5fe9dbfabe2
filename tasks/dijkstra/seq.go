// SPDX-License-Identifier: MIT

package dijkstra

import (
	"container/heap"
	"context"

	"github.com/katalvlaran/ppc/task"
)

// Sequential runs heap-based Dijkstra on the calling goroutine.
type Sequential struct {
	d    *task.Data
	g    graph
	adj  []int64
	dist []int64
}

// NewSequential returns the task bound to d.
func NewSequential(d *task.Data) *Sequential { return &Sequential{d: d} }

// Name implements task.Named.
func (t *Sequential) Name() string { return "dijkstra/seq" }

func (t *Sequential) Validation() (err error) {
	t.g, err = validate(t.d)
	return err
}

func (t *Sequential) PreProcessing() (err error) {
	t.adj, err = load(t.d)
	t.dist = make([]int64, t.g.n)
	return err
}

func (t *Sequential) Run(context.Context) error {
	ShortestPaths(t.adj, t.g.n, t.g.src, t.dist)
	return nil
}

func (t *Sequential) PostProcessing() error { return store(t.d, t.dist) }

// ShortestPaths fills dist with the distances from src over the n×n
// adjacency matrix adj.
func ShortestPaths(adj []int64, n, src int, dist []int64) {
	var (
		visited = make([]bool, n)
		pq      = make(nodePQ, 0, n)
		item    *nodeItem
		u, v    int
		w, nd   int64
	)
	for v = range dist[:n] {
		dist[v] = Unreachable
	}
	dist[src] = 0
	heap.Push(&pq, &nodeItem{id: src, dist: 0})

	for pq.Len() > 0 {
		// 1) Closest vertex; stale entries are skipped.
		item = heap.Pop(&pq).(*nodeItem)
		u = item.id
		if visited[u] {
			continue
		}
		visited[u] = true

		// 2) Relax the row of u.
		for v = 0; v < n; v++ {
			w = adj[u*n+v]
			if v == u || w < 0 || visited[v] {
				continue
			}
			nd = pathSum(dist[u], w)
			if nd >= dist[v] {
				continue
			}
			dist[v] = nd
			heap.Push(&pq, &nodeItem{id: v, dist: nd})
		}
	}
}

// nodeItem is a vertex and its tentative distance.
type nodeItem struct {
	id   int
	dist int64
}

// nodePQ is a min-heap of *nodeItem by dist. Shorter paths push a new entry
// instead of decreasing a key; outdated entries are skipped when popped.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
