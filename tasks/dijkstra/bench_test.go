package dijkstra_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/ppc/tasks/dijkstra"
)

func BenchmarkShortestPaths(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{64, 256} {
		adj := randGraph(1337, n)
		dist := make([]int64, n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				dijkstra.ShortestPaths(adj, n, 0, dist)
			}
		})
	}
}
