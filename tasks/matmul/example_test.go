package matmul_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
	"github.com/katalvlaran/ppc/tasks/matmul"
)

// ExampleNewParallel multiplies a 2×2 matrix by itself on three ranks.
func ExampleNewParallel() {
	c := make([]float64, 4)
	d := task.NewData().
		AddInput(task.NewBuffer([]float64{1, 2, 3, 4})).
		AddInput(task.NewBuffer([]float64{1, 2, 3, 4})).
		AddInput(task.NewBuffer([]int32{2, 2, 2})).
		AddOutput(task.NewBuffer(c))

	w, _ := comm.NewWorld(3)
	lc, _ := task.NewLifecycle(matmul.NewParallel(d, w))
	if err := lc.Execute(context.Background()); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(c)
	// Output: [7 10 15 22]
}
