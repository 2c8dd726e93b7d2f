// internal/pkg/async/pool.go
package async

import (
	"context"
	"fmt"
	"sync"
)

type Task[T any] struct {
	Name    string
	Execute func(ctx context.Context) (T, error)
}

type Result[T any] struct {
	Name string
	Data T
	Err  error
}

// Pool runs tasks on a bounded number of workers. A Pool holds no channels
// of its own so one value may serve many concurrent Execute calls.
type Pool struct {
	workerCount int
}

func NewPool(workerCount int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Pool{workerCount: workerCount}
}

func (p *Pool) Workers() int {
	return p.workerCount
}

func run[T any](ctx context.Context, task Task[T]) (res Result[T]) {
	res.Name = task.Name
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("task %s panicked: %v", task.Name, r)
		}
	}()
	res.Data, res.Err = task.Execute(ctx)
	return res
}

// Execute runs every task and returns results keyed by task name. Tasks not
// started before ctx is done are reported with the context error.
func Execute[T any](ctx context.Context, p *Pool, tasks []Task[T]) map[string]Result[T] {
	queue := make(chan Task[T])
	results := make(chan Result[T], len(tasks))

	workers := min(p.workerCount, len(tasks))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				results <- run(ctx, task)
			}
		}()
	}

	// Send tasks
send:
	for i, task := range tasks {
		select {
		case queue <- task:
		case <-ctx.Done():
			for _, skipped := range tasks[i:] {
				results <- Result[T]{Name: skipped.Name, Err: ctx.Err()}
			}
			break send
		}
	}
	close(queue)
	wg.Wait()
	close(results)

	out := make(map[string]Result[T], len(tasks))
	for result := range results {
		out[result.Name] = result
	}
	return out
}
