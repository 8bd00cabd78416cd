package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/analyzer"
	"github.com/ludo-technologies/codesim/internal/parser"
)

func TestNewParallelExecutor(t *testing.T) {
	executor := NewParallelExecutor()

	assert.NotNil(t, executor)

	impl, ok := executor.(*ParallelExecutorImpl)
	require.True(t, ok)
	assert.Equal(t, 0, impl.maxConcurrency)
	assert.Equal(t, domain.DefaultBatchTimeout, impl.timeout)
}

func TestParallelExecutor_Execute_EmptyTasks(t *testing.T) {
	executor := NewParallelExecutor()
	ctx := context.Background()

	err := executor.Execute(ctx, []domain.ExecutableTask{})
	assert.NoError(t, err)
}

func TestParallelExecutor_Execute_SingleTask(t *testing.T) {
	executor := NewParallelExecutor()
	ctx := context.Background()

	executed := false
	task := NewSimpleTask("test-task", true, func(ctx context.Context) (interface{}, error) {
		executed = true
		return "result", nil
	})

	err := executor.Execute(ctx, []domain.ExecutableTask{task})
	assert.NoError(t, err)
	assert.True(t, executed)
}

func TestParallelExecutor_Execute_MultipleTasks(t *testing.T) {
	executor := NewParallelExecutor()
	ctx := context.Background()

	var counter int32
	tasks := make([]domain.ExecutableTask, 5)
	for i := 0; i < 5; i++ {
		tasks[i] = NewSimpleTask("task", true, func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&counter, 1)
			return nil, nil
		})
	}

	err := executor.Execute(ctx, tasks)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), counter)
}

func TestParallelExecutor_Execute_DisabledTasks(t *testing.T) {
	executor := NewParallelExecutor()
	ctx := context.Background()

	executed := false
	task := NewSimpleTask("disabled-task", false, func(ctx context.Context) (interface{}, error) {
		executed = true
		return nil, nil
	})

	err := executor.Execute(ctx, []domain.ExecutableTask{task})
	assert.NoError(t, err)
	assert.False(t, executed, "disabled task should not be executed")
}

func TestParallelExecutor_Execute_TaskError(t *testing.T) {
	executor := NewParallelExecutor()
	ctx := context.Background()

	expectedErr := errors.New("task failed")
	task := NewSimpleTask("failing-task", true, func(ctx context.Context) (interface{}, error) {
		return nil, expectedErr
	})

	err := executor.Execute(ctx, []domain.ExecutableTask{task})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failing-task")
	assert.Contains(t, err.Error(), "task failed")
}

func TestParallelExecutor_Execute_FirstErrorCancelsOthers(t *testing.T) {
	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(1)
	ctx := context.Background()

	var ran int32
	tasks := []domain.ExecutableTask{
		NewSimpleTask("a.c:b.c", true, func(ctx context.Context) (interface{}, error) {
			return nil, errors.New("compare failed")
		}),
	}
	for i := 0; i < 10; i++ {
		tasks = append(tasks, NewSimpleTask("pair", true, func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(&ran, 1)
			return nil, nil
		}))
	}

	err := executor.Execute(ctx, tasks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.c:b.c")
	assert.Less(t, atomic.LoadInt32(&ran), int32(10))
}

func TestParallelExecutor_Execute_ContextCancellation(t *testing.T) {
	executor := NewParallelExecutor()
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	task := NewSimpleTask("long-task", true, func(ctx context.Context) (interface{}, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	go func() {
		<-started
		cancel()
	}()

	err := executor.Execute(ctx, []domain.ExecutableTask{task})
	assert.Error(t, err)
}

func TestParallelExecutor_Execute_WithConcurrencyLimit(t *testing.T) {
	executor := NewParallelExecutor()
	impl := executor.(*ParallelExecutorImpl)
	impl.SetMaxConcurrency(2)

	ctx := context.Background()
	var maxConcurrent int32
	var currentConcurrent int32

	tasks := make([]domain.ExecutableTask, 5)
	for i := 0; i < 5; i++ {
		tasks[i] = NewSimpleTask("task", true, func(ctx context.Context) (interface{}, error) {
			current := atomic.AddInt32(&currentConcurrent, 1)
			for {
				max := atomic.LoadInt32(&maxConcurrent)
				if current > max {
					if atomic.CompareAndSwapInt32(&maxConcurrent, max, current) {
						break
					}
				} else {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&currentConcurrent, -1)
			return nil, nil
		})
	}

	err := executor.Execute(ctx, tasks)
	assert.NoError(t, err)
	assert.LessOrEqual(t, maxConcurrent, int32(2), "max concurrent should not exceed limit")
}

func TestParallelExecutor_Execute_Timeout(t *testing.T) {
	executor := NewParallelExecutor()
	impl := executor.(*ParallelExecutorImpl)
	impl.SetTimeout(50 * time.Millisecond)

	ctx := context.Background()
	task := NewSimpleTask("slow-task", true, func(ctx context.Context) (interface{}, error) {
		time.Sleep(200 * time.Millisecond)
		return nil, nil
	})

	err := executor.Execute(ctx, []domain.ExecutableTask{task})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestSimpleTask(t *testing.T) {
	failure := errors.New("execution failed")

	tests := []struct {
		name       string
		enabled    bool
		execute    func(context.Context) (interface{}, error)
		wantResult interface{}
		wantErr    string
	}{
		{"success", true, func(context.Context) (interface{}, error) { return 0.75, nil }, 0.75, ""},
		{"error", true, func(context.Context) (interface{}, error) { return nil, failure }, nil, "execution failed"},
		{"nil function", false, nil, nil, "no execute function"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewSimpleTask(tt.name, tt.enabled, tt.execute)
			assert.Equal(t, tt.name, task.Name())
			assert.Equal(t, tt.enabled, task.IsEnabled())

			result, err := task.Execute(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, result)
		})
	}
}

// TestParallelExecutor_ComparisonsMatchSequential runs engine comparisons
// through the executor and checks they equal the sequential results
func TestParallelExecutor_ComparisonsMatchSequential(t *testing.T) {
	engine := analyzer.NewEngine(parser.NewDefaultRegistry())
	sources := []string{sumC, sumRenamedC, greetC}
	reps := make([]*analyzer.Representation, len(sources))
	for i, src := range sources {
		rep, err := engine.Analyze(context.Background(), domain.SourceUnit{Name: "unit", Text: src, Language: domain.LanguageC})
		require.NoError(t, err)
		reps[i] = rep
	}

	type pair struct{ i, j int }
	pairs := []pair{{0, 1}, {0, 2}, {1, 2}}
	results := make([]*domain.ComparisonResult, len(pairs))
	tasks := make([]domain.ExecutableTask, len(pairs))
	for k, p := range pairs {
		tasks[k] = NewSimpleTask("pair", true, func(ctx context.Context) (interface{}, error) {
			r, err := engine.CompareRepresentations(reps[p.i], reps[p.j], domain.DefaultThreshold)
			results[k] = r
			return r, err
		})
	}

	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(2)
	require.NoError(t, executor.Execute(context.Background(), tasks))

	for k, p := range pairs {
		want, err := engine.CompareRepresentations(reps[p.i], reps[p.j], domain.DefaultThreshold)
		require.NoError(t, err)
		assert.Equal(t, want.Scores, results[k].Scores)
		assert.Equal(t, want.Verdicts, results[k].Verdicts)
	}
}
