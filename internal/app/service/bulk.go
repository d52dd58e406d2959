package service

import (
	"context"
	"sort"
	"sync"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// settleAll runs one mutation per task ID concurrently and waits for every
// outcome. A failing item never masks the others: the result carries the
// success count and the exact IDs that failed, so callers can report
// "3 of 5 updated" instead of one opaque error.
func settleAll(ctx context.Context, taskIDs []string, mutate func(ctx context.Context, taskID string) error) ports.BulkResult {
	result := ports.BulkResult{Requested: len(taskIDs)}
	if len(taskIDs) == 0 {
		return result
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, taskID := range taskIDs {
		wg.Add(1)
		go func(taskID string) {
			defer wg.Done()
			err := mutate(ctx, taskID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, ports.BulkFailure{
					TaskID:  taskID,
					Message: err.Error(),
				})
				return
			}
			result.Succeeded++
		}(taskID)
	}
	wg.Wait()

	// Goroutine completion order is arbitrary; keep the failure list
	// deterministic by request order.
	order := make(map[string]int, len(taskIDs))
	for i, id := range taskIDs {
		order[id] = i
	}
	sort.SliceStable(result.Failed, func(i, j int) bool {
		return order[result.Failed[i].TaskID] < order[result.Failed[j].TaskID]
	})
	return result
}

func (s *TaskService) BulkUpdate(ctx context.Context, userID string, taskIDs []string, input domain.UpdateTaskInput) ports.BulkResult {
	return settleAll(ctx, taskIDs, func(ctx context.Context, taskID string) error {
		_, err := s.UpdateTask(ctx, userID, taskID, input)
		return err
	})
}

func (s *TaskService) BulkDelete(ctx context.Context, userID string, taskIDs []string) ports.BulkResult {
	return settleAll(ctx, taskIDs, func(ctx context.Context, taskID string) error {
		return s.DeleteTask(ctx, userID, taskID)
	})
}
