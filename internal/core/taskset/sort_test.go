package taskset_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/taskset"
)

func TestSortBy_PriorityAscendingMeansHighFirst(t *testing.T) {
	same := day(2026, 3, 1)
	tasks := []domain.Task{
		{ID: "a", Priority: domain.TaskPriorityLow, DueDate: same},
		{ID: "b", Priority: domain.TaskPriorityHigh, DueDate: same},
		{ID: "c", Priority: domain.TaskPriorityMedium, DueDate: same},
	}

	got := taskset.SortBy(tasks, taskset.SortByPriority, taskset.SortAsc)
	require.Equal(t, "b", got[0].ID)
	require.Equal(t, "c", got[1].ID)
	require.Equal(t, "a", got[2].ID)
}

func TestSortBy_PriorityRankHoldsForAnyInputOrder(t *testing.T) {
	rank := map[domain.TaskPriority]int{
		domain.TaskPriorityHigh:   0,
		domain.TaskPriorityMedium: 1,
		domain.TaskPriorityLow:    2,
	}
	priorities := []domain.TaskPriority{
		domain.TaskPriorityLow, domain.TaskPriorityLow,
		domain.TaskPriorityMedium, domain.TaskPriorityHigh,
		domain.TaskPriorityHigh, domain.TaskPriorityMedium,
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		tasks := make([]domain.Task, len(priorities))
		for i, p := range priorities {
			tasks[i] = domain.Task{ID: string(rune('a' + i)), Priority: p}
		}
		rng.Shuffle(len(tasks), func(i, j int) { tasks[i], tasks[j] = tasks[j], tasks[i] })

		got := taskset.SortBy(tasks, taskset.SortByPriority, taskset.SortAsc)
		for i := 1; i < len(got); i++ {
			require.LessOrEqual(t, rank[got[i-1].Priority], rank[got[i].Priority])
		}
	}
}

func TestSortBy_DueDate(t *testing.T) {
	tasks := []domain.Task{
		{ID: "late", DueDate: day(2026, 4, 1)},
		{ID: "early", DueDate: day(2026, 3, 1)},
	}

	asc := taskset.SortBy(tasks, taskset.SortByDueDate, taskset.SortAsc)
	require.Equal(t, "early", asc[0].ID)

	desc := taskset.SortBy(tasks, taskset.SortByDueDate, taskset.SortDesc)
	require.Equal(t, "late", desc[0].ID)
}

func TestSortBy_TitleIgnoresCase(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Title: "banana"},
		{ID: "2", Title: "Apple"},
		{ID: "3", Title: "cherry"},
	}
	got := taskset.SortBy(tasks, taskset.SortByTitle, taskset.SortAsc)
	require.Equal(t, []string{"2", "1", "3"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestSortBy_StableForEqualKeys(t *testing.T) {
	same := day(2026, 3, 1)
	tasks := []domain.Task{
		{ID: "first", DueDate: same, Priority: domain.TaskPriorityMedium},
		{ID: "second", DueDate: same, Priority: domain.TaskPriorityMedium},
		{ID: "third", DueDate: same, Priority: domain.TaskPriorityMedium},
	}

	for _, key := range []taskset.SortKey{taskset.SortByDueDate, taskset.SortByPriority} {
		got := taskset.SortBy(tasks, key, taskset.SortAsc)
		require.Equal(t, "first", got[0].ID, "key %s", key)
		require.Equal(t, "second", got[1].ID, "key %s", key)
		require.Equal(t, "third", got[2].ID, "key %s", key)
	}
}

func TestSortBy_DoesNotMutateInput(t *testing.T) {
	tasks := []domain.Task{
		{ID: "z", DueDate: day(2026, 4, 1)},
		{ID: "a", DueDate: day(2026, 3, 1)},
	}
	_ = taskset.SortBy(tasks, taskset.SortByDueDate, taskset.SortAsc)
	require.Equal(t, "z", tasks[0].ID)
	require.Equal(t, "a", tasks[1].ID)
}

func TestSortBy_UnknownKeyReturnsCopyInOrder(t *testing.T) {
	tasks := []domain.Task{{ID: "x"}, {ID: "y"}}
	got := taskset.SortBy(tasks, taskset.SortKey("bogus"), taskset.SortAsc)
	require.Equal(t, tasks, got)
}
