package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"taskboard/pkg/client"
)

func TestClient_List_SendsQueryAndAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/tasks", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		require.Equal(t, "in-progress", r.URL.Query().Get("status"))
		require.Equal(t, "priority", r.URL.Query().Get("sort"))
		require.Equal(t, "true", r.URL.Query().Get("overdue"))
		require.Equal(t, "25", r.URL.Query().Get("limit"))

		w.Write([]byte(`{"tasks":[{"id":"t1","title":"Write report","status":"in_progress","priority":"high","due_date":"2026-03-10T00:00:00Z","created_at":"2026-02-13T10:20:30Z","updated_at":"2026-02-13T10:20:30Z","is_overdue":false}],"total":1}`))
	}))
	defer server.Close()

	c := client.New(server.URL, "token-123")
	got, err := c.List(context.Background(), client.ListOptions{
		Status:  "in-progress",
		Sort:    "priority",
		Overdue: true,
		Limit:   25,
	})
	require.NoError(t, err)
	require.Equal(t, 1, got.Total)
	require.Equal(t, "t1", got.Tasks[0].ID)
	require.Equal(t, "in_progress", got.Tasks[0].Status)
	require.Equal(t, "2026-03-10T00:00:00Z", got.Tasks[0].DueDate)
}

func TestClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tasks", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Plan sprint", req["title"])
		require.Equal(t, "backlog", req["description"])
		require.Equal(t, "2026-03-20", req["due_date"])
		require.NotContains(t, req, "status")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"created-1","title":"Plan sprint","status":"pending","priority":"medium","due_date":"2026-03-20T00:00:00Z","created_at":"2026-03-01T00:00:00Z","updated_at":"2026-03-01T00:00:00Z","is_overdue":false}`))
	}))
	defer server.Close()

	c := client.New(server.URL, "token-123")
	got, err := c.Create(context.Background(), client.CreateTaskRequest{
		Title:       "Plan sprint",
		Description: "backlog",
		DueDate:     "2026-03-20",
	})
	require.NoError(t, err)
	require.Equal(t, "created-1", got.ID)
	require.Equal(t, "pending", got.Status)
}

func TestClient_Update_OmitsAbsentFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/tasks/t1", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "completed", req["status"])
		require.NotContains(t, req, "title")
		require.NotContains(t, req, "due_date")

		w.Write([]byte(`{"id":"t1","title":"Write report","status":"completed","priority":"high","due_date":"2026-03-10T00:00:00Z","completed_at":"2026-03-05T12:00:00Z","created_at":"2026-02-13T10:20:30Z","updated_at":"2026-03-05T12:00:00Z","is_overdue":false}`))
	}))
	defer server.Close()

	status := "completed"
	got, err := client.New(server.URL, "token").Update(context.Background(), "t1",
		client.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, "completed", got.Status)
	require.NotNil(t, got.CompletedAt)
}

func TestClient_Delete_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/tasks/t1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	require.NoError(t, client.New(server.URL, "token").Delete(context.Background(), "t1"))
}

func TestClient_BulkUpdate_DecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/tasks/bulk", r.URL.Path)

		var req struct {
			IDs   []string       `json:"ids"`
			Patch map[string]any `json:"patch"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, []string{"t1", "t2", "t3"}, req.IDs)
		require.Equal(t, "completed", req.Patch["status"])

		w.Write([]byte(`{"requested":3,"succeeded":2,"failed":[{"task_id":"t3","message":"task not found"}]}`))
	}))
	defer server.Close()

	status := "completed"
	got, err := client.New(server.URL, "token").BulkUpdate(context.Background(),
		[]string{"t1", "t2", "t3"}, client.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, 2, got.Succeeded)
	require.Len(t, got.Failed, 1)
	require.Equal(t, "t3", got.Failed[0].TaskID)
}

func TestClient_Stats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tasks/stats", r.URL.Path)
		require.Equal(t, "work", r.URL.Query().Get("context_tag"))

		w.Write([]byte(`{"total":4,"completed":2,"in_progress":1,"pending":1,"overdue":1,"completion_rate":50,"breakdown":{"Writing":2},"upcoming":{"today":1,"tomorrow":0,"this_week":2,"later":0}}`))
	}))
	defer server.Close()

	got, err := client.New(server.URL, "token").Stats(context.Background(), "work")
	require.NoError(t, err)
	require.Equal(t, 4, got.Total)
	require.Equal(t, 50, got.CompletionRate)
	require.Equal(t, 2, got.Breakdown["Writing"])
	require.Equal(t, 2, got.Upcoming.ThisWeek)
}

func TestClient_Calendar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/tasks/calendar", r.URL.Path)
		require.Equal(t, "2026", r.URL.Query().Get("year"))
		require.Equal(t, "3", r.URL.Query().Get("month"))

		w.Write([]byte(`{"year":2026,"month":3,"cells":[{"day":1,"blank":false}]}`))
	}))
	defer server.Close()

	got, err := client.New(server.URL, "token").Calendar(context.Background(), 2026, 3)
	require.NoError(t, err)
	require.Equal(t, 2026, got.Year)
	require.Len(t, got.Cells, 1)
	require.Equal(t, 1, got.Cells[0].Day)
}

func TestClient_Subtasks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tasks/t1/subtasks", r.URL.Path)

		switch r.Method {
		case http.MethodPost:
			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "step one", req["title"])
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"s1","task_id":"t1","title":"step one","done":false,"created_at":"2026-03-01T00:00:00Z","updated_at":"2026-03-01T00:00:00Z"}`))
		case http.MethodGet:
			w.Write([]byte(`[{"id":"s1","task_id":"t1","title":"step one","done":false,"created_at":"2026-03-01T00:00:00Z","updated_at":"2026-03-01T00:00:00Z"}]`))
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	c := client.New(server.URL, "token")

	created, err := c.CreateSubtask(context.Background(), "t1", "step one")
	require.NoError(t, err)
	require.Equal(t, "s1", created.ID)

	subtasks, err := c.ListSubtasks(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, subtasks, 1)
	require.Equal(t, "step one", subtasks[0].Title)
}

func TestClient_DecodesErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"message":"Task not found"}}`))
	}))
	defer server.Close()

	_, err := client.New(server.URL, "token").Get(context.Background(), "ghost")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.Code)
	require.Equal(t, "Task not found", apiErr.Message)
}

func TestClient_FallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	_, err := client.New(server.URL, "token").Get(context.Background(), "t1")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Code)
	require.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.New(server.URL, "token").List(ctx, client.ListOptions{})
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}
