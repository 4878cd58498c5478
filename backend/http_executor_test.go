package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/model"
	"github.com/stretchr/testify/require"
)

func TestHttpExecutor(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/functions", func(w http.ResponseWriter, r *http.Request) {
		var runner model.RunnerJob
		json.NewDecoder(r.Body).Decode(&runner)
		json.NewEncoder(w).Encode(runner)
	})
	mux.HandleFunc("/functions/demo/workflow-runner-wf1/run", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"uid": "abc123"})
	})
	mux.HandleFunc("/functions/demo/workflow-runner-wf1/schedule", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/runs/demo/abc123", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.RunRecord{UID: "abc123", Status: "running"})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	executor := NewHttpExecutor(ts.URL)
	ctx := context.Background()

	runner, err := executor.CreateOrGetRunnerJob(ctx, "demo", "workflow-runner-wf1", "demo/wf1:1")
	require.NoError(t, err)
	require.Equal(t, "demo", runner.Project)
	require.Equal(t, model.RUNNER_JOB_KIND, runner.Kind)

	uid, err := executor.TriggerRun(ctx, runner, &model.WorkflowRequest{})
	require.NoError(t, err)
	require.Equal(t, "abc123", uid)

	require.NoError(t, executor.RegisterSchedule(ctx, runner, &model.WorkflowRequest{}))

	record, err := executor.GetRunRecord(ctx, "demo", "abc123")
	require.NoError(t, err)
	require.Equal(t, "abc123", record.UID)

	_, err = executor.GetRunRecord(ctx, "demo", "missing")
	require.Error(t, err)
	var notFound api_v1.NotFoundError
	require.True(t, errors.As(err, &notFound))
}
