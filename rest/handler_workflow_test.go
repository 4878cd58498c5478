package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flowgate/flowgate/auth"
	"github.com/flowgate/flowgate/backend"
	"github.com/flowgate/flowgate/cluster"
	"github.com/flowgate/flowgate/config"
	"github.com/flowgate/flowgate/metadata"
	"github.com/flowgate/flowgate/model"
	"github.com/flowgate/flowgate/service"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *backend.InmemExecutor) {
	storage := metadata.NewInmemProjectStorage()
	projects := metadata.NewProjectService(storage)
	require.NoError(t, projects.SaveProject(model.Project{
		Name: "demo",
		Spec: model.ProjectSpec{
			DefaultImage: "demo/base:1",
			Workflows: []model.WorkflowSpec{
				{Name: "wf1", Engine: "remote", Args: map[string]any{"a": 1}},
				{Name: "nightly", Schedule: "0 0 * * *"},
			},
		},
	}))

	executor := backend.NewInmemExecutor()
	conf := config.Config{
		DefaultBaseImage: "flowgate/runner:latest",
		RunnerNameFormat: "workflow-runner-%s",
	}
	cl := cluster.NewCluster(config.ClusterConfig{Role: config.ROLE_LEADER})
	orchestrator := service.NewRunnerOrchestrator(executor, conf)
	submissions := service.NewWorkflowSubmissionService(projects, auth.OpenVerifier{}, cl, cluster.NewLeaderForwarder(cl), orchestrator)
	resolver := service.NewReferenceResolver(executor, auth.OpenVerifier{})

	server, err := NewServer(0, projects, submissions, resolver)
	require.NoError(t, err)
	return httptest.NewServer(server.Handler), executor
}

func TestHandleSubmitWorkflow(t *testing.T) {
	ts, executor := newTestServer(t)
	defer ts.Close()

	body := bytes.NewBufferString(`{"arguments":{"b":2}}`)
	resp, err := http.Post(ts.URL+"/projects/demo/workflows/wf1/submit", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var response model.WorkflowResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	require.Equal(t, "demo", response.Project)
	require.Equal(t, "wf1", response.Name)
	require.Equal(t, model.STATUS_RUNNING, response.Status)
	require.NotEmpty(t, response.RunId)
	require.Equal(t, "run:"+response.RunId, response.Reference)

	_, scheduled := executor.GetSchedule("demo", "workflow-runner-wf1")
	require.False(t, scheduled)
}

func TestHandleSubmitScheduledWorkflow(t *testing.T) {
	ts, executor := newTestServer(t)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/projects/demo/workflows/nightly/submit", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var response model.WorkflowResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	require.Equal(t, model.STATUS_SCHEDULED, response.Status)
	require.Equal(t, "0 0 * * *", response.Schedule)
	require.Empty(t, response.RunId)

	_, scheduled := executor.GetSchedule("demo", "workflow-runner-nightly")
	require.True(t, scheduled)
}

func TestHandleSubmitUnknownWorkflow(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/projects/demo/workflows/missing/submit", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleGetWorkflowId(t *testing.T) {
	ts, executor := newTestServer(t)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/projects/demo/workflows/wf1/submit", "application/json", nil)
	require.NoError(t, err)
	var response model.WorkflowResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	resp.Body.Close()

	url := fmt.Sprintf("%s/projects/demo/workflows/wf1/references/%s", ts.URL, response.Reference)

	// runner job has not reported the workflow id yet
	resp, err = http.Get(url)
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var pending map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pending))
	resp.Body.Close()
	require.Equal(t, "pending", pending["status"])

	require.NoError(t, executor.CompleteRun(response.RunId, map[string]any{"workflow_id": "wf-789"}))

	resp, err = http.Get(url)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var resolved map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&resolved))
	resp.Body.Close()
	require.Equal(t, "wf-789", resolved["workflow_id"])
}

func TestHandleGetWorkflowIdBadReference(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/projects/demo/workflows/wf1/references/abc123")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetWorkflowIdUnsupportedEngine(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/projects/demo/workflows/wf1/references/run:abc123?engine=inprocess")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
