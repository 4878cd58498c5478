package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/backend"
	"github.com/flowgate/flowgate/config"
	"github.com/flowgate/flowgate/model"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	created    []model.RunnerJob
	triggered  []*model.WorkflowRequest
	scheduled  []*model.WorkflowRequest
	runUid     string
	failCreate error
	failRun    error
}

var _ backend.Executor = new(recordingExecutor)

func (e *recordingExecutor) CreateOrGetRunnerJob(ctx context.Context, project string, name string, image string) (*model.RunnerJob, error) {
	if e.failCreate != nil {
		return nil, e.failCreate
	}
	runner := model.RunnerJob{Project: project, Name: name, Image: image, Kind: model.RUNNER_JOB_KIND}
	e.created = append(e.created, runner)
	return &runner, nil
}

func (e *recordingExecutor) TriggerRun(ctx context.Context, runner *model.RunnerJob, payload *model.WorkflowRequest) (string, error) {
	if e.failRun != nil {
		return "", e.failRun
	}
	e.triggered = append(e.triggered, payload)
	return e.runUid, nil
}

func (e *recordingExecutor) RegisterSchedule(ctx context.Context, runner *model.RunnerJob, payload *model.WorkflowRequest) error {
	e.scheduled = append(e.scheduled, payload)
	return nil
}

func (e *recordingExecutor) GetRunRecord(ctx context.Context, project string, uid string) (*model.RunRecord, error) {
	return nil, api_v1.NotFoundError{Kind: "run", Name: uid}
}

func testConfig() config.Config {
	return config.Config{
		DefaultBaseImage: "flowgate/runner:latest",
		RunnerNameFormat: "workflow-runner-%s",
	}
}

func TestExecuteImmediateRun(t *testing.T) {
	executor := &recordingExecutor{runUid: "abc123"}
	orchestrator := NewRunnerOrchestrator(executor, testConfig())
	project := testProject()
	spec := project.GetWorkflow("wf1")

	response, err := orchestrator.Execute(context.Background(), spec, project, &model.WorkflowRequest{})
	require.NoError(t, err)
	require.Equal(t, model.STATUS_RUNNING, response.Status)
	require.Equal(t, "abc123", response.RunId)
	require.Equal(t, "run:abc123", response.Reference)
	require.Empty(t, response.Schedule)

	require.Len(t, executor.created, 1)
	require.Equal(t, "workflow-runner-wf1", executor.created[0].Name)
	require.Equal(t, "demo/wf1:1", executor.created[0].Image)
	require.Len(t, executor.triggered, 1)
	require.Equal(t, spec, executor.triggered[0].Spec)
}

func TestExecuteSchedule(t *testing.T) {
	executor := &recordingExecutor{}
	orchestrator := NewRunnerOrchestrator(executor, testConfig())
	project := testProject()
	spec := project.GetWorkflow("nightly")

	response, err := orchestrator.Execute(context.Background(), spec, project, &model.WorkflowRequest{})
	require.NoError(t, err)
	require.Equal(t, model.STATUS_SCHEDULED, response.Status)
	require.Equal(t, "0 0 * * *", response.Schedule)
	require.Empty(t, response.RunId)
	require.Empty(t, response.Reference)
	require.Len(t, executor.scheduled, 1)
	require.Empty(t, executor.triggered)
}

func TestExecuteRunNameOverride(t *testing.T) {
	executor := &recordingExecutor{runUid: "r1"}
	orchestrator := NewRunnerOrchestrator(executor, testConfig())
	project := testProject()
	spec := project.GetWorkflow("wf1")

	_, err := orchestrator.Execute(context.Background(), spec, project, &model.WorkflowRequest{RunName: "custom-runner"})
	require.NoError(t, err)
	require.Equal(t, "custom-runner", executor.created[0].Name)
}

func TestExecuteImageResolutionChain(t *testing.T) {
	executor := &recordingExecutor{runUid: "r1"}
	orchestrator := NewRunnerOrchestrator(executor, testConfig())
	project := testProject()

	// spec image missing, project default image wins
	spec := project.GetWorkflow("nightly")
	spec.Schedule = ""
	_, err := orchestrator.Execute(context.Background(), spec, project, &model.WorkflowRequest{})
	require.NoError(t, err)
	require.Equal(t, "demo/base:1", executor.created[0].Image)

	// neither spec nor project image, global default wins
	project.Spec.DefaultImage = ""
	_, err = orchestrator.Execute(context.Background(), spec, project, &model.WorkflowRequest{})
	require.NoError(t, err)
	require.Equal(t, "flowgate/runner:latest", executor.created[1].Image)
}

func TestExecuteFailureIsOneErrorClass(t *testing.T) {
	cause := fmt.Errorf("backend unavailable")

	executor := &recordingExecutor{failCreate: cause}
	orchestrator := NewRunnerOrchestrator(executor, testConfig())
	project := testProject()
	spec := project.GetWorkflow("wf1")

	_, err := orchestrator.Execute(context.Background(), spec, project, &model.WorkflowRequest{})
	require.Error(t, err)
	var execErr api_v1.ExecutionError
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, "wf1", execErr.Workflow)
	require.Equal(t, ACTION_RUN, execErr.Action)
	require.ErrorIs(t, err, cause)

	executor = &recordingExecutor{failRun: cause}
	orchestrator = NewRunnerOrchestrator(executor, testConfig())
	_, err = orchestrator.Execute(context.Background(), spec, project, &model.WorkflowRequest{})
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, ACTION_RUN, execErr.Action)
}

func TestExecuteInvalidScheduleExpression(t *testing.T) {
	executor := &recordingExecutor{}
	orchestrator := NewRunnerOrchestrator(executor, testConfig())
	project := testProject()
	spec := project.GetWorkflow("nightly")
	spec.Schedule = "not a schedule"

	_, err := orchestrator.Execute(context.Background(), spec, project, &model.WorkflowRequest{})
	require.Error(t, err)
	var execErr api_v1.ExecutionError
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, ACTION_SCHEDULE, execErr.Action)
	require.Empty(t, executor.scheduled)
}
