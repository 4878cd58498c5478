package backend

import (
	"context"
	"fmt"
	"sync"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/model"
	"github.com/google/uuid"
)

// InmemExecutor is an in process execution backend used for development and
// tests. Runs never execute anything, a run stays pending until its outputs
// are written with CompleteRun.
type InmemExecutor struct {
	mu        sync.Mutex
	runners   map[string]*model.RunnerJob
	runs      map[string]*model.RunRecord
	schedules map[string]*model.WorkflowRequest
}

var _ Executor = new(InmemExecutor)

func NewInmemExecutor() *InmemExecutor {
	return &InmemExecutor{
		runners:   make(map[string]*model.RunnerJob),
		runs:      make(map[string]*model.RunRecord),
		schedules: make(map[string]*model.WorkflowRequest),
	}
}

func runnerKey(project string, name string) string {
	return fmt.Sprintf("%s/%s", project, name)
}

func (e *InmemExecutor) CreateOrGetRunnerJob(ctx context.Context, project string, name string, image string) (*model.RunnerJob, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := runnerKey(project, name)
	if runner, ok := e.runners[key]; ok {
		return runner, nil
	}
	runner := &model.RunnerJob{
		Project: project,
		Name:    name,
		Image:   image,
		Kind:    model.RUNNER_JOB_KIND,
	}
	e.runners[key] = runner
	return runner, nil
}

func (e *InmemExecutor) TriggerRun(ctx context.Context, runner *model.RunnerJob, payload *model.WorkflowRequest) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	uid := uuid.New().String()
	e.runs[uid] = &model.RunRecord{
		UID:    uid,
		Status: model.STATUS_RUNNING,
	}
	return uid, nil
}

func (e *InmemExecutor) RegisterSchedule(ctx context.Context, runner *model.RunnerJob, payload *model.WorkflowRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.schedules[runnerKey(runner.Project, runner.Name)] = payload
	return nil
}

func (e *InmemExecutor) GetRunRecord(ctx context.Context, project string, uid string) (*model.RunRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	record, ok := e.runs[uid]
	if !ok {
		return nil, api_v1.NotFoundError{Kind: "run", Name: uid}
	}
	return record, nil
}

// GetSchedule reports whether a schedule was registered for the runner job.
func (e *InmemExecutor) GetSchedule(project string, name string) (*model.WorkflowRequest, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	payload, ok := e.schedules[runnerKey(project, name)]
	return payload, ok
}

// CompleteRun writes the outputs of a runner job run, the way the runner
// itself reports the workflow id once the engine run is started.
func (e *InmemExecutor) CompleteRun(uid string, outputs map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	record, ok := e.runs[uid]
	if !ok {
		return api_v1.NotFoundError{Kind: "run", Name: uid}
	}
	record.Outputs = outputs
	return nil
}
