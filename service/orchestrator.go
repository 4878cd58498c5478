package service

import (
	"context"
	"fmt"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/backend"
	"github.com/flowgate/flowgate/config"
	"github.com/flowgate/flowgate/logger"
	"github.com/flowgate/flowgate/model"
	"github.com/flowgate/flowgate/ref"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const ACTION_RUN string = "run"
const ACTION_SCHEDULE string = "schedule"

// scheduleParser accepts standard 5 field cron expressions and descriptors
// like "@every 30s".
var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// RunnerOrchestrator obtains the runner job for a normalized spec and either
// triggers one run or registers a schedule against the execution backend.
type RunnerOrchestrator struct {
	executor backend.Executor
	conf     config.Config
}

func NewRunnerOrchestrator(executor backend.Executor, conf config.Config) *RunnerOrchestrator {
	return &RunnerOrchestrator{
		executor: executor,
		conf:     conf,
	}
}

func (o *RunnerOrchestrator) Execute(ctx context.Context, spec *model.WorkflowSpec, project *model.Project, request *model.WorkflowRequest) (*model.WorkflowResponse, error) {
	runName := request.RunName
	if runName == "" {
		runName = fmt.Sprintf(o.conf.RunnerNameFormat, spec.Name)
	}
	image := spec.Image
	if image == "" {
		image = project.Spec.DefaultImage
	}
	if image == "" {
		image = o.conf.DefaultBaseImage
	}

	action := ACTION_RUN
	if spec.Schedule != "" {
		action = ACTION_SCHEDULE
	}

	runner, err := o.executor.CreateOrGetRunnerJob(ctx, project.Name, runName, image)
	if err != nil {
		return nil, o.failed(spec, project, action, err)
	}

	logger.Debug("saved runner for workflow",
		zap.String("project", runner.Project),
		zap.String("function", runner.Name),
		zap.String("workflow", spec.Name),
		zap.String("kind", runner.Kind),
		zap.String("image", runner.Image))

	updated := *request
	updated.Spec = spec
	if updated.Source == "" {
		updated.Source = project.Spec.Source
	}

	if spec.Schedule != "" {
		if _, err := scheduleParser.Parse(spec.Schedule); err != nil {
			return nil, o.failed(spec, project, action, err)
		}
		if err := o.executor.RegisterSchedule(ctx, runner, &updated); err != nil {
			return nil, o.failed(spec, project, action, err)
		}
		return &model.WorkflowResponse{
			Project:  project.Name,
			Name:     spec.Name,
			Status:   model.STATUS_SCHEDULED,
			Schedule: spec.Schedule,
		}, nil
	}

	uid, err := o.executor.TriggerRun(ctx, runner, &updated)
	if err != nil {
		return nil, o.failed(spec, project, action, err)
	}
	return &model.WorkflowResponse{
		Project:   project.Name,
		Name:      spec.Name,
		Status:    model.STATUS_RUNNING,
		RunId:     uid,
		Reference: ref.Encode(ref.KIND_RUN, uid),
	}, nil
}

func (o *RunnerOrchestrator) failed(spec *model.WorkflowSpec, project *model.Project, action string, err error) error {
	logger.Error("workflow execution failed",
		zap.String("workflow", spec.Name),
		zap.String("action", action),
		zap.String("project", project.Name),
		zap.Error(err))
	return api_v1.ExecutionError{Workflow: spec.Name, Action: action, Cause: err}
}
