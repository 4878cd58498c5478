// Package backend declares the contract this service requires of the external
// job execution backend, the system that actually creates runner jobs, runs
// them and registers their schedules.
package backend

import (
	"context"

	"github.com/flowgate/flowgate/model"
)

// Executor is implemented against the execution backend. Runner job creation
// is keyed by (project, name) and reentrant, retrying a whole submission is
// safe without rollback.
type Executor interface {
	// CreateOrGetRunnerJob obtains the runner job definition for the given
	// key, creating it when absent.
	CreateOrGetRunnerJob(ctx context.Context, project string, name string, image string) (*model.RunnerJob, error)

	// TriggerRun starts one execution of the runner job and synchronously
	// returns the uid of that run. The uid identifies the runner job's own
	// run, not the workflow run it will eventually start.
	TriggerRun(ctx context.Context, runner *model.RunnerJob, payload *model.WorkflowRequest) (string, error)

	// RegisterSchedule registers a recurring trigger for the runner job.
	RegisterSchedule(ctx context.Context, runner *model.RunnerJob, payload *model.WorkflowRequest) error

	// GetRunRecord fetches the run record for a runner job run by uid.
	GetRunRecord(ctx context.Context, project string, uid string) (*model.RunRecord, error)
}
